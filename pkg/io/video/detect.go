package video

import (
	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
)

// Geometry is the part of a frame that decides how it's laid out in memory.
type Geometry struct {
	Format frame.Format
	Width  int
	Height int
}

// DetectChanges will detect frame format and size changes. onChange is called
// with the new geometry before the first frame and every frame that differs
// from the one before it.
func DetectChanges(onChange func(Geometry)) TransformFunc {
	return func(r Reader) Reader {
		var current Geometry
		var seen bool
		return ReaderFunc(func() (*planar.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}

			g := Geometry{Format: img.Format, Width: img.DW, Height: img.DH}
			if !seen || g != current {
				current = g
				seen = true
				onChange(current)
			}
			return img, release, nil
		})
	}
}
