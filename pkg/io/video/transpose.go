package video

import (
	"github.com/pion/planetranspose/internal/logging"
	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
	"github.com/pion/planetranspose/pkg/transpose"
)

var logger = logging.NewLogger("video")

// Transpose returns a transform that swaps the rows and columns of every
// frame. The output frame is reused between reads, so it's only valid until
// the next Read.
func Transpose() TransformFunc {
	return func(r Reader) Reader {
		var dst *planar.Image
		var next Geometry
		r = DetectChanges(func(g Geometry) {
			logger.Debugf("input changed to %dx%d %s", g.Width, g.Height, frame.Name(g.Format))
			planar.Free(dst)
			dst = nil
			next = g
		})(r)

		return ReaderFunc(func() (*planar.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			if release != nil {
				defer release()
			}

			if dst == nil {
				logger.Debugf("allocating %dx%d %s frame", next.Height, next.Width, frame.Name(next.Format))
				if dst, err = planar.Alloc(next.Format, next.Height, next.Width, 0); err != nil {
					return nil, func() {}, err
				}
			}

			out, err := transpose.Transpose(dst, img)
			if err != nil {
				return nil, func() {}, err
			}
			return out, func() {}, nil
		})
	}
}
