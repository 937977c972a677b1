package planar

import (
	"errors"
	"io"
)

var errNoPlanes = errors.New("planar: image has no planes")

// Encode writes img as a tightly packed raw frame, the layout NewDecoder
// reads for the image's format.
func Encode(w io.Writer, img *Image) error {
	if img == nil || img.Planes[PlaneY] == nil {
		return errNoPlanes
	}
	for _, p := range rawPlanes(img) {
		n := rowBytes(img, p)
		for row := 0; row < img.Plane(p).Height; row++ {
			off := row * img.Stride[p]
			if _, err := w.Write(img.Planes[p][off : off+n]); err != nil {
				return err
			}
		}
	}
	return nil
}
