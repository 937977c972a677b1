package planar

import (
	"fmt"

	"github.com/pion/planetranspose/pkg/frame"
)

// Decoder unpacks a raw frame into an Image.
type Decoder interface {
	Decode(frame []byte, width, height int) (*Image, func(), error)
}

type decoderFunc func(frame []byte, width, height int) (*Image, func(), error)

func (f decoderFunc) Decode(frame []byte, width, height int) (*Image, func(), error) {
	return f(frame, width, height)
}

// NewDecoder returns a decoder for tightly packed raw frames in format f.
// Packed 4:2:2 formats are unpacked to I422, semi-planar formats to I420.
// Every other registered format decodes to itself.
func NewDecoder(f frame.Format) (Decoder, error) {
	switch f {
	case frame.FormatNV21:
		return decoderFunc(decodeNV21), nil
	case frame.FormatNV12:
		return decoderFunc(decodeNV12), nil
	case frame.FormatYUY2:
		return decoderFunc(decodeYUY2), nil
	case frame.FormatUYVY:
		return decoderFunc(decodeUYVY), nil
	case frame.FormatYVYU:
		return decoderFunc(decodeYVYU), nil
	}

	if _, ok := frame.Lookup(f); !ok {
		return nil, fmt.Errorf("%s is not supported", f)
	}
	return decoderFunc(func(b []byte, width, height int) (*Image, func(), error) {
		return decodeRaw(f, b, width, height)
	}), nil
}

// FrameSize returns the number of bytes a tightly packed raw frame of format
// f occupies.
func FrameSize(f frame.Format, width, height int) (int, error) {
	cw, ch := frame.CeilingShift(width, 1), frame.CeilingShift(height, 1)
	switch f {
	case frame.FormatNV21, frame.FormatNV12:
		return width*height + 2*cw*ch, nil
	case frame.FormatYUY2, frame.FormatUYVY, frame.FormatYVYU:
		return 4 * cw * height, nil
	}

	d, ok := frame.Lookup(f)
	if !ok {
		return 0, fmt.Errorf("%s is not supported", f)
	}
	if !d.Planar {
		return d.BitsPerPixel * width / 8 * height, nil
	}
	ss := d.ByteDepth()
	size := width * height * ss
	cw, ch = d.ChromaSize(width, height)
	size += 2 * cw * ch * ss
	if d.HasAlpha {
		size += width * height * ss
	}
	return size, nil
}

// rawPlanes lists the planes of img in the order they appear in a raw frame.
func rawPlanes(img *Image) []int {
	d, _ := img.Descriptor()
	if !d.Planar {
		return []int{PlanePacked}
	}
	planes := []int{PlaneY, PlaneU, PlaneV}
	if d.UVFlip {
		planes[1], planes[2] = PlaneV, PlaneU
	}
	if d.HasAlpha {
		planes = append(planes, PlaneAlpha)
	}
	return planes
}

// rowBytes is the number of meaningful bytes in a row of plane p.
func rowBytes(img *Image, p int) int {
	pl := img.Plane(p)
	if !img.Planar() {
		return img.BitsPerPixel * img.DW / 8
	}
	return pl.Width * pl.SampleSize
}

func decodeRaw(f frame.Format, b []byte, width, height int) (*Image, func(), error) {
	expected, err := FrameSize(f, width, height)
	if err != nil {
		return nil, func() {}, err
	}
	if expected > len(b) {
		return nil, func() {}, fmt.Errorf("frame length (%d) less than expected (%d)", len(b), expected)
	}

	img, err := Alloc(f, width, height, 0)
	if err != nil {
		return nil, func() {}, err
	}

	var off int
	for _, p := range rawPlanes(img) {
		n := rowBytes(img, p)
		for row := 0; row < img.Plane(p).Height; row++ {
			copy(img.Planes[p][row*img.Stride[p]:], b[off:off+n])
			off += n
		}
	}
	return img, func() {}, nil
}

func decodeNV21(b []byte, width, height int) (*Image, func(), error) {
	return decodeSemiPlanar(frame.FormatNV21, b, width, height, PlaneV, PlaneU)
}

func decodeNV12(b []byte, width, height int) (*Image, func(), error) {
	return decodeSemiPlanar(frame.FormatNV12, b, width, height, PlaneU, PlaneV)
}

func decodeSemiPlanar(f frame.Format, b []byte, width, height, first, second int) (*Image, func(), error) {
	expected, _ := FrameSize(f, width, height)
	if expected > len(b) {
		return nil, func() {}, fmt.Errorf("frame length (%d) less than expected (%d)", len(b), expected)
	}

	img, err := Alloc(frame.FormatI420, width, height, 0)
	if err != nil {
		return nil, func() {}, err
	}

	yi := width * height
	for row := 0; row < height; row++ {
		copy(img.Planes[PlaneY][row*img.Stride[PlaneY]:], b[row*width:(row+1)*width])
	}

	cw, ch := frame.CeilingShift(width, 1), frame.CeilingShift(height, 1)
	i := yi
	for row := 0; row < ch; row++ {
		p1 := img.Planes[first][row*img.Stride[first]:]
		p2 := img.Planes[second][row*img.Stride[second]:]
		for col := 0; col < cw; col++ {
			p1[col] = b[i]
			p2[col] = b[i+1]
			i += 2
		}
	}
	return img, func() {}, nil
}

// Byte offsets of Y0, U, Y1, V inside a 4 byte macropixel.
type macropixel struct {
	y0, u, y1, v int
}

func decodeYUY2(b []byte, width, height int) (*Image, func(), error) {
	return decodePacked422(frame.FormatYUY2, b, width, height, macropixel{y0: 0, u: 1, y1: 2, v: 3})
}

func decodeUYVY(b []byte, width, height int) (*Image, func(), error) {
	return decodePacked422(frame.FormatUYVY, b, width, height, macropixel{u: 0, y0: 1, v: 2, y1: 3})
}

func decodeYVYU(b []byte, width, height int) (*Image, func(), error) {
	return decodePacked422(frame.FormatYVYU, b, width, height, macropixel{y0: 0, v: 1, y1: 2, u: 3})
}

func decodePacked422(f frame.Format, b []byte, width, height int, m macropixel) (*Image, func(), error) {
	expected, _ := FrameSize(f, width, height)
	if len(b) != expected {
		return nil, func() {}, fmt.Errorf("frame length (%d) doesn't match expected (%d)", len(b), expected)
	}

	img, err := Alloc(frame.FormatI422, width, height, 0)
	if err != nil {
		return nil, func() {}, err
	}

	cw := frame.CeilingShift(width, 1)
	for row := 0; row < height; row++ {
		src := b[row*4*cw:]
		y := img.Planes[PlaneY][row*img.Stride[PlaneY]:]
		u := img.Planes[PlaneU][row*img.Stride[PlaneU]:]
		v := img.Planes[PlaneV][row*img.Stride[PlaneV]:]
		for col := 0; col < cw; col++ {
			mp := src[4*col:]
			y[2*col] = mp[m.y0]
			if 2*col+1 < width {
				y[2*col+1] = mp[m.y1]
			}
			u[col] = mp[m.u]
			v[col] = mp[m.v]
		}
	}
	return img, func() {}, nil
}
