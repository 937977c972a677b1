// Package planar describes multi-plane pixel buffers (luma, chroma and alpha
// planes with independent subsampling) and allocates them.
package planar

import (
	"errors"
	"fmt"

	"github.com/pion/planetranspose/pkg/frame"
	"golang.org/x/sys/cpu"
)

// Plane indices
const (
	PlanePacked = 0
	PlaneY      = 0
	PlaneU      = 1
	PlaneV      = 2
	PlaneAlpha  = 3
)

var (
	errBadAlign     = errors.New("planar: alignment must be a power of two")
	errBadDimension = errors.New("planar: negative dimension")
)

// Image is a picture made of up to 4 planes that live in one contiguous
// buffer.
type Image struct {
	Format frame.Format

	// W and H are the storage dimensions, rounded up to the chroma
	// subsampling factors.
	W, H int
	// DW and DH are the displayed dimensions.
	DW, DH int

	XChromaShift int
	YChromaShift int
	BitDepth     int
	BitsPerPixel int

	// Planes start at the first sample of each plane and extend to the end of
	// the plane's last row. Planes that the format doesn't have are nil.
	Planes [4][]byte
	// Stride is the distance in bytes between the starts of consecutive rows.
	Stride [4]int

	buf []byte
}

// Alloc allocates an image of format f. Rows of every plane start on a
// multiple of align samples; align 0 is treated as 1.
func Alloc(f frame.Format, dw, dh, align int) (*Image, error) {
	img, size, err := layout(f, dw, dh, align)
	if err != nil {
		return nil, err
	}
	img.place(make([]byte, size))
	return img, nil
}

// Wrap lays out an image of format f on top of buf. The image refers to buf
// and never copies it.
func Wrap(f frame.Format, dw, dh, align int, buf []byte) (*Image, error) {
	img, size, err := layout(f, dw, dh, align)
	if err != nil {
		return nil, err
	}
	if len(buf) < size {
		return nil, &InsufficientBufferError{RequiredSize: size}
	}
	img.place(buf[:size:size])
	return img, nil
}

// Size returns the number of bytes Alloc would use for an image of format f.
func Size(f frame.Format, dw, dh, align int) (int, error) {
	_, size, err := layout(f, dw, dh, align)
	return size, err
}

// Free drops the image's references to its buffer. The image can't be used
// afterwards.
func Free(img *Image) {
	if img == nil {
		return
	}
	img.buf = nil
	img.Planes = [4][]byte{}
	img.Stride = [4]int{}
}

func layout(f frame.Format, dw, dh, align int) (*Image, int, error) {
	d, ok := frame.Lookup(f)
	if !ok {
		return nil, 0, fmt.Errorf("planar: can't allocate %s", frame.Name(f))
	}
	if dw < 0 || dh < 0 {
		return nil, 0, errBadDimension
	}
	if align == 0 {
		align = 1
	}
	if align < 0 || align&(align-1) != 0 {
		return nil, 0, errBadAlign
	}

	xmask := 1<<d.XChromaShift - 1
	ymask := 1<<d.YChromaShift - 1
	w := (dw + xmask) &^ xmask
	h := (dh + ymask) &^ ymask

	s := w
	if !d.Planar {
		s = d.BitsPerPixel * w / 8
	}
	s = (s + align - 1) &^ (align - 1)
	if d.HighBitDepth {
		s *= 2
	}

	img := &Image{
		Format:       f,
		W:            w,
		H:            h,
		DW:           dw,
		DH:           dh,
		XChromaShift: d.XChromaShift,
		YChromaShift: d.YChromaShift,
		BitDepth:     d.BitDepth,
		BitsPerPixel: d.BitsPerPixel,
	}
	img.Stride[PlaneY] = s
	if !d.Planar {
		return img, h * s, nil
	}

	cs := s >> d.XChromaShift
	img.Stride[PlaneU] = cs
	img.Stride[PlaneV] = cs
	size := h*s + 2*(h>>d.YChromaShift)*cs
	if d.HasAlpha {
		img.Stride[PlaneAlpha] = s
		size += h * s
	}
	return img, size, nil
}

// place carves the planes out of buf: alpha first, then luma, then the
// chroma planes in U, V order or V, U order for flipped formats.
func (img *Image) place(buf []byte) {
	img.buf = buf
	d, _ := frame.Lookup(img.Format)
	if !d.Planar {
		img.Planes[PlanePacked] = buf
		return
	}

	var off int
	take := func(p, rows int) {
		n := rows * img.Stride[p]
		img.Planes[p] = buf[off : off+n : off+n]
		off += n
	}

	if d.HasAlpha {
		take(PlaneAlpha, img.H)
	}
	take(PlaneY, img.H)
	ch := img.H >> img.YChromaShift
	if d.UVFlip {
		take(PlaneV, ch)
		take(PlaneU, ch)
	} else {
		take(PlaneU, ch)
		take(PlaneV, ch)
	}
}

// Descriptor returns the registry entry of the image's format.
func (img *Image) Descriptor() (frame.Descriptor, bool) {
	return frame.Lookup(img.Format)
}

// ByteDepth is the size of one sample in bytes.
func (img *Image) ByteDepth() int {
	return img.BitDepth / 8
}

// Planar reports whether the image stores its components in separate planes.
func (img *Image) Planar() bool {
	d, ok := img.Descriptor()
	return ok && d.Planar
}

// HasAlpha reports whether the image carries an alpha plane.
func (img *Image) HasAlpha() bool {
	d, ok := img.Descriptor()
	return ok && d.Planar && d.HasAlpha
}

// Buffer returns the contiguous allocation backing every plane.
func (img *Image) Buffer() []byte {
	return img.buf
}

// Plane returns a view of plane p with its logical dimensions. Luma, alpha
// and packed planes span the displayed size, chroma planes are shrunk by the
// chroma shifts.
func (img *Image) Plane(p int) Plane {
	w, h := img.DW, img.DH
	if p == PlaneU || p == PlaneV {
		w = frame.CeilingShift(w, img.XChromaShift)
		h = frame.CeilingShift(h, img.YChromaShift)
	}
	ss := img.ByteDepth()
	if ss < 1 {
		ss = 1
	}
	return Plane{
		Pix:        img.Planes[p],
		Stride:     img.Stride[p],
		Width:      w,
		Height:     h,
		SampleSize: ss,
	}
}

// Plane is a view of one rectangular sample plane.
type Plane struct {
	Pix        []byte
	Stride     int
	Width      int
	Height     int
	SampleSize int
}

// Extent returns the number of bytes from the first sample to the end of the
// last sample of the logical rectangle.
func (p Plane) Extent() int {
	if p.Width <= 0 || p.Height <= 0 {
		return 0
	}
	return p.Stride*(p.Height-1) + p.Width*p.SampleSize
}

// Row returns the samples of row i.
func (p Plane) Row(i int) []byte {
	off := i * p.Stride
	return p.Pix[off : off+p.Width*p.SampleSize]
}

// At returns the sample at column x of row y. 2 byte samples are read in
// the host byte order.
func (p Plane) At(x, y int) uint16 {
	p.check(x, y)
	off := y*p.Stride + x*p.SampleSize
	if p.SampleSize == 2 {
		return nativeUint16(p.Pix[off:])
	}
	return uint16(p.Pix[off])
}

// Set writes the sample at column x of row y.
func (p Plane) Set(x, y int, v uint16) {
	p.check(x, y)
	off := y*p.Stride + x*p.SampleSize
	if p.SampleSize == 2 {
		putNativeUint16(p.Pix[off:], v)
		return
	}
	p.Pix[off] = uint8(v)
}

func (p Plane) check(x, y int) {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		panic(fmt.Sprintf("planar: sample (%d, %d) out of %dx%d plane", x, y, p.Width, p.Height))
	}
}

func nativeUint16(b []byte) uint16 {
	if cpu.IsBigEndian {
		return uint16(b[0])<<8 | uint16(b[1])
	}
	return uint16(b[0]) | uint16(b[1])<<8
}

func putNativeUint16(b []byte, v uint16) {
	if cpu.IsBigEndian {
		b[0], b[1] = uint8(v>>8), uint8(v)
		return
	}
	b[0], b[1] = uint8(v), uint8(v>>8)
}

// CopyPixels copies every plane of src into dst row by row. Padding bytes of
// dst are left untouched.
func CopyPixels(dst, src *Image) error {
	if dst.Format != src.Format || dst.DW != src.DW || dst.DH != src.DH {
		return fmt.Errorf("planar: can't copy %dx%d %s into %dx%d %s",
			src.DW, src.DH, frame.Name(src.Format), dst.DW, dst.DH, frame.Name(dst.Format))
	}
	for _, p := range rawPlanes(src) {
		n := rowBytes(src, p)
		for row := 0; row < src.Plane(p).Height; row++ {
			copy(dst.Planes[p][row*dst.Stride[p]:], src.Planes[p][row*src.Stride[p]:row*src.Stride[p]+n])
		}
	}
	return nil
}
