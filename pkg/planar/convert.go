package planar

import (
	"fmt"
	"image"
	"image/color"

	"github.com/pion/planetranspose/pkg/frame"
	"golang.org/x/image/draw"
)

var ratioFormats = map[image.YCbCrSubsampleRatio]frame.Format{
	image.YCbCrSubsampleRatio444: frame.FormatI444,
	image.YCbCrSubsampleRatio422: frame.FormatI422,
	image.YCbCrSubsampleRatio420: frame.FormatI420,
	image.YCbCrSubsampleRatio440: frame.FormatI440,
}

var formatRatios = map[frame.Format]image.YCbCrSubsampleRatio{
	frame.FormatI444:    image.YCbCrSubsampleRatio444,
	frame.FormatI422:    image.YCbCrSubsampleRatio422,
	frame.FormatI420:    image.YCbCrSubsampleRatio420,
	frame.FormatYV12:    image.YCbCrSubsampleRatio420,
	frame.FormatVPXI420: image.YCbCrSubsampleRatio420,
	frame.FormatVPXYV12: image.YCbCrSubsampleRatio420,
	frame.FormatI440:    image.YCbCrSubsampleRatio440,
}

// FromImage copies src into a new planar image.
// YCbCr images keep their subsampling when it has a planar equivalent,
// grayscale images get neutral chroma, and everything else is converted to
// I444 through RGBA. Conversion can be lossy.
func FromImage(src image.Image) (*Image, error) {
	b := src.Bounds()
	switch s := src.(type) {
	case *image.YCbCr:
		if f, ok := ratioFormats[s.SubsampleRatio]; ok {
			return fromYCbCr(f, s, nil)
		}
	case *image.NYCbCrA:
		if s.SubsampleRatio == image.YCbCrSubsampleRatio444 {
			return fromYCbCr(frame.FormatI444A, &s.YCbCr, s)
		}
	case *image.Gray:
		img, err := Alloc(frame.FormatI444, b.Dx(), b.Dy(), 0)
		if err != nil {
			return nil, err
		}
		for row := 0; row < b.Dy(); row++ {
			off := s.PixOffset(b.Min.X, b.Min.Y+row)
			copy(img.Plane(PlaneY).Row(row), s.Pix[off:off+b.Dx()])
		}
		fill(img.Plane(PlaneU), 0x80)
		fill(img.Plane(PlaneV), 0x80)
		return img, nil
	case *image.Gray16:
		img, err := Alloc(frame.FormatI44416, b.Dx(), b.Dy(), 0)
		if err != nil {
			return nil, err
		}
		y := img.Plane(PlaneY)
		for row := 0; row < b.Dy(); row++ {
			for col := 0; col < b.Dx(); col++ {
				y.Set(col, row, s.Gray16At(b.Min.X+col, b.Min.Y+row).Y)
			}
		}
		fill(img.Plane(PlaneU), 0x8000)
		fill(img.Plane(PlaneV), 0x8000)
		return img, nil
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return fromRGBA(rgba)
}

func fill(p Plane, v uint16) {
	for row := 0; row < p.Height; row++ {
		for col := 0; col < p.Width; col++ {
			p.Set(col, row, v)
		}
	}
}

func fromYCbCr(f frame.Format, s *image.YCbCr, alpha *image.NYCbCrA) (*Image, error) {
	b := s.Rect
	img, err := Alloc(f, b.Dx(), b.Dy(), 0)
	if err != nil {
		return nil, err
	}

	y := img.Plane(PlaneY)
	for row := 0; row < y.Height; row++ {
		off := s.YOffset(b.Min.X, b.Min.Y+row)
		copy(y.Row(row), s.Y[off:])
	}
	for _, p := range []int{PlaneU, PlaneV} {
		src := s.Cb
		if p == PlaneV {
			src = s.Cr
		}
		c := img.Plane(p)
		for row := 0; row < c.Height; row++ {
			off := s.COffset(b.Min.X, b.Min.Y+row<<img.YChromaShift)
			copy(c.Row(row), src[off:])
		}
	}
	if alpha != nil {
		a := img.Plane(PlaneAlpha)
		for row := 0; row < a.Height; row++ {
			off := alpha.AOffset(b.Min.X, b.Min.Y+row)
			copy(a.Row(row), alpha.A[off:])
		}
	}
	return img, nil
}

func fromRGBA(src *image.RGBA) (*Image, error) {
	b := src.Bounds()
	img, err := Alloc(frame.FormatI444, b.Dx(), b.Dy(), 0)
	if err != nil {
		return nil, err
	}
	y, u, v := img.Plane(PlaneY), img.Plane(PlaneU), img.Plane(PlaneV)
	for row := 0; row < b.Dy(); row++ {
		pix := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+row):]
		yr, ur, vr := y.Row(row), u.Row(row), v.Row(row)
		for col := 0; col < b.Dx(); col++ {
			yr[col], ur[col], vr[col] = color.RGBToYCbCr(pix[4*col], pix[4*col+1], pix[4*col+2])
		}
	}
	return img, nil
}

// ToImage copies img into the closest standard library image type. High bit
// depth images only keep their luma plane, as *image.Gray16.
func ToImage(img *Image) (image.Image, error) {
	r := image.Rect(0, 0, img.DW, img.DH)
	d, ok := img.Descriptor()
	switch {
	case !ok || !d.Planar:
		return nil, fmt.Errorf("planar: can't convert %s to a standard image", frame.Name(img.Format))
	case d.HighBitDepth:
		dst := image.NewGray16(r)
		y := img.Plane(PlaneY)
		for row := 0; row < y.Height; row++ {
			for col := 0; col < y.Width; col++ {
				dst.SetGray16(col, row, color.Gray16{Y: y.At(col, row)})
			}
		}
		return dst, nil
	case d.HasAlpha:
		dst := image.NewNYCbCrA(r, image.YCbCrSubsampleRatio444)
		toYCbCr(&dst.YCbCr, img)
		a := img.Plane(PlaneAlpha)
		for row := 0; row < a.Height; row++ {
			copy(dst.A[row*dst.AStride:], a.Row(row))
		}
		return dst, nil
	}

	ratio, ok := formatRatios[img.Format]
	if !ok {
		return nil, fmt.Errorf("planar: can't convert %s to a standard image", frame.Name(img.Format))
	}
	dst := image.NewYCbCr(r, ratio)
	toYCbCr(dst, img)
	return dst, nil
}

func toYCbCr(dst *image.YCbCr, img *Image) {
	y := img.Plane(PlaneY)
	for row := 0; row < y.Height; row++ {
		copy(dst.Y[row*dst.YStride:], y.Row(row))
	}
	u, v := img.Plane(PlaneU), img.Plane(PlaneV)
	for row := 0; row < u.Height; row++ {
		copy(dst.Cb[row*dst.CStride:], u.Row(row))
		copy(dst.Cr[row*dst.CStride:], v.Row(row))
	}
}
