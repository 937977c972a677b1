// Package transpose swaps the rows and columns of planar images.
//
// Luma and alpha planes are transposed sample by sample. Chroma planes are
// transposed too when both chroma shifts are equal. When they differ, the
// transposed chroma plane no longer has the geometry the format expects, so it
// is point resampled into the destination plane.
package transpose

import (
	"errors"
	"fmt"

	"github.com/pion/planetranspose/internal/alias"
	"github.com/pion/planetranspose/internal/pool"
	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
)

var (
	// ErrInvalidDepth means the source samples are narrower than a byte.
	ErrInvalidDepth = errors.New("transpose: unsupported sample byte depth")
	// ErrNoFormat means the source has no usable pixel format.
	ErrNoFormat = errors.New("transpose: image has no pixel format")
	// ErrAllocUnsupported means no destination can be allocated for the
	// source format.
	ErrAllocUnsupported = errors.New("transpose: can't allocate a destination for this format")
	// ErrAliased means the destination shares memory with the source.
	ErrAliased = errors.New("transpose: destination overlaps source")
	// ErrScratch means the temporary chroma plane couldn't be allocated.
	ErrScratch = errors.New("transpose: can't allocate scratch plane")
	// ErrDestination means the destination can't hold the transposed source.
	ErrDestination = errors.New("transpose: destination doesn't fit the transposed source")
)

// maxScratch is the largest temporary chroma plane a call may use.
var maxScratch = 1 << 30

// Transpose writes the transpose of src into dst and returns dst. When dst is
// nil a new image with the width and height of src swapped is allocated and
// returned; the caller owns it.
//
// dst must not share memory with src. Every destination plane is checked
// against every source plane before anything is written, so src is never
// modified.
func Transpose(dst, src *planar.Image) (*planar.Image, error) {
	if src == nil {
		return nil, ErrNoFormat
	}
	byteDepth := src.ByteDepth()
	if byteDepth < 1 {
		return nil, fmt.Errorf("%w: %d bits", ErrInvalidDepth, src.BitDepth)
	}
	if src.Format == frame.FormatNone {
		return nil, ErrNoFormat
	}
	d, ok := frame.Lookup(src.Format)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFormat, src.Format)
	}
	k := kindOf(byteDepth)

	planes := []int{planar.PlaneY}
	if d.Planar {
		planes = append(planes, planar.PlaneU, planar.PlaneV)
		if d.HasAlpha {
			planes = append(planes, planar.PlaneAlpha)
		}
	}

	if dst == nil {
		// 4:4:4 with alpha is never allocated here, callers must pass their
		// own destination.
		if src.Format == frame.FormatI444A {
			return nil, fmt.Errorf("%w: %s", ErrAllocUnsupported, frame.Name(src.Format))
		}
		var err error
		if dst, err = planar.Alloc(src.Format, src.DH, src.DW, 0); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAllocUnsupported, err)
		}
	}

	if alias.OfValue(dst).Overlaps(alias.OfValue(src)) ||
		alias.OfValue(dst).Overlaps(region(src, planar.PlaneY)) {
		return nil, ErrAliased
	}
	if err := checkDestination(dst, src, planes); err != nil {
		return nil, err
	}
	for _, p := range planes {
		if err := checkPlane(dst, src, p, planes); err != nil {
			return nil, err
		}
	}

	transposePlane(k,
		dst.Planes[planar.PlaneY], dst.Stride[planar.PlaneY],
		src.Planes[planar.PlaneY], src.Stride[planar.PlaneY],
		src.DW, src.DH)

	if !d.Planar {
		return dst, nil
	}

	if err := transposeChroma(k, dst, src); err != nil {
		return nil, err
	}

	if d.HasAlpha {
		transposePlane(k,
			dst.Planes[planar.PlaneAlpha], dst.Stride[planar.PlaneAlpha],
			src.Planes[planar.PlaneAlpha], src.Stride[planar.PlaneAlpha],
			src.DW, src.DH)
	}
	return dst, nil
}

func transposeChroma(k sampleKind, dst, src *planar.Image) error {
	// Source chroma plane: n columns x m rows.
	n := frame.CeilingShift(src.DW, src.XChromaShift)
	m := frame.CeilingShift(src.DH, src.YChromaShift)
	symmetric := src.XChromaShift == src.YChromaShift

	var scratch []byte
	scratchStride := m * k.size()
	if !symmetric {
		size := n * scratchStride
		if size > maxScratch {
			return fmt.Errorf("%w: %d bytes", ErrScratch, size)
		}
		scratch = pool.Get(size)
		defer pool.Put(scratch)
	}

	for _, p := range []int{planar.PlaneU, planar.PlaneV} {
		if symmetric {
			transposePlane(k, dst.Planes[p], dst.Stride[p], src.Planes[p], src.Stride[p], n, m)
			continue
		}

		// The transposed plane is m columns x n rows, but the destination
		// subsamples the new rows by the vertical shift and the new columns by
		// the horizontal one.
		transposePlane(k, scratch, scratchStride, src.Planes[p], src.Stride[p], n, m)
		dp := dst.Plane(p)
		if !resizePlane(k, dst.Planes[p], dst.Stride[p], dp.Width, dp.Height, scratch, scratchStride, m, n) &&
			dp.Width > 0 && dp.Height > 0 {
			return fmt.Errorf("%w: can't resample %dx%d chroma into %dx%d", ErrDestination, m, n, dp.Width, dp.Height)
		}
	}
	return nil
}

// region is the memory holding the logical rectangle of plane p.
func region(img *planar.Image, p int) alias.Region {
	pl := img.Plane(p)
	return alias.Of(pl.Pix, pl.Extent())
}

// checkPlane fails when plane p of dst shares memory with any plane of src.
func checkPlane(dst, src *planar.Image, p int, planes []int) error {
	dp := dst.Plane(p)
	for _, q := range planes {
		sp := src.Plane(q)
		if alias.AnyOverlap(dp.Pix, dp.Extent(), sp.Pix, sp.Extent()) {
			return fmt.Errorf("%w: plane %d writes into source plane %d", ErrAliased, p, q)
		}
	}
	return nil
}

func checkDestination(dst, src *planar.Image, planes []int) error {
	if dst.Format != src.Format || dst.ByteDepth() != src.ByteDepth() {
		return fmt.Errorf("%w: format %s, expected %s", ErrDestination, frame.Name(dst.Format), frame.Name(src.Format))
	}
	if dst.DW != src.DH || dst.DH != src.DW {
		return fmt.Errorf("%w: %dx%d, expected %dx%d", ErrDestination, dst.DW, dst.DH, src.DH, src.DW)
	}
	if dst.XChromaShift != src.XChromaShift || dst.YChromaShift != src.YChromaShift {
		return fmt.Errorf("%w: chroma shifts differ", ErrDestination)
	}
	for _, p := range planes {
		pl := dst.Plane(p)
		if pl.Width <= 0 || pl.Height <= 0 {
			continue
		}
		if pl.Stride < pl.Width*pl.SampleSize || len(pl.Pix) < pl.Extent() {
			return fmt.Errorf("%w: plane %d too small", ErrDestination, p)
		}
		sp := src.Plane(p)
		if sp.Stride < sp.Width*sp.SampleSize || len(sp.Pix) < sp.Extent() {
			return fmt.Errorf("%w: source plane %d too small", ErrDestination, p)
		}
	}
	return nil
}
