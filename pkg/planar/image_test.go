package planar

import (
	"errors"
	"testing"

	"github.com/pion/planetranspose/internal/alias"
	"github.com/pion/planetranspose/pkg/frame"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocLayout(t *testing.T) {
	cases := map[string]struct {
		format         frame.Format
		dw, dh, align  int
		w, h           int
		stride         [4]int
		size           int
		chromaW, chroH int
	}{
		"I420Odd": {
			format: frame.FormatI420, dw: 5, dh: 3,
			w: 6, h: 4, stride: [4]int{6, 3, 3, 0}, size: 6*4 + 2*2*3,
			chromaW: 3, chroH: 2,
		},
		"I420Aligned": {
			format: frame.FormatI420, dw: 6, dh: 3, align: 16,
			w: 6, h: 4, stride: [4]int{16, 8, 8, 0}, size: 16*4 + 2*2*8,
			chromaW: 3, chroH: 2,
		},
		"I422": {
			format: frame.FormatI422, dw: 3, dh: 6,
			w: 4, h: 6, stride: [4]int{4, 2, 2, 0}, size: 4*6 + 2*6*2,
			chromaW: 2, chroH: 6,
		},
		"I440": {
			format: frame.FormatI440, dw: 3, dh: 6,
			w: 3, h: 6, stride: [4]int{3, 3, 3, 0}, size: 3*6 + 2*3*3,
			chromaW: 3, chroH: 3,
		},
		"I444A": {
			format: frame.FormatI444A, dw: 3, dh: 6,
			w: 3, h: 6, stride: [4]int{3, 3, 3, 3}, size: 4 * 3 * 6,
			chromaW: 3, chroH: 6,
		},
		"I42016": {
			format: frame.FormatI42016, dw: 6, dh: 3,
			w: 6, h: 4, stride: [4]int{12, 6, 6, 0}, size: 12*4 + 2*2*6,
			chromaW: 3, chroH: 2,
		},
		"RGB24": {
			format: frame.FormatRGB24, dw: 6, dh: 3, align: 4,
			w: 6, h: 3, stride: [4]int{20, 0, 0, 0}, size: 20 * 3,
			chromaW: 3, chroH: 3,
		},
	}

	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			img, err := Alloc(c.format, c.dw, c.dh, c.align)
			require.NoError(t, err)

			assert.Equal(t, c.w, img.W)
			assert.Equal(t, c.h, img.H)
			assert.Equal(t, c.dw, img.DW)
			assert.Equal(t, c.dh, img.DH)
			assert.Equal(t, c.stride, img.Stride)
			assert.Len(t, img.Buffer(), c.size)

			size, err := Size(c.format, c.dw, c.dh, c.align)
			require.NoError(t, err)
			assert.Equal(t, c.size, size)

			if img.Planar() {
				u := img.Plane(PlaneU)
				assert.Equal(t, c.chromaW, u.Width)
				assert.Equal(t, c.chroH, u.Height)
			} else {
				assert.Nil(t, img.Planes[PlaneU])
			}
		})
	}
}

func TestAllocPlanesDisjoint(t *testing.T) {
	for _, f := range frame.Formats() {
		img, err := Alloc(f, 7, 5, 8)
		require.NoError(t, err, f)

		var total int
		for p := range img.Planes {
			total += len(img.Planes[p])
			for q := p + 1; q < len(img.Planes); q++ {
				assert.False(t, alias.AnyOverlap(img.Planes[p], len(img.Planes[p]), img.Planes[q], len(img.Planes[q])),
					"%s planes %d and %d overlap", f, p, q)
			}
		}
		assert.Equal(t, len(img.Buffer()), total, f)
	}
}

func TestAllocPlaneOrder(t *testing.T) {
	offset := func(img *Image, p int) int {
		return int(alias.Of(img.Planes[p], 1).Start - alias.Of(img.Buffer(), 1).Start)
	}

	yv12, err := Alloc(frame.FormatYV12, 4, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, offset(yv12, PlaneY))
	assert.Less(t, offset(yv12, PlaneV), offset(yv12, PlaneU))

	i444a, err := Alloc(frame.FormatI444A, 4, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, offset(i444a, PlaneAlpha))
	assert.Less(t, offset(i444a, PlaneY), offset(i444a, PlaneU))
}

func TestAllocErrors(t *testing.T) {
	_, err := Alloc(frame.FormatNone, 4, 4, 0)
	assert.Error(t, err)
	_, err = Alloc(frame.FormatNV21, 4, 4, 0)
	assert.Error(t, err)
	_, err = Alloc(frame.FormatI420, 4, 4, 3)
	assert.Error(t, err)
	_, err = Alloc(frame.FormatI420, -1, 4, 0)
	assert.Error(t, err)
}

func TestWrap(t *testing.T) {
	buf := make([]byte, 1000)
	img, err := Wrap(frame.FormatI420, 6, 3, 0, buf)
	require.NoError(t, err)
	assert.True(t, alias.AnyOverlap(img.Planes[PlaneY], 1, buf, 1))

	_, err = Wrap(frame.FormatI420, 6, 3, 0, buf[:10])
	var e *InsufficientBufferError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 6*4+2*2*3, e.RequiredSize)
}

func TestFree(t *testing.T) {
	img, err := Alloc(frame.FormatI420, 2, 2, 0)
	require.NoError(t, err)
	Free(img)
	assert.Nil(t, img.Buffer())
	assert.Nil(t, img.Planes[PlaneY])
	Free(nil)
}

func TestPlaneAccessors(t *testing.T) {
	img, err := Alloc(frame.FormatI42016, 3, 2, 4)
	require.NoError(t, err)

	y := img.Plane(PlaneY)
	assert.Equal(t, 2, y.SampleSize)
	assert.Equal(t, 8+3*2, y.Extent())

	y.Set(2, 1, 0xBEEF)
	assert.Equal(t, uint16(0xBEEF), y.At(2, 1))
	assert.Len(t, y.Row(1), 6)
	assert.Panics(t, func() { y.At(3, 0) })
	assert.Panics(t, func() { y.Set(0, 2, 1) })

	assert.Equal(t, 0, Plane{Width: 0, Height: 3, Stride: 4, SampleSize: 1}.Extent())
}
