package transpose

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pion/planetranspose/internal/fixture"
	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransposeLetters(t *testing.T) {
	for _, f := range fixture.Formats {
		for _, align := range []int{0, 16} {
			f, align := f, align
			t.Run(string(f), func(t *testing.T) {
				src, control, err := fixture.Letters(f, align)
				require.NoError(t, err)

				dst, err := planar.Alloc(f, fixture.Height, fixture.Width, align)
				require.NoError(t, err)

				out, err := Transpose(dst, src)
				require.NoError(t, err)
				assert.Same(t, dst, out)
				assert.True(t, planar.Equal(control, out),
					"expected:\n%s\ngot:\n%s", control, out)
			})
		}
	}
}

func TestTransposeI420Scenario(t *testing.T) {
	src, err := planar.Alloc(frame.FormatI420, 6, 3, 0)
	require.NoError(t, err)
	for i, row := range []string{"abcdef", "ghijkl", "mnopqr"} {
		require.NoError(t, planar.SetPixels(src, planar.PlaneY, i, row))
	}
	require.NoError(t, planar.SetPixels(src, planar.PlaneU, 0, "AAA"))
	require.NoError(t, planar.SetPixels(src, planar.PlaneU, 1, "BBB"))
	require.NoError(t, planar.SetPixels(src, planar.PlaneV, 0, "XXX"))
	require.NoError(t, planar.SetPixels(src, planar.PlaneV, 1, "YYY"))

	dst, err := Transpose(nil, src)
	require.NoError(t, err)
	assert.Equal(t, 3, dst.DW)
	assert.Equal(t, 6, dst.DH)

	for i, row := range []string{"agm", "bhn", "cio", "djp", "ekq", "flr"} {
		assert.Equal(t, row, string(dst.Plane(planar.PlaneY).Row(i)))
	}
	for i := 0; i < 3; i++ {
		assert.Equal(t, "AB", string(dst.Plane(planar.PlaneU).Row(i)))
		assert.Equal(t, "XY", string(dst.Plane(planar.PlaneV).Row(i)))
	}
}

func randomImage(t *testing.T, f frame.Format, w, h, align int) *planar.Image {
	t.Helper()
	img, err := planar.Alloc(f, w, h, align)
	require.NoError(t, err)
	rand.New(rand.NewSource(int64(w*1000+h))).Read(img.Buffer())
	return img
}

func TestTransposeInvolution(t *testing.T) {
	formats := []frame.Format{
		frame.FormatI420, frame.FormatYV12, frame.FormatI444,
		frame.FormatI42016, frame.FormatI44416, frame.FormatRGB24,
	}
	sizes := [][2]int{{1, 1}, {1, 5}, {5, 1}, {7, 3}, {16, 9}, {33, 17}}

	for _, f := range formats {
		for _, sz := range sizes {
			src := randomImage(t, f, sz[0], sz[1], 8)

			once, err := Transpose(nil, src)
			require.NoError(t, err)
			assert.Equal(t, src.DH, once.DW)
			assert.Equal(t, src.DW, once.DH)

			twice, err := Transpose(nil, once)
			require.NoError(t, err)
			assert.True(t, planar.Equal(src, twice), "%s %dx%d", f, sz[0], sz[1])
		}
	}
}

func TestTransposeLumaExact(t *testing.T) {
	for _, f := range []frame.Format{frame.FormatI420, frame.FormatI42016} {
		src := randomImage(t, f, 13, 7, 4)
		dst, err := Transpose(nil, src)
		require.NoError(t, err)

		sy, dy := src.Plane(planar.PlaneY), dst.Plane(planar.PlaneY)
		for i := 0; i < src.DH; i++ {
			for j := 0; j < src.DW; j++ {
				require.Equal(t, sy.At(j, i), dy.At(i, j), "%s (%d, %d)", f, i, j)
			}
		}
	}
}

func TestTransposeDimensionSwap(t *testing.T) {
	for _, f := range frame.Formats() {
		src := randomImage(t, f, 9, 4, 0)
		dst, err := planar.Alloc(f, 4, 9, 0)
		require.NoError(t, err)

		out, err := Transpose(dst, src)
		require.NoError(t, err, f)
		assert.Equal(t, 4, out.DW, f)
		assert.Equal(t, 9, out.DH, f)
	}
}

func TestTransposeAsymmetricChroma(t *testing.T) {
	// 4x4 I422 with chroma columns 0..1 transposes to chroma 2 wide x 4 high
	// sampled from a 4 wide x 2 high transposed plane.
	src, err := planar.Alloc(frame.FormatI422, 4, 4, 0)
	require.NoError(t, err)
	for i, row := range []string{"ae", "bf", "cg", "dh"} {
		require.NoError(t, planar.SetPixels(src, planar.PlaneU, i, row))
	}

	dst, err := Transpose(nil, src)
	require.NoError(t, err)
	// Transposed: "abcd" / "efgh". Resampled columns 0 and 3, rows 0, 0, 1, 1.
	u := dst.Plane(planar.PlaneU)
	assert.Equal(t, 2, u.Width)
	assert.Equal(t, 4, u.Height)
	for i, row := range []string{"ad", "ad", "eh", "eh"} {
		assert.Equal(t, row, string(u.Row(i)), "row %d", i)
	}
}

func TestTransposeInvalidInput(t *testing.T) {
	_, err := Transpose(nil, nil)
	assert.ErrorIs(t, err, ErrNoFormat)

	src := randomImage(t, frame.FormatI420, 4, 4, 0)
	src.BitDepth = 0
	_, err = Transpose(nil, src)
	assert.ErrorIs(t, err, ErrInvalidDepth)

	src = randomImage(t, frame.FormatI420, 4, 4, 0)
	src.Format = frame.FormatNone
	_, err = Transpose(nil, src)
	assert.ErrorIs(t, err, ErrNoFormat)

	src.Format = frame.Format("I411")
	_, err = Transpose(nil, src)
	assert.ErrorIs(t, err, ErrNoFormat)
}

func TestTransposeRefusesAllocatingI444A(t *testing.T) {
	src, control, err := fixture.Letters(frame.FormatI444A, 0)
	require.NoError(t, err)

	_, err = Transpose(nil, src)
	assert.ErrorIs(t, err, ErrAllocUnsupported)

	// A caller supplied destination works.
	dst, err := planar.Alloc(frame.FormatI444A, fixture.Height, fixture.Width, 0)
	require.NoError(t, err)
	out, err := Transpose(dst, src)
	require.NoError(t, err)
	assert.True(t, planar.Equal(control, out))
}

func snapshot(img *planar.Image) []byte {
	return append([]byte(nil), img.Buffer()...)
}

func TestTransposeAliasing(t *testing.T) {
	t.Run("SameImage", func(t *testing.T) {
		src := randomImage(t, frame.FormatI444, 4, 4, 0)
		before := snapshot(src)
		_, err := Transpose(src, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("SharedBuffer", func(t *testing.T) {
		src := randomImage(t, frame.FormatI420, 6, 6, 0)
		before := snapshot(src)
		dst, err := planar.Wrap(frame.FormatI420, 6, 6, 0, src.Buffer())
		require.NoError(t, err)

		_, err = Transpose(dst, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("DestinationInsideLuma", func(t *testing.T) {
		// The destination starts in the middle of the source's luma rows.
		size, err := planar.Size(frame.FormatI420, 8, 8, 0)
		require.NoError(t, err)
		buf := make([]byte, 3*size)
		src, err := planar.Wrap(frame.FormatI420, 8, 8, 0, buf)
		require.NoError(t, err)
		before := snapshot(src)
		dst, err := planar.Wrap(frame.FormatI420, 8, 8, 0, buf[20:])
		require.NoError(t, err)

		_, err = Transpose(dst, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("LumaIntoSourceChroma", func(t *testing.T) {
		// The destination luma starts where the source U plane starts.
		size, err := planar.Size(frame.FormatI420, 8, 8, 0)
		require.NoError(t, err)
		buf := make([]byte, 3*size)
		src, err := planar.Wrap(frame.FormatI420, 8, 8, 0, buf)
		require.NoError(t, err)
		rand.New(rand.NewSource(1)).Read(src.Buffer())
		before := snapshot(src)
		dst, err := planar.Wrap(frame.FormatI420, 8, 8, 0, buf[8*8:])
		require.NoError(t, err)

		_, err = Transpose(dst, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("LumaIntoSourceAlpha", func(t *testing.T) {
		src := randomImage(t, frame.FormatI444A, 4, 4, 0)
		dst, err := planar.Alloc(frame.FormatI444A, 4, 4, 0)
		require.NoError(t, err)
		dst.Planes[planar.PlaneY] = src.Planes[planar.PlaneAlpha]
		before := snapshot(src)

		_, err = Transpose(dst, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("ChromaIntoSourceChroma", func(t *testing.T) {
		src := randomImage(t, frame.FormatI420, 4, 4, 0)
		dst, err := planar.Alloc(frame.FormatI420, 4, 4, 0)
		require.NoError(t, err)
		// Point the destination V plane at the source U plane.
		dst.Planes[planar.PlaneV] = src.Planes[planar.PlaneU]
		before := snapshot(src)

		_, err = Transpose(dst, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("AlphaIntoSourceLuma", func(t *testing.T) {
		src := randomImage(t, frame.FormatI444A, 4, 4, 0)
		dst, err := planar.Alloc(frame.FormatI444A, 4, 4, 0)
		require.NoError(t, err)
		dst.Planes[planar.PlaneAlpha] = src.Planes[planar.PlaneY]
		before := snapshot(src)

		_, err = Transpose(dst, src)
		assert.ErrorIs(t, err, ErrAliased)
		assert.Equal(t, before, src.Buffer())
	})

	t.Run("AdjacentIsFine", func(t *testing.T) {
		size, err := planar.Size(frame.FormatI420, 4, 4, 0)
		require.NoError(t, err)
		buf := make([]byte, 2*size)
		src, err := planar.Wrap(frame.FormatI420, 4, 4, 0, buf[:size])
		require.NoError(t, err)
		dst, err := planar.Wrap(frame.FormatI420, 4, 4, 0, buf[size:])
		require.NoError(t, err)

		_, err = Transpose(dst, src)
		assert.NoError(t, err)
	})
}

func TestTransposeDestinationMismatch(t *testing.T) {
	src := randomImage(t, frame.FormatI420, 6, 4, 0)

	cases := map[string]func() *planar.Image{
		"Format": func() *planar.Image {
			img, _ := planar.Alloc(frame.FormatI444, 4, 6, 0)
			return img
		},
		"NotSwapped": func() *planar.Image {
			img, _ := planar.Alloc(frame.FormatI420, 6, 4, 0)
			return img
		},
		"ShortPlane": func() *planar.Image {
			img, _ := planar.Alloc(frame.FormatI420, 4, 6, 0)
			img.Planes[planar.PlaneU] = img.Planes[planar.PlaneU][:1]
			return img
		},
	}
	for name, build := range cases {
		build := build
		t.Run(name, func(t *testing.T) {
			_, err := Transpose(build(), src)
			assert.ErrorIs(t, err, ErrDestination)
		})
	}
}

func TestTransposeScratchFailure(t *testing.T) {
	saved := maxScratch
	maxScratch = 0
	defer func() { maxScratch = saved }()

	src := randomImage(t, frame.FormatI440, 4, 4, 0)
	_, err := Transpose(nil, src)
	assert.True(t, errors.Is(err, ErrScratch))

	// Symmetric formats need no scratch plane.
	src = randomImage(t, frame.FormatI420, 4, 4, 0)
	_, err = Transpose(nil, src)
	assert.NoError(t, err)
}

func TestTransposeEmpty(t *testing.T) {
	for _, f := range []frame.Format{frame.FormatI420, frame.FormatI422} {
		src, err := planar.Alloc(f, 0, 3, 0)
		require.NoError(t, err)
		dst, err := Transpose(nil, src)
		require.NoError(t, err)
		assert.Equal(t, 3, dst.DW)
		assert.Equal(t, 0, dst.DH)
	}
}

func BenchmarkTranspose(b *testing.B) {
	for _, f := range []frame.Format{frame.FormatI420, frame.FormatI422, frame.FormatI42016} {
		src, _ := planar.Alloc(f, 1920, 1080, 32)
		dst, _ := planar.Alloc(f, 1080, 1920, 32)
		b.Run(string(f), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				if _, err := Transpose(dst, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
