package planar

import (
	"fmt"
	"strings"

	"github.com/pion/planetranspose/pkg/frame"
)

// Equal reports whether a and b have the same format, geometry and samples.
// Only the logical rectangle of each plane is compared; padding is ignored.
// A plane allocated on one side only makes the images different.
func Equal(a, b *Image) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Format != b.Format || a.BitDepth != b.BitDepth {
		return false
	}
	if a.DW != b.DW || a.DH != b.DH {
		return false
	}
	if a.XChromaShift != b.XChromaShift || a.YChromaShift != b.YChromaShift {
		return false
	}

	for p := PlaneY; p <= PlaneAlpha; p++ {
		if (a.Planes[p] == nil) != (b.Planes[p] == nil) {
			return false
		}
		if a.Planes[p] == nil {
			continue
		}
		pa, pb := a.Plane(p), b.Plane(p)
		for row := 0; row < pa.Height; row++ {
			if string(pa.Row(row)) != string(pb.Row(row)) {
				return false
			}
		}
	}
	return true
}

// String dumps the plane contents, one sample per column. Samples are
// printed as characters, which makes letter-coded fixtures readable.
func (img *Image) String() string {
	if img == nil || img.Format == frame.FormatNone {
		return "None"
	}

	var sb strings.Builder
	planar := img.Planar()
	if planar {
		sb.WriteString("PLANE Y :\n")
	}
	dumpPlane(&sb, img.Plane(PlaneY))
	if !planar {
		return sb.String()
	}

	for p := PlaneU; p <= PlaneV; p++ {
		fmt.Fprintf(&sb, "PLANE %c:\n", 'U'+rune(p-PlaneU))
		dumpPlane(&sb, img.Plane(p))
	}
	if img.HasAlpha() && img.Planes[PlaneAlpha] != nil {
		sb.WriteString("PLANE ALPHA\n")
		dumpPlane(&sb, img.Plane(PlaneAlpha))
	}
	return sb.String()
}

func dumpPlane(sb *strings.Builder, p Plane) {
	if p.Pix == nil {
		return
	}
	for row := 0; row < p.Height; row++ {
		r := p.Row(row)
		for col := 0; col < p.Width; col++ {
			// The low order byte of a sample carries the fixture letter.
			sb.WriteByte(r[col*p.SampleSize])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
}

// SetPixels writes one letter per sample into a row of plane. Wider samples
// get the letter in their first byte and filler bytes after it, so fixtures
// stay readable in every bit depth.
func SetPixels(img *Image, plane, row int, s string) error {
	p, err := fixtureRow(img, plane, row, s)
	if err != nil {
		return err
	}

	step, fill, err := sampleLayout(img.BitDepth)
	if err != nil {
		return err
	}
	dp := p.Pix[row*p.Stride:]
	for i := 0; i < len(s); i++ {
		dp[i*step] = s[i]
		for k := 1; k < step; k++ {
			dp[i*step+k] = fill
		}
	}
	return nil
}

// EqPixels reports whether a row of plane starts with the letters of s, as
// written by SetPixels.
func EqPixels(img *Image, plane, row int, s string) bool {
	p, err := fixtureRow(img, plane, row, s)
	if err != nil {
		return false
	}
	step, _, err := sampleLayout(img.BitDepth)
	if err != nil {
		return false
	}
	dp := p.Pix[row*p.Stride:]
	for i := 0; i < len(s); i++ {
		if dp[i*step] != s[i] {
			return false
		}
	}
	return true
}

func fixtureRow(img *Image, plane, row int, s string) (Plane, error) {
	if plane < PlaneY || plane > PlaneAlpha || img.Planes[plane] == nil {
		return Plane{}, fmt.Errorf("planar: image has no plane %d", plane)
	}
	p := img.Plane(plane)
	if row < 0 || row >= p.Height {
		return Plane{}, fmt.Errorf("planar: row %d out of plane with %d rows", row, p.Height)
	}
	step, _, err := sampleLayout(img.BitDepth)
	if err != nil {
		return Plane{}, err
	}
	if len(s) > p.Width || len(s)*step > p.Stride {
		return Plane{}, fmt.Errorf("planar: %q doesn't fit a row of %d samples", s, p.Width)
	}
	return p, nil
}

// sampleLayout returns how many bytes a fixture letter occupies in the given
// bit depth and the byte used to pad it.
func sampleLayout(bitDepth int) (int, byte, error) {
	switch bitDepth {
	case 8:
		return 1, 0, nil
	case 16:
		return 2, ' ', nil
	case 24:
		return 3, ' ', nil
	case 32:
		return 4, 0, nil
	case 48:
		return 6, 0, nil
	}
	return 0, 0, fmt.Errorf("planar: unexpected bit depth %d", bitDepth)
}
