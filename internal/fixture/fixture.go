// Package fixture builds small letter coded images whose transposes are
// known, shared by the transpose tests and the selftest command.
package fixture

import (
	"fmt"

	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
)

// Formats is the list exercised by the selftest command: every chroma shift
// combination, alpha, both sample sizes and packed layouts.
var Formats = []frame.Format{
	frame.FormatYV12,
	frame.FormatVPXI420,
	frame.FormatI440,
	frame.FormatI444,
	frame.FormatI444A,
	frame.FormatI42016,
	frame.FormatI44016,
	frame.FormatRGB24,
	frame.FormatRGB32,
	frame.FormatI422,
	frame.FormatI42216,
}

// Width and Height of the source fixture.
const (
	Width  = 6
	Height = 3
)

type rows map[int][]string

// Letters returns a Width x Height image of format f and the Height x Width
// image its transpose must equal. Rows of every plane start on a multiple of
// align samples.
//
// Luma reads abcdef/ghijkl/mnopqr. Chroma rows repeat one letter per row, so
// the transposed chroma repeats the row letters along every row. When the
// chroma shifts differ the expected chroma is what point resampling of the
// transposed plane gives.
func Letters(f frame.Format, align int) (src, control *planar.Image, err error) {
	d, ok := frame.Lookup(f)
	if !ok {
		return nil, nil, fmt.Errorf("fixture: unknown format %s", f)
	}

	srcRows := rows{planar.PlaneY: {"abcdef", "ghijkl", "mnopqr"}}
	controlRows := rows{planar.PlaneY: {"agm", "bhn", "cio", "djp", "ekq", "flr"}}

	if d.Planar {
		var u, v, cu, cv []string
		xs, ys := d.XChromaShift != 0, d.YChromaShift != 0
		switch {
		case xs && ys:
			u, v = []string{"AAA", "BBB"}, []string{"XXX", "YYY"}
			cu, cv = repeat("AB", 3), repeat("XY", 3)
		case !xs && !ys:
			u, v = []string{"AAAAAA", "BBBBBB", "CCCCCC"}, []string{"XXXXXX", "YYYYYY", "ZZZZZZ"}
			cu, cv = repeat("ABC", 6), repeat("XYZ", 6)
		case ys:
			// 6x2 chroma transposes to 2x6 and is resampled to 3x3.
			u, v = []string{"AAAAAA", "BBBBBB"}, []string{"XXXXXX", "YYYYYY"}
			cu, cv = repeat("ABB", 3), repeat("XYY", 3)
		default:
			// 3x3 chroma transposes to 3x3 and is resampled to 2x6,
			// keeping the first and last columns.
			u, v = []string{"AAA", "BBB", "CCC"}, []string{"XXX", "YYY", "ZZZ"}
			cu, cv = repeat("AC", 6), repeat("XZ", 6)
		}
		srcRows[planar.PlaneU], srcRows[planar.PlaneV] = u, v
		controlRows[planar.PlaneU], controlRows[planar.PlaneV] = cu, cv

		if d.HasAlpha {
			srcRows[planar.PlaneAlpha] = []string{"******", "     *", "******"}
			controlRows[planar.PlaneAlpha] = append(repeat("* *", 5), "***")
		}
	}

	if src, err = build(f, Width, Height, align, srcRows); err != nil {
		return nil, nil, err
	}
	if control, err = build(f, Height, Width, align, controlRows); err != nil {
		return nil, nil, err
	}
	return src, control, nil
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func build(f frame.Format, w, h, align int, r rows) (*planar.Image, error) {
	img, err := planar.Alloc(f, w, h, align)
	if err != nil {
		return nil, err
	}
	for p, lines := range r {
		for i, line := range lines {
			if err := planar.SetPixels(img, p, i, line); err != nil {
				return nil, fmt.Errorf("fixture: plane %d row %d: %w", p, i, err)
			}
		}
	}
	return img, nil
}
