package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/io/video"
	"github.com/pion/planetranspose/pkg/planar"
	"github.com/pion/planetranspose/pkg/transpose"
	"github.com/spf13/cobra"
)

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Transpose a stream of raw frames",
	RunE:  runRaw,
}

func init() {
	rawCmd.Flags().StringP("input", "i", "", "Input raw frames")
	rawCmd.Flags().StringP("output", "o", "", "Output raw frames")
	rawCmd.Flags().String("format", "I420", "Pixel format of the input frames")
	rawCmd.Flags().Int("width", 0, "Frame width")
	rawCmd.Flags().Int("height", 0, "Frame height")
	rawCmd.Flags().Bool("check", false, "Transpose every frame back and compare it with the input")
	rawCmd.MarkFlagRequired("input")
	rawCmd.MarkFlagRequired("output")
	rawCmd.MarkFlagRequired("width")
	rawCmd.MarkFlagRequired("height")
	rootCmd.AddCommand(rawCmd)
}

func runRaw(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	check, _ := cmd.Flags().GetBool("check")

	f, err := frame.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	defer in.Close()

	r, err := video.NewRawReader(bufio.NewReader(in), f, width, height)
	if err != nil {
		return err
	}

	var transforms []video.TransformFunc
	if check {
		transforms = append(transforms, roundTripCheck())
	}
	transforms = append(transforms, video.Transpose())

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	w := bufio.NewWriter(out)

	n, err := video.Copy(w, video.Merge(transforms...)(r))
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transposed %d %s frames %dx%d -> %dx%d\n",
		n, frame.Name(f), width, height, height, width)
	return nil
}

// roundTripCheck transposes every frame twice and fails the stream when the
// result differs from the frame it started from.
func roundTripCheck() video.TransformFunc {
	return func(r video.Reader) video.Reader {
		stored := video.NewFrameBuffer(0)
		var once, twice *planar.Image
		var count int
		return video.ReaderFunc(func() (*planar.Image, func(), error) {
			img, release, err := r.Read()
			if err != nil {
				return nil, func() {}, err
			}
			count++

			if err := stored.StoreCopy(img); err != nil {
				release()
				return nil, func() {}, err
			}
			if once, err = reuse(once, img.Format, img.DH, img.DW); err == nil {
				once, err = transpose.Transpose(once, stored.Load())
			}
			if err == nil {
				if twice, err = reuse(twice, img.Format, img.DW, img.DH); err == nil {
					twice, err = transpose.Transpose(twice, once)
				}
			}
			if err != nil {
				release()
				return nil, func() {}, err
			}
			if !survived(stored.Load(), twice) {
				release()
				return nil, func() {}, fmt.Errorf("frame %d doesn't survive a double transpose", count)
			}
			logger.Debugf("frame %d survives a double transpose", count)
			return img, release, nil
		})
	}
}

// survived compares every plane when the chroma shifts match. Otherwise the
// chroma planes were resampled twice and only luma and alpha must match.
func survived(orig, twice *planar.Image) bool {
	if orig.XChromaShift == orig.YChromaShift {
		return planar.Equal(orig, twice)
	}
	for _, p := range []int{planar.PlaneY, planar.PlaneAlpha} {
		if orig.Planes[p] == nil {
			continue
		}
		a, b := orig.Plane(p), twice.Plane(p)
		for row := 0; row < a.Height; row++ {
			if string(a.Row(row)) != string(b.Row(row)) {
				return false
			}
		}
	}
	return true
}

func reuse(img *planar.Image, f frame.Format, w, h int) (*planar.Image, error) {
	if img != nil && img.Format == f && img.DW == w && img.DH == h {
		return img, nil
	}
	planar.Free(img)
	return planar.Alloc(f, w, h, 0)
}
