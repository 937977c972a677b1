package main

import (
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
	"github.com/pion/planetranspose/pkg/transpose"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var transposeCmd = &cobra.Command{
	Use:   "transpose",
	Short: "Transpose an image file",
	RunE:  runTranspose,
}

func init() {
	transposeCmd.Flags().StringP("input", "i", "", "Input image (png, jpeg, gif, bmp or tiff)")
	transposeCmd.Flags().StringP("output", "o", "", "Output image, encoded by extension")
	transposeCmd.Flags().Int("quality", jpeg.DefaultQuality, "JPEG quality (1-100)")
	transposeCmd.MarkFlagRequired("input")
	transposeCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(transposeCmd)
}

func runTranspose(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")

	encode, err := encoderFor(outputPath, quality)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	defer in.Close()

	decoded, kind, err := image.Decode(in)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", inputPath, err)
	}

	src, err := planar.FromImage(decoded)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}
	logger.Debugf("decoded %s as %dx%d %s", kind, src.DW, src.DH, frame.Name(src.Format))

	var dst *planar.Image
	if src.Format == frame.FormatI444A {
		if dst, err = planar.Alloc(src.Format, src.DH, src.DW, 0); err != nil {
			return err
		}
	}
	dst, err = transpose.Transpose(dst, src)
	if err != nil {
		return err
	}

	result, err := planar.ToImage(dst)
	if err != nil {
		return fmt.Errorf("conversion: %w", err)
	}

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if err := encode(out, result); err != nil {
		out.Close()
		return fmt.Errorf("encoding: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Transposed %dx%d %s -> %dx%d\n",
		src.DW, src.DH, frame.Name(src.Format), dst.DW, dst.DH)
	return nil
}

func encoderFor(path string, quality int) (func(io.Writer, image.Image) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return png.Encode, nil
	case ".jpg", ".jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
		}, nil
	case ".bmp":
		return bmp.Encode, nil
	case ".tif", ".tiff":
		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
		}, nil
	}
	return nil, fmt.Errorf("unsupported output extension %q", filepath.Ext(path))
}
