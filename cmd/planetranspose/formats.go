package main

import (
	"fmt"

	"github.com/pion/planetranspose/pkg/frame"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the pixel formats known to the registry",
	Args:  cobra.NoArgs,
	RunE:  runFormats,
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	planar := lo.Filter(frame.Formats(), func(f frame.Format, _ int) bool {
		d, _ := frame.Lookup(f)
		return d.Planar
	})
	fmt.Fprintf(out, "%d formats, %d planar\n", len(frame.Formats()), len(planar))

	for _, f := range frame.Formats() {
		d, _ := frame.Lookup(f)
		layout := "packed"
		if d.Planar {
			layout = fmt.Sprintf("planar shift=%d,%d", d.XChromaShift, d.YChromaShift)
			if d.HasAlpha {
				layout += " alpha"
			}
		}
		fmt.Fprintf(out, "%-8s %-22s %2d bit  %s\n", f, frame.Name(f), d.BitDepth, layout)
	}
	return nil
}
