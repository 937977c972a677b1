package main

import (
	"fmt"

	"github.com/pion/planetranspose/internal/fixture"
	"github.com/pion/planetranspose/pkg/frame"
	"github.com/pion/planetranspose/pkg/planar"
	"github.com/pion/planetranspose/pkg/transpose"
	"github.com/spf13/cobra"
)

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "Transpose a 3x6 letter fixture in every format and compare with the expected result",
	Args:  cobra.NoArgs,
	RunE:  runSelftest,
}

func init() {
	selftestCmd.Flags().BoolP("verbose", "v", false, "Print the fixture and its transpose for passing formats")
	selftestCmd.Flags().BoolP("all", "a", false, "Print a line for passing formats too")
	selftestCmd.Flags().BoolP("brief", "b", false, "Don't dump planes of mismatching formats")
	rootCmd.AddCommand(selftestCmd)
}

func runSelftest(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	all, _ := cmd.Flags().GetBool("all")
	brief, _ := cmd.Flags().GetBool("brief")
	out := cmd.OutOrStdout()

	var failed int
	for _, f := range fixture.Formats {
		src, control, err := fixture.Letters(f, 0)
		if err != nil {
			return err
		}

		// The destination is sized generously, as a caller-owned buffer would be.
		buf := make([]byte, fixture.Width*fixture.Height*100+1)
		dst, err := planar.Wrap(f, fixture.Height, fixture.Width, 0, buf)
		if err == nil {
			dst, err = transpose.Transpose(dst, src)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "!! Failure to transpose 3x6 format %s: %v\n", frame.Name(f), err)
			continue
		}

		if !planar.Equal(dst, control) {
			failed++
			fmt.Fprintf(out, "Calculated and Control transposed 3x6 matrices for format %s do not match!\n", frame.Name(f))
			if !brief {
				fmt.Fprintf(out, "Original 3x6 matrix has chroma_shifts (x,y) = %d, %d:\n%s\n",
					src.XChromaShift, src.YChromaShift, src)
				fmt.Fprintf(out, "Transpose control\n%s\n", control)
				fmt.Fprintf(out, "Transpose calculated: \n%s\n", dst)
			}
			continue
		}

		if all || verbose {
			fmt.Fprintf(out, "Transpose 3x6 passes for format %s.\n", frame.Name(f))
			if verbose {
				fmt.Fprintf(out, "Original 3x6 matrix:\n%s\n", src)
				fmt.Fprintf(out, "Transpose: \n%s\n", dst)
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d formats failed", failed, len(fixture.Formats))
	}
	return nil
}
