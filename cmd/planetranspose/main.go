package main

import (
	"fmt"
	"os"

	"github.com/pion/planetranspose/internal/logging"
	"github.com/spf13/cobra"
)

var logger = logging.NewLogger("planetranspose")

var rootCmd = &cobra.Command{
	Use:           "planetranspose",
	Short:         "Transpose planar YUV and RGB images",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logging.SetVerbose()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
