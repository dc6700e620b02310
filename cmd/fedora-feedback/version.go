package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/obentoo/fedora-feedback/internal/common/version"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Fprintln(cmd.OutOrStdout(), version.Short())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print only the version number")
	rootCmd.AddCommand(versionCmd)
}
