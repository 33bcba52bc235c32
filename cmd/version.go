package cmd

import (
	"fmt"

	"github.com/alexiusacademia/cbeam/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cbeam",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, version.String())
		fmt.Fprintln(out, "Continuous Beam Analysis Tool")
		fmt.Fprintln(out, "Three-moment method, NSCP 2015 load combinations")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
