package cmd

import (
	"fmt"
	"os"

	"github.com/alexiusacademia/cbeam/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cbeam",
	Short: "Continuous Beam Analysis Tool",
	Long: `cbeam - Continuous Beam Analyzer

A CLI tool for the analysis of statically indeterminate continuous beams
on any number of simple supports using the three-moment equation.

This tool helps structural engineers compute:
  - Support moments and reactions
  - Shear, moment, slope and deflection along the beam
  - Maximum values per span
  - Factored results for NSCP 2015 load combinations

Loads are entered in N/m over metres, inertia in cm⁴ and the
elastic modulus in N/mm² (MPa).`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ╔═══════════════════════════════════════════════════════════╗")
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintf(out, "  ║   cbeam v%-49s║\n", version.Version)
		fmt.Fprintln(out, "  ║   Continuous Beam Analyzer (Three-Moment Method)          ║")
		fmt.Fprintf(out, "  ║   Alexius S. Academia ©  %-33s║\n", version.Year)
		fmt.Fprintln(out, "  ║                                                           ║")
		fmt.Fprintln(out, "  ╚═══════════════════════════════════════════════════════════╝")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  A CLI tool for the analysis of continuous beams")
		fmt.Fprintln(out, "  on multiple simple supports.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Features:")
		fmt.Fprintln(out, "    • Support moments and reactions by the three-moment equation")
		fmt.Fprintln(out, "    • Shear, moment and deflection diagrams (terminal and image)")
		fmt.Fprintln(out, "    • NSCP 2015 load combinations with governing case and envelope")
		fmt.Fprintln(out, "    • Spreadsheet and PDF reports, batch analysis of beam files")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Use 'cbeam --help' to see available commands.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  ─────────────────────────────────────────────────────────────")
		fmt.Fprintf(out, "  Copyright © %s %s. All rights reserved.\n", version.Year, version.Author)
		fmt.Fprintln(out)
	},
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log analysis stages at debug level")
}
