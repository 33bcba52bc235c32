package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/diagram"
	"github.com/alexiusacademia/cbeam/internal/nscp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	comboInput inputFlags

	// Options
	showAll       bool
	useSimplified bool
)

var comboCmd = &cobra.Command{
	Use:   "combo",
	Short: "Analyze a beam under NSCP load combinations",
	Long: `Analyze the beam once per NSCP 2015 load combination and report the
governing combination and the envelope of support moments and reactions.

Each load carries a case (set with 'case:' in the beam file, or --case for
loads given by flags). A combination multiplies every load by the factor of
its case; combinations that include none of the given cases are skipped.

Load Cases:
  D  - Dead load
  L  - Live load
  Lr - Roof live load
  W  - Wind load
  E  - Earthquake load
  R  - Rain load

Examples:
  # Dead and live loads from a file
  cbeam combo -f beam.yaml

  # Gravity combinations only, with every combination listed
  cbeam combo -f beam.yaml --simplified --all`,
	RunE: runCombo,
}

func init() {
	rootCmd.AddCommand(comboCmd)

	comboInput.register(comboCmd)

	// Options
	comboCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show all load combination results")
	comboCmd.Flags().BoolVar(&useSimplified, "simplified", false, "Use simplified combinations (gravity only: 1.4D and 1.2D+1.6L)")
}

func runCombo(cmd *cobra.Command, args []string) error {
	bi, err := comboInput.resolve(cmd)
	if err != nil {
		return err
	}

	// Select which combinations to use
	combinations := nscp.LoadCombinations
	if useSimplified {
		combinations = nscp.SimplifiedCombinations
	}

	outcomes, err := nscp.Evaluate(cmd.Context(), bi.Input, bi.Cases, combinations, analysis.WithLogger(logger))
	if err != nil {
		return err
	}
	governing, ok := nscp.Governing(outcomes)
	if !ok {
		return fmt.Errorf("no load combination includes the cases %v", nscp.Present(bi.Cases))
	}
	logger.Info("combinations analysed",
		zap.String("beam", bi.Name),
		zap.Int("combinations", len(outcomes)),
		zap.String("governing", governing.Combination.ID),
	)

	out := cmd.OutOrStdout()
	printHeader(out, "NSCP 2015 LOAD COMBINATION ANALYSIS")
	fmt.Fprintf(out, "BEAM: %s\n", bi.Name)
	fmt.Fprintf(out, "CASES: %v\n\n", nscp.Present(bi.Cases))

	if showAll {
		printCombinations(out, outcomes, governing)
	}
	printEnvelope(out, nscp.Envelope(outcomes))

	// Print result
	printSection(out, "RESULT:")
	fmt.Fprintf(out, "  Governing Combination: %s (%s)\n\n", governing.Combination.ID, governing.Combination.Description)
	printSupports(out, governing.Beam.SupportResults())

	lines := []string{
		fmt.Sprintf("Mu = %.2f N·m at x = %.3f m", governing.MaxMoment.Value, governing.MaxMoment.Position),
		fmt.Sprintf("Span %d (%.2f m to %.2f m)", governing.MaxMoment.Index+1, governing.MaxMoment.Start, governing.MaxMoment.End),
	}
	fmt.Fprint(out, diagram.DrawSummaryBox("FACTORED MOMENT", lines))
	fmt.Fprintln(out)
	return nil
}

func printCombinations(w io.Writer, outcomes []nscp.Outcome, governing nscp.Outcome) {
	printSection(w, "LOAD COMBINATIONS (NSCP 2015 Section 203.3):")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  #\tCombination\tMu (N·m)\tx (m)\n")
	fmt.Fprintf(tw, "  ─\t───────────\t────────\t─────\n")
	for _, o := range outcomes {
		marker := ""
		if o.Combination.ID == governing.Combination.ID {
			marker = " ← GOVERNS"
		}
		fmt.Fprintf(tw, "  %s\t%s\t%.2f\t%.3f%s\n",
			o.Combination.ID, o.Combination.Description, o.MaxMoment.Value, o.MaxMoment.Position, marker)
	}
	tw.Flush()
	fmt.Fprintln(w)
}

func printEnvelope(w io.Writer, env []nscp.SupportEnvelope) {
	printSection(w, "SUPPORT ENVELOPE:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  x (m)\tMin M (N·m)\tMax M (N·m)\tMin R (N)\tMax R (N)\n")
	fmt.Fprintf(tw, "  ─────\t───────────\t───────────\t─────────\t─────────\n")
	for _, e := range env {
		fmt.Fprintf(tw, "  %.3f\t%.2f [%s]\t%.2f [%s]\t%.2f [%s]\t%.2f [%s]\n",
			e.Position,
			e.MinMoment.Value, e.MinMoment.Combination,
			e.MaxMoment.Value, e.MaxMoment.Combination,
			e.MinReaction.Value, e.MinReaction.Combination,
			e.MaxReaction.Value, e.MaxReaction.Combination)
	}
	tw.Flush()
	fmt.Fprintln(w)
}
