package cmd

import (
	"fmt"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/diagram"
	"github.com/alexiusacademia/cbeam/internal/report"
	"github.com/alexiusacademia/cbeam/internal/units"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeInput inputFlags

	// Output options
	analyzeAt         []float64
	analyzeDiagram    bool
	analyzeOutput     string
	analyzeXLSX       string
	analyzePDF        string
	analyzeShowSystem bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a continuous beam by the three-moment equation",
	Long: `Solve the support moments and reactions of a continuous beam on simple
supports, then sample shear, moment and (with --inertia) slope and deflection
along the beam.

Units:
  Positions in m, load intensities in N/m, inertia in cm⁴, E in N/mm².
  Moments are reported in N·m, shear and reactions in N, deflection in mm.

The beam is read from a definition file, from flags, or both. Flags override
the file; the file overrides CBEAM_SAMPLE_POINTS and CBEAM_E_MODULUS, which
may also be set in a .env file.

Examples:
  # Two spans, triangular load on the first
  cbeam analyze --support 0 --support 4 --support 8 --triangular "0,1400,0,4"

  # Four spans of a W-section, with deflection and diagrams
  cbeam analyze -s 0,3,6,9,12 -u "19575,0,12" --inertia 3265 --diagram

  # From a file, with reports
  cbeam analyze -f beam.yaml --output beam.png --xlsx beam.xlsx --pdf beam.pdf`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeInput.register(analyzeCmd)

	analyzeCmd.Flags().Float64SliceVar(&analyzeAt, "at", nil, "Report every field at these positions (m)")
	analyzeCmd.Flags().BoolVarP(&analyzeDiagram, "diagram", "d", false, "Draw shear, moment and deflection diagrams in the terminal")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "Export diagrams to an image (.png, .svg, .pdf)")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Write results to an Excel workbook")
	analyzeCmd.Flags().StringVar(&analyzePDF, "pdf", "", "Write a PDF calculation sheet")
	analyzeCmd.Flags().BoolVar(&analyzeShowSystem, "show-system", false, "Print the assembled three-moment equations")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	bi, err := analyzeInput.resolve(cmd)
	if err != nil {
		return err
	}

	b, err := units.NewBeam(bi.Input, analysis.WithLogger(logger))
	if err != nil {
		return err
	}
	r := report.New(bi.Name, bi.Description, b)
	log := logger.With(zap.String("run_id", r.RunID), zap.String("beam", bi.Name))
	log.Info("beam analysed",
		zap.Int("supports", len(b.Supports())),
		zap.Int("loads", len(bi.Input.Loads)),
		zap.Bool("deflection", b.HasStiffness()),
	)

	out := cmd.OutOrStdout()
	printAnalysis(out, r)

	if analyzeShowSystem {
		printSystem(out, b.Analysis())
	}
	for _, x := range analyzeAt {
		printPoint(out, b.ValueAt(x))
	}
	if analyzeDiagram {
		fmt.Fprint(out, diagram.DrawASCIIBeam(diagram.FromBeam(bi.Name, b)))
		fmt.Fprintln(out)
	}

	if analyzeOutput != "" {
		path, err := diagram.Export(diagram.FromBeam(bi.Name, b), analyzeOutput)
		if err != nil {
			return fmt.Errorf("failed to export diagram: %w", err)
		}
		log.Info("diagram exported", zap.String("path", path))
		fmt.Fprintf(out, "  Diagram saved to %s\n", path)
	}
	if analyzeXLSX != "" {
		if err := r.SaveXLSX(analyzeXLSX); err != nil {
			return err
		}
		log.Info("workbook written", zap.String("path", analyzeXLSX))
		fmt.Fprintf(out, "  Workbook saved to %s\n", analyzeXLSX)
	}
	if analyzePDF != "" {
		if err := r.SavePDF(analyzePDF); err != nil {
			return fmt.Errorf("failed to write calculation sheet: %w", err)
		}
		log.Info("calculation sheet written", zap.String("path", analyzePDF))
		fmt.Fprintf(out, "  Calculation sheet saved to %s\n", analyzePDF)
	}
	return nil
}
