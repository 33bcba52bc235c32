package cmd

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/cbeam/internal/section"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	sectionFile string
	sectionRect string
	sectionTee  string
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Calculate the second moment of area of a cross-section",
	Long: `Calculate the area, centroid, second moments of area and elastic section
moduli of a polygonal cross-section. The inertia in cm⁴ can be given to
'analyze --inertia', or the same section can be written under 'section:' in
a beam definition file.

Coordinates are in mm with Y pointing up.

Example file structure:
  name: T-Beam
  vertices:
    - {x: 150, y: 0}
    - {x: 450, y: 0}
    - {x: 450, y: 400}
    - {x: 600, y: 400}
    - {x: 600, y: 500}
    - {x: 0, y: 500}
    - {x: 0, y: 400}
    - {x: 150, y: 400}

Examples:
  cbeam section --rect "300,500"
  cbeam section --tee "600,100,300,500"
  cbeam section -f t-beam.yaml`,
	RunE: runSection,
}

func init() {
	rootCmd.AddCommand(sectionCmd)

	sectionCmd.Flags().StringVarP(&sectionFile, "file", "f", "", "Path to a section file (YAML or JSON)")
	sectionCmd.Flags().StringVar(&sectionRect, "rect", "", `Rectangle "b,h" (mm)`)
	sectionCmd.Flags().StringVar(&sectionTee, "tee", "", `T-section "bf,tf,bw,h" (mm)`)
	sectionCmd.MarkFlagsMutuallyExclusive("file", "rect", "tee")
}

func runSection(cmd *cobra.Command, args []string) error {
	sec, err := sectionFromFlags()
	if err != nil {
		return err
	}
	if err := sec.Validate(); err != nil {
		return err
	}

	props := sec.CalculateProperties()
	logger.Debug("section calculated",
		zap.String("section", sec.Name),
		zap.Int("vertices", len(sec.Vertices)),
		zap.Float64("ixx_mm4", props.Ixx),
	)

	printSectionProperties(cmd.OutOrStdout(), sec, props)
	return nil
}

func sectionFromFlags() (*section.Section, error) {
	switch {
	case sectionFile != "":
		return section.LoadFromFile(sectionFile)
	case sectionRect != "":
		v, err := parseValues(sectionRect, 2)
		if err != nil {
			return nil, fmt.Errorf("--rect: %w", err)
		}
		return section.Rectangle(v[0], v[1]), nil
	case sectionTee != "":
		v, err := parseValues(sectionTee, 4)
		if err != nil {
			return nil, fmt.Errorf("--tee: %w", err)
		}
		return section.Tee(v[0], v[1], v[2], v[3]), nil
	}
	return nil, errors.New("give a section with --file, --rect or --tee")
}

func printSectionProperties(w io.Writer, sec *section.Section, props *section.Properties) {
	printHeader(w, "CROSS-SECTION PROPERTIES")
	if sec.Name != "" {
		fmt.Fprintf(w, "  Section: %s\n\n", sec.Name)
	}

	printSection(w, "SECTION GEOMETRY:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Width (max):\t%.0f mm\n", props.Width)
	fmt.Fprintf(tw, "  Height:\t%.0f mm\n", props.Height)
	fmt.Fprintf(tw, "  Gross Area:\t%.0f mm²\n", props.Area)
	fmt.Fprintf(tw, "  Centroid:\t(%.2f, %.2f) mm\n", props.CentroidX, props.CentroidY)
	fmt.Fprintf(tw, "  Width at centroid:\t%.0f mm\n", sec.WidthAtDepth(props.MaxY-props.CentroidY))
	fmt.Fprintf(tw, "  Vertices:\t%d points\n", len(sec.Vertices))
	tw.Flush()
	fmt.Fprintln(w)

	printSection(w, "SECOND MOMENT OF AREA:")
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  Ixx:\t%.4g mm⁴\n", props.Ixx)
	fmt.Fprintf(tw, "  Iyy:\t%.4g mm⁴\n", props.Iyy)
	fmt.Fprintf(tw, "  Sx (top):\t%.4g mm³\n", props.SectionModulusTop)
	fmt.Fprintf(tw, "  Sx (bottom):\t%.4g mm³\n", props.SectionModulusBottom)
	tw.Flush()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  ╔═════════════════════════════════════════════════╗\n")
	fmt.Fprintf(w, "  ║  I = %.2f cm⁴\n", props.InertiaCm4())
	fmt.Fprintf(w, "  ╚═════════════════════════════════════════════════╝\n")
	fmt.Fprintln(w)
}
