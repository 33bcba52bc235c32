package cmd

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"text/tabwriter"

	"github.com/alexiusacademia/cbeam/internal/analysis"
	"github.com/alexiusacademia/cbeam/internal/beamfile"
	"github.com/alexiusacademia/cbeam/internal/units"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var batchJobs int

var batchCmd = &cobra.Command{
	Use:   "batch file...",
	Short: "Analyze several beam files concurrently",
	Long: `Analyze every beam definition file given and print one summary line per
file, in the order the files were given. A file that fails to load or solve
is reported and does not stop the others.

Examples:
  cbeam batch beams/*.yaml
  cbeam batch --jobs 2 b1.yaml b2.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVarP(&batchJobs, "jobs", "j", runtime.GOMAXPROCS(0), "Number of beams analysed at the same time")
}

// batchResult is the outcome for one file
type batchResult struct {
	File   string
	Name   string
	Result *analysis.Result
	Err    error
}

func runBatch(cmd *cobra.Command, args []string) error {
	env, err := beamfile.LoadEnv()
	if err != nil {
		return err
	}

	results, err := analyzeFiles(cmd.Context(), args, env, batchJobs)
	if err != nil {
		return err
	}

	printBatch(cmd.OutOrStdout(), results)

	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d beams failed", failed, len(results))
	}
	return nil
}

// analyzeFiles solves each file with at most jobs running at once. Per-file
// failures are recorded in the result; only cancellation aborts the batch.
func analyzeFiles(ctx context.Context, files []string, env beamfile.Defaults, jobs int) ([]batchResult, error) {
	if jobs < 1 {
		jobs = 1
	}
	results := make([]batchResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			results[i] = analyzeFile(file, env)
			if results[i].Err != nil {
				logger.Warn("beam failed", zap.String("file", file), zap.Error(results[i].Err))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func analyzeFile(file string, env beamfile.Defaults) batchResult {
	res := batchResult{File: file}

	def, err := beamfile.LoadFromFile(file)
	if err != nil {
		res.Err = err
		return res
	}
	res.Name = def.Name

	in, err := def.Input(env)
	if err != nil {
		res.Err = err
		return res
	}
	b, err := units.NewBeam(in, analysis.WithLogger(logger.With(zap.String("file", file))))
	if err != nil {
		res.Err = err
		return res
	}
	res.Result = b.Results()
	return res
}

func printBatch(w io.Writer, results []batchResult) {
	printHeader(w, "BATCH ANALYSIS")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  File\tBeam\tSupports\tMax M (N·m)\tMax V (N)\tMax δ (mm)\n")
	fmt.Fprintf(tw, "  ────\t────\t────────\t───────────\t─────────\t──────────\n")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "  %s\t%s\tERROR: %v\n", r.File, r.Name, r.Err)
			continue
		}
		m, _ := analysis.Governing(r.Result.MaxMoments)
		v, _ := analysis.Governing(r.Result.MaxShears)
		defl := "-"
		if d, ok := analysis.Governing(r.Result.MaxDeflections); ok {
			defl = fmt.Sprintf("%.3f", d.Value)
		}
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%.2f\t%.2f\t%s\n",
			r.File, r.Name, len(r.Result.Supports), m.Value, v.Value, defl)
	}
	tw.Flush()
	fmt.Fprintln(w)
}
