package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/goshaft/internal/batch"
	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/logger"
	"github.com/spf13/cobra"
)

var (
	batchInput  string
	batchOutput string
)

var fatigueBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Compute every case of a CSV, Excel, YAML or JSON file",
	Long: `Run the fatigue calculation for every case in an input file and
print a summary table. With --output the full inputs and results are
written to a CSV or Excel file, one row per case.

Delimited and Excel inputs need a header row naming the columns (da, db, r,
l, lfa, lfb, f, fa, fb, mean_torque, alt_torque, mean_load, amplitude_load,
uts, sy, a_surf, b_surf, fatigue_fraction, moment, section_x,
bending_moment and an optional name). Missing columns take their defaults.

Examples:
  goshaft fatigue batch --input shafts.csv
  goshaft fatigue batch -i shafts.xlsx -o results.xlsx
  goshaft fatigue batch -i cases.yaml -o results.csv`,
	RunE: runFatigueBatch,
}

func init() {
	fatigueCmd.AddCommand(fatigueBatchCmd)

	fatigueBatchCmd.Flags().StringVarP(&batchInput, "input", "i", "", "Case file (.csv, .xlsx, .yaml, .yml or .json) [required]")
	fatigueBatchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "Write full results to a .csv or .xlsx file")
	fatigueBatchCmd.MarkFlagRequired("input")
}

func runFatigueBatch(cmd *cobra.Command, args []string) error {
	cases, err := batch.ReadFile(batchInput)
	if err != nil {
		return err
	}

	cache := fatigue.NewCache(len(cases))
	rows := batch.Run(cases, cache)
	hits, misses := cache.Stats()
	logger.L().Debug("batch.done", "cases", len(rows), "cache_hits", hits, "cache_misses", misses)

	if batchOutput != "" {
		if err := batch.WriteFile(batchOutput, rows); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          SHAFT FATIGUE BATCH")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)
	printBatchSummary(out, rows)
	fmt.Fprintln(out)
	if batchOutput != "" {
		fmt.Fprintf(out, "  %d cases written to %s\n\n", len(rows), batchOutput)
	}
	return nil
}

func printBatchSummary(out io.Writer, rows []batch.Row) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Case\tSe (MPa)\tσa' (MPa)\tσm' (MPa)\tnf\tny\tStatus\tLife\n")
	fmt.Fprintf(w, "  ────\t────────\t─────────\t─────────\t──\t──\t──────\t────\n")
	for _, r := range rows {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name,
			quantity(r.Result.Se, "%.2f", ""),
			quantity(r.Result.SigmaAPrime, "%.2f", ""),
			quantity(r.Result.SigmaMPrime, "%.2f", ""),
			quantity(r.Result.NGoodman, "%.3f", ""),
			quantity(r.Result.NYield, "%.3f", ""),
			r.Result.Status,
			lifeSummary(r.Result.Life),
		)
	}
	w.Flush()
}

func lifeSummary(l fatigue.Life) string {
	if l.State == fatigue.LifeFinite {
		return quantity(l.Cycles, "%.3g", "cycles")
	}
	return string(l.State)
}
