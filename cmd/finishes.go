package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/goshaft/internal/shigley"
	"github.com/spf13/cobra"
)

var finishesUTS float64

var finishesCmd = &cobra.Command{
	Use:   "finishes",
	Short: "List the Marin surface-finish factors",
	Long: `List the surface-finish constants of the Marin surface factor

  ka = a · Sut^b

and, with --uts, the resulting ka for that tensile strength.

Examples:
  goshaft finishes
  goshaft finishes --uts 690`,
	Run: func(cmd *cobra.Command, args []string) {
		printFinishes(cmd.OutOrStdout(), finishesUTS)
	},
}

func init() {
	rootCmd.AddCommand(finishesCmd)
	finishesCmd.Flags().Float64Var(&finishesUTS, "uts", 0, "Tensile strength Sut (MPa) for the ka column")
}

func printFinishes(out io.Writer, uts float64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if uts > 0 {
		fmt.Fprintf(w, "  Finish\ta (MPa)\tb\tka @ %g MPa\tDescription\n", uts)
		fmt.Fprintf(w, "  ──────\t───────\t─\t──────────\t───────────\n")
	} else {
		fmt.Fprintf(w, "  Finish\ta (MPa)\tb\tDescription\n")
		fmt.Fprintf(w, "  ──────\t───────\t─\t───────────\n")
	}
	for _, f := range shigley.Finishes {
		if uts > 0 {
			fmt.Fprintf(w, "  %s\t%g\t%g\t%.4f\t%s\n", f.Name, f.A, f.B, f.SurfaceFactor(uts), f.Description)
		} else {
			fmt.Fprintf(w, "  %s\t%g\t%g\t%s\n", f.Name, f.A, f.B, f.Description)
		}
	}
	w.Flush()
}
