package cmd

import (
	"fmt"
	"io"

	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/shaft"
	"github.com/spf13/cobra"
)

var (
	momentInputs inputFlags

	// Options
	showAll      bool
	momentPoints int
)

var momentCmd = &cobra.Command{
	Use:   "moment",
	Short: "Calculate the bending moment at the critical section",
	Long: `Calculate the bending moment at the critical section for the selected
free-body model.

Models:
  simply-supported - Shaft on two bearings A (x = 0) and B (x = L) carrying
                     F at lfa, or Fa at lfa and Fb at lfb. The section is
                     located section-x from bearing B.
  cantilever       - Overhung load F acting at the shaft radius, M = F·d/2.
  direct           - Bending moment given directly.

Examples:
  # Single 2 kN load at mid-span, section 250 mm from bearing B
  goshaft moment --span 500 --lfa 250 -f 2000 -x 250

  # Two loads, with the moment along the span
  goshaft moment --span 600 --fa 1200 --lfa 100 --fb 800 --lfb 350 -x 300 --all`,
	RunE: runMoment,
}

func init() {
	rootCmd.AddCommand(momentCmd)

	momentInputs.register(momentCmd)

	// Options
	momentCmd.Flags().BoolVarP(&showAll, "all", "a", false, "Show the moment at stations along the span")
	momentCmd.Flags().IntVar(&momentPoints, "points", 10, "Number of span intervals for --all")
}

func runMoment(cmd *cobra.Command, args []string) error {
	cs, err := momentInputs.resolve(cmd)
	if err != nil {
		return err
	}
	in := cs.Inputs
	out := cmd.OutOrStdout()

	// Print header
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          SHAFT BENDING MOMENT AT THE CRITICAL SECTION")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	w := section(out, "FREE BODY:")
	fmt.Fprintf(w, "  Model:\t%s\n", in.Moment.OrDefault())
	switch in.Moment.OrDefault() {
	case shaft.MomentDirect:
		fmt.Fprintf(w, "  Given Moment:\t%.1f N·mm\n", in.BendingMoment)
	case shaft.MomentCantilever:
		fmt.Fprintf(w, "  Load (F):\t%.1f N\n", in.F)
		fmt.Fprintf(w, "  Lever (d/2):\t%.2f mm\n", in.Db/2)
	default:
		fmt.Fprintf(w, "  Span (L):\t%.1f mm\n", in.L)
		for i, p := range fatigue.PointLoads(in) {
			fmt.Fprintf(w, "  Load %d:\t%.1f N at %.1f mm from A\n", i+1, p.Force, p.Position)
		}
		fmt.Fprintf(w, "  Section:\t%.1f mm from B\n", in.SectionX)
	}
	w.Flush()
	fmt.Fprintln(out)

	if in.Moment.OrDefault() == shaft.MomentSimplySupported {
		r := fatigue.SupportReactions(in)
		w = section(out, "REACTIONS:")
		fmt.Fprintf(w, "  Bearing A (RA):\t%s\n", quantity(r.A, "%.2f", "N"))
		fmt.Fprintf(w, "  Bearing B (RB):\t%s\n", quantity(r.B, "%.2f", "N"))
		w.Flush()
		fmt.Fprintln(out)

		if showAll {
			printMomentStations(out, in, momentPoints)
		}
	}

	m := fatigue.BendingMoment(in)
	fmt.Fprintln(out, "RESULT:")
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "  ╔═══════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  BENDING MOMENT (M) = %s\n", quantity(m, "%.1f", "N·mm"))
	fmt.Fprintf(out, "  ╚═══════════════════════════════════════════╝\n")
	fmt.Fprintln(out)
	return nil
}

func printMomentStations(out io.Writer, in shaft.Inputs, n int) {
	if n < 1 {
		n = 1
	}
	w := section(out, "MOMENT ALONG THE SPAN:")
	fmt.Fprintf(w, "  From B (mm)\tM (N·mm)\n")
	fmt.Fprintf(w, "  ───────────\t────────\n")
	for i := 0; i <= n; i++ {
		at := in
		at.SectionX = in.L * float64(i) / float64(n)
		marker := ""
		if at.SectionX == in.SectionX {
			marker = " ← SECTION"
		}
		fmt.Fprintf(w, "  %.1f\t%s%s\n", at.SectionX, quantity(fatigue.BendingMoment(at), "%.1f", ""), marker)
	}
	w.Flush()
	fmt.Fprintln(out)
}
