package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/alexiusacademia/goshaft/internal/fatigue"
	"github.com/alexiusacademia/goshaft/internal/shaft"
)

const rule = "───────────────────────────────────────────────────────────────"

// quantity formats a defined value with verb and unit, or n/a with the reason.
func quantity(q fatigue.Quantity, verb, unit string) string {
	if !q.Defined {
		return fmt.Sprintf("n/a (%s)", q.Reason)
	}
	s := fmt.Sprintf(verb, q.Value)
	if unit != "" {
		s += " " + unit
	}
	return s
}

func statusMark(s fatigue.Status) string {
	switch s {
	case fatigue.StatusSafe:
		return "✓ SAFE"
	case fatigue.StatusCritical:
		return "⚠ CRITICAL"
	case fatigue.StatusUnsafe:
		return "✗ UNSAFE"
	}
	return "n/a"
}

func section(out io.Writer, title string) *tabwriter.Writer {
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, rule)
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// printReport writes the full analysis of one case.
func printReport(out io.Writer, cs shaft.Case, r fatigue.Result) {
	in := cs.Inputs

	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "          SHAFT FATIGUE ANALYSIS - STRESS-LIFE METHOD")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	if cs.Name != "" {
		fmt.Fprintf(out, "  Case: %s\n", cs.Name)
	}
	fmt.Fprintln(out)

	w := section(out, "INPUT DATA:")
	fmt.Fprintf(w, "  Shoulder Diameter (D):\t%.2f mm\n", in.Da)
	fmt.Fprintf(w, "  Section Diameter (d):\t%.2f mm\n", in.Db)
	fmt.Fprintf(w, "  Fillet Radius (r):\t%.2f mm\n", in.R)
	fmt.Fprintf(w, "  Moment Model:\t%s\n", in.Moment.OrDefault())
	switch in.Moment.OrDefault() {
	case shaft.MomentDirect:
		fmt.Fprintf(w, "  Bending Moment:\t%.1f N·mm\n", in.BendingMoment)
	case shaft.MomentCantilever:
		fmt.Fprintf(w, "  Load (F):\t%.1f N\n", in.F)
	default:
		fmt.Fprintf(w, "  Span (L):\t%.1f mm\n", in.L)
		for i, p := range fatigue.PointLoads(in) {
			fmt.Fprintf(w, "  Load %d:\t%.1f N at %.1f mm\n", i+1, p.Force, p.Position)
		}
		fmt.Fprintf(w, "  Section from bearing B:\t%.1f mm\n", in.SectionX)
	}
	fmt.Fprintf(w, "  Torque (Tm / Ta):\t%.1f / %.1f N·mm\n", in.MeanTorque, in.AltTorque)
	if in.MeanLoad != 0 || in.AmplitudeLoad != 0 {
		fmt.Fprintf(w, "  Axial Load (mean / amplitude):\t%.1f / %.1f N\n", in.MeanLoad, in.AmplitudeLoad)
	}
	fmt.Fprintf(w, "  Sut / Sy:\t%.1f / %.1f MPa\n", in.UTS, in.Sy)
	fmt.Fprintf(w, "  Surface Factor (a, b):\t%g, %g\n", in.ASurf, in.BSurf)
	fmt.Fprintf(w, "  Fatigue Fraction (f):\t%g\n", in.FatigueFraction)
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "STRESS CONCENTRATION:")
	fmt.Fprintf(w, "  Kt:\t%s\n", quantity(r.Kt, "%.4f", ""))
	fmt.Fprintf(w, "  Neuber Constant (√a):\t%s\n", quantity(r.NC, "%.5f", "√mm"))
	fmt.Fprintf(w, "  Kf:\t%s\n", quantity(r.Kf, "%.4f", ""))
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "ENDURANCE LIMIT:")
	fmt.Fprintf(w, "  Se':\t%s\n", quantity(r.SePrime, "%.2f", "MPa"))
	fmt.Fprintf(w, "  Surface Factor (ka):\t%s\n", quantity(r.Ka, "%.4f", ""))
	fmt.Fprintf(w, "  Size Factor (kb):\t%s\n", quantity(r.Kb, "%.4f", ""))
	fmt.Fprintf(w, "  Se:\t%s\n", quantity(r.Se, "%.2f", "MPa"))
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "STRESS ANALYSIS:")
	fmt.Fprintf(w, "  Bending Moment (M):\t%s\n", quantity(r.Moment, "%.1f", "N·mm"))
	fmt.Fprintf(w, "  Section Modulus (Z):\t%s\n", quantity(r.Z, "%.2f", "mm³"))
	fmt.Fprintf(w, "  σa / σm:\t%s / %s\n", quantity(r.SigmaA, "%.3f", "MPa"), quantity(r.SigmaM, "%.3f", "MPa"))
	fmt.Fprintf(w, "  τa / τm:\t%s / %s\n", quantity(r.TauA, "%.3f", "MPa"), quantity(r.TauM, "%.3f", "MPa"))
	fmt.Fprintf(w, "  σmax / σmin:\t%s / %s\n", quantity(r.SigmaMax, "%.3f", "MPa"), quantity(r.SigmaMin, "%.3f", "MPa"))
	fmt.Fprintf(w, "  σa' / σm':\t%s / %s\n", quantity(r.SigmaAPrime, "%.3f", "MPa"), quantity(r.SigmaMPrime, "%.3f", "MPa"))
	fmt.Fprintf(w, "  σ'max:\t%s\n", quantity(r.SigmaVMMax, "%.3f", "MPa"))
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "SAFETY FACTORS:")
	fmt.Fprintf(w, "  Modified Goodman (nf):\t%s\t%s\n", quantity(r.NGoodman, "%.4f", ""), statusMark(r.Status))
	fmt.Fprintf(w, "  Gerber:\t%s\t%s\n", quantity(r.NGerber, "%.4f", ""), statusMark(r.GerberStatus))
	fmt.Fprintf(w, "  First-cycle Yield (ny):\t%s\t%s\n", quantity(r.NYield, "%.4f", ""), statusMark(r.YieldStatus))
	w.Flush()
	fmt.Fprintln(out)

	w = section(out, "FATIGUE LIFE:")
	fmt.Fprintf(w, "  State:\t%s\n", r.Life.State)
	if r.Life.Detail != "" {
		fmt.Fprintf(w, "  Note:\t%s\n", r.Life.Detail)
	}
	if r.Life.State == fatigue.LifeFinite {
		fmt.Fprintf(w, "  σar:\t%s\n", quantity(r.Life.SigmaAR, "%.3f", "MPa"))
		fmt.Fprintf(w, "  S-N a / b:\t%s / %s\n", quantity(r.Life.A, "%.2f", "MPa"), quantity(r.Life.B, "%.5f", ""))
		fmt.Fprintf(w, "  Cycles (N):\t%s\n", quantity(r.Life.Cycles, "%.4g", ""))
	}
	w.Flush()
	fmt.Fprintln(out)

	if issues := r.Issues(); len(issues) > 0 {
		w = section(out, "UNDEFINED QUANTITIES:")
		for _, is := range issues {
			fmt.Fprintf(w, "  %s:\t%s\t%s\n", is.Quantity, is.Reason, is.Detail)
		}
		w.Flush()
		fmt.Fprintln(out)
	}

	fmt.Fprintf(out, "  ╔═════════════════════════════════════════╗\n")
	fmt.Fprintf(out, "  ║  FATIGUE SAFETY FACTOR nf = %s\n", quantity(r.NGoodman, "%.3f", ""))
	fmt.Fprintf(out, "  ║  STATUS: %s\n", statusMark(r.Status))
	fmt.Fprintf(out, "  ╚═════════════════════════════════════════╝\n")
	fmt.Fprintln(out)
}
