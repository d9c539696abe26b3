package cmd

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/goshaft/internal/shaft"
	"github.com/alexiusacademia/goshaft/internal/shigley"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// inputFlags binds one Inputs value to the flags of a command. Flags left
// unchanged keep the Defaults value, or the case-file value when --file is
// given.
type inputFlags struct {
	in     shaft.Inputs
	moment string
	file   string
	finish string
}

func (f *inputFlags) register(c *cobra.Command) {
	f.in = shaft.Defaults()
	f.moment = string(f.in.Moment)
	fs := c.Flags()

	// Geometry
	fs.Float64Var(&f.in.Da, "da", f.in.Da, "Larger (shoulder) diameter D (mm)")
	fs.Float64Var(&f.in.Db, "db", f.in.Db, "Smaller diameter d at the critical section (mm)")
	fs.Float64VarP(&f.in.R, "radius", "r", f.in.R, "Shoulder fillet radius (mm)")
	fs.Float64VarP(&f.in.L, "span", "l", f.in.L, "Bearing span L (mm)")
	fs.Float64Var(&f.in.Lfa, "lfa", f.in.Lfa, "Position of Fa (or F) from bearing A (mm)")
	fs.Float64Var(&f.in.Lfb, "lfb", f.in.Lfb, "Position of Fb from bearing A (mm)")

	// Loading
	fs.Float64VarP(&f.in.F, "force", "f", f.in.F, "Single transverse load F (N)")
	fs.Float64Var(&f.in.Fa, "fa", f.in.Fa, "Transverse load Fa (N)")
	fs.Float64Var(&f.in.Fb, "fb", f.in.Fb, "Transverse load Fb (N)")
	fs.Float64Var(&f.in.MeanTorque, "mean-torque", f.in.MeanTorque, "Mean torque Tm (N·mm)")
	fs.Float64Var(&f.in.AltTorque, "alt-torque", f.in.AltTorque, "Alternating torque Ta (N·mm)")
	fs.Float64Var(&f.in.MeanLoad, "mean-load", f.in.MeanLoad, "Mean axial load (N)")
	fs.Float64Var(&f.in.AmplitudeLoad, "amplitude-load", f.in.AmplitudeLoad, "Alternating axial load (N)")

	// Material
	fs.Float64Var(&f.in.UTS, "uts", f.in.UTS, "Ultimate tensile strength Sut (MPa)")
	fs.Float64Var(&f.in.Sy, "sy", f.in.Sy, "Yield strength Sy (MPa)")
	fs.Float64Var(&f.in.ASurf, "a-surf", f.in.ASurf, "Marin surface factor a (MPa)")
	fs.Float64Var(&f.in.BSurf, "b-surf", f.in.BSurf, "Marin surface factor exponent b")
	fs.Float64Var(&f.in.FatigueFraction, "fatigue-fraction", f.in.FatigueFraction, "Fatigue strength fraction f at 10³ cycles")
	fs.StringVar(&f.finish, "finish", "", "Surface finish, sets a and b ("+finishNames()+")")

	// Free body
	fs.StringVarP(&f.moment, "moment", "m", f.moment, "Moment model: simply-supported, cantilever or direct")
	fs.Float64VarP(&f.in.SectionX, "section-x", "x", f.in.SectionX, "Critical section from bearing B (mm)")
	fs.Float64Var(&f.in.BendingMoment, "bending-moment", f.in.BendingMoment, "Bending moment for the direct model (N·mm)")

	fs.StringVar(&f.file, "file", "", "Read inputs from a YAML or JSON case file; explicit flags override it")
}

// resolve returns the case to compute. With --file the file is loaded first
// and every flag the user set explicitly is applied on top.
func (f *inputFlags) resolve(c *cobra.Command) (shaft.Case, error) {
	cs := shaft.Case{Inputs: f.in}
	if f.file != "" {
		loaded, err := shaft.LoadCasesFromFile(f.file)
		if err != nil {
			return shaft.Case{}, err
		}
		if len(loaded) != 1 {
			return shaft.Case{}, fmt.Errorf("%s holds %d cases; use 'goshaft fatigue batch' for several", f.file, len(loaded))
		}
		cs = loaded[0]

		var overrideErr error
		c.Flags().Visit(func(fl *pflag.Flag) {
			name, ok := flagColumns[fl.Name]
			if !ok || overrideErr != nil {
				return
			}
			overrideErr = cs.Inputs.Set(name, fl.Value.String())
		})
		if overrideErr != nil {
			return shaft.Case{}, overrideErr
		}
	} else {
		m, err := shaft.ParseMomentModel(f.moment)
		if err != nil {
			return shaft.Case{}, err
		}
		cs.Inputs.Moment = m
	}

	if f.finish != "" {
		if c.Flags().Changed("a-surf") || c.Flags().Changed("b-surf") {
			return shaft.Case{}, fmt.Errorf("--finish cannot be combined with --a-surf or --b-surf")
		}
		fin, ok := shigley.FinishByName(f.finish)
		if !ok {
			return shaft.Case{}, fmt.Errorf("unknown surface finish %q (want one of %s)", f.finish, finishNames())
		}
		cs.Inputs.ASurf, cs.Inputs.BSurf = fin.A, fin.B
	}

	if err := cs.Inputs.Validate(); err != nil {
		return shaft.Case{}, err
	}
	return cs, nil
}

// flagColumns maps flag names onto Inputs column names.
var flagColumns = map[string]string{
	"da":               "da",
	"db":               "db",
	"radius":           "r",
	"span":             "l",
	"lfa":              "lfa",
	"lfb":              "lfb",
	"force":            "f",
	"fa":               "fa",
	"fb":               "fb",
	"mean-torque":      "mean_torque",
	"alt-torque":       "alt_torque",
	"mean-load":        "mean_load",
	"amplitude-load":   "amplitude_load",
	"uts":              "uts",
	"sy":               "sy",
	"a-surf":           "a_surf",
	"b-surf":           "b_surf",
	"fatigue-fraction": "fatigue_fraction",
	"moment":           "moment",
	"section-x":        "section_x",
	"bending-moment":   "bending_moment",
}

func finishNames() string {
	names := make([]string, len(shigley.Finishes))
	for i, f := range shigley.Finishes {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}
