// Package fatigue computes shaft fatigue safety factors from geometry,
// loading and material inputs: stress concentration, Marin-corrected
// endurance limit, von Mises stress state, Goodman/Gerber/yield safety
// factors and the finite-life S-N estimate.
//
// Every stage is a pure function. Values outside a formula's validated range
// come back as undefined quantities carrying a Reason, and every stage that
// consumes an undefined value is itself undefined.
package fatigue

import "github.com/alexiusacademia/goshaft/internal/shaft"

// Result holds every derived quantity of one calculation
type Result struct {
	// Stress concentration
	Kt Quantity `json:"kt"`
	NC Quantity `json:"nc"` // Neuber constant √a (√mm)
	Kf Quantity `json:"kf"`

	// Endurance limit (MPa)
	SePrime Quantity `json:"se_prime"`
	Ka      Quantity `json:"ka"`
	Kb      Quantity `json:"kb"`
	Se      Quantity `json:"se"`

	// Loading
	Moment Quantity `json:"section_moment"` // bending moment at the section (N·mm)

	StressState

	// Safety factors
	NGoodman Quantity `json:"n_goodman"`
	NGerber  Quantity `json:"n_gerber"`
	NYield   Quantity `json:"n_yield"`

	Status       Status `json:"status"` // modified Goodman
	GerberStatus Status `json:"gerber_status"`
	YieldStatus  Status `json:"yield_status"`

	Life Life `json:"life"`
}

// Compute runs the full formula chain. It never fails: quantities that
// cannot be computed are undefined with a reason.
func Compute(in shaft.Inputs) Result {
	var r Result

	r.Kt = StressConcentration(in.Da, in.Db, in.R)
	r.NC = NeuberConstant(in.UTS)
	r.Kf = FatigueConcentration(r.Kt, r.NC, in.R)

	r.SePrime = EndurancePrime(in.UTS)
	r.Ka = SurfaceFactor(in.UTS, in.ASurf, in.BSurf)
	r.Kb = SizeFactor(in.Db)
	r.Se = EnduranceLimit(r.SePrime, r.Ka, r.Kb)

	r.Moment = BendingMoment(in)
	r.StressState = Stresses(r.Kf, r.Moment, in)

	r.NGoodman = GoodmanFactor(r.SigmaAPrime, r.SigmaMPrime, r.Se, in.UTS)
	r.NGerber = GerberFactor(r.SigmaAPrime, r.SigmaMPrime, r.Se, in.UTS)
	r.NYield = YieldFactor(in.Sy, r.SigmaVMMax)

	r.Status = Classify(r.NGoodman)
	r.GerberStatus = Classify(r.NGerber)
	r.YieldStatus = Classify(r.NYield)

	r.Life = FiniteLife(r.SigmaAPrime, r.SigmaMPrime, r.Se, in.UTS, in.Sy, in.FatigueFraction)
	return r
}

// Field names one quantity of a Result
type Field struct {
	Name  string
	Value Quantity
}

// Fields lists the result quantities in report order.
func (r Result) Fields() []Field {
	return []Field{
		{"kt", r.Kt},
		{"nc", r.NC},
		{"kf", r.Kf},
		{"se_prime", r.SePrime},
		{"ka", r.Ka},
		{"kb", r.Kb},
		{"se", r.Se},
		{"section_moment", r.Moment},
		{"z", r.Z},
		{"sigma_a", r.SigmaA},
		{"sigma_m", r.SigmaM},
		{"tau_a", r.TauA},
		{"tau_m", r.TauM},
		{"sigma_max", r.SigmaMax},
		{"sigma_min", r.SigmaMin},
		{"sigma_a_prime", r.SigmaAPrime},
		{"sigma_m_prime", r.SigmaMPrime},
		{"sigma_vm_max", r.SigmaVMMax},
		{"n_goodman", r.NGoodman},
		{"n_gerber", r.NGerber},
		{"n_yield", r.NYield},
		{"life_sigma_ar", r.Life.SigmaAR},
		{"life_a", r.Life.A},
		{"life_b", r.Life.B},
		{"life_cycles", r.Life.Cycles},
	}
}

// Issue reports one undefined quantity
type Issue struct {
	Quantity string `json:"quantity"`
	Reason   Reason `json:"reason"`
	Detail   string `json:"detail,omitempty"`
}

// Issues lists the undefined quantities, skipping life-model values that are
// simply not part of the current life state.
func (r Result) Issues() []Issue {
	var issues []Issue
	for _, f := range r.Fields() {
		if f.Value.Defined || f.Value.Reason == ReasonNotApplicable {
			continue
		}
		issues = append(issues, Issue{Quantity: f.Name, Reason: f.Value.Reason, Detail: f.Value.Detail})
	}
	return issues
}
