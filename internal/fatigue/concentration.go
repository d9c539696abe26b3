package fatigue

import (
	"math"

	"github.com/alexiusacademia/goshaft/internal/shigley"
)

// StressConcentration estimates the theoretical stress-concentration factor
// Kt of a shouldered shaft in bending:
//
//	Kt = 1 + 0.5·(D/d − 1)·(1 + 1/√(r/d))
//
// This is an empirical placeholder for the published stepped-shaft charts
// (Peterson; Shigley Fig. A-15-9), not a fit to them. Callers needing chart
// accuracy should supply their own Kt lookup.
func StressConcentration(da, db, r float64) Quantity {
	if db <= 0 {
		return Undefined(ReasonDegenerateInput, "Db must be positive")
	}
	rd := r / db
	if rd <= 0 {
		return Undefined(ReasonDegenerateInput, "r/Db must be positive")
	}
	dd := da / db
	return Of(1 + 0.5*(dd-1)*(1+1/math.Sqrt(rd)))
}

// NeuberConstant returns √a (√mm) for steels with 340 <= UTS <= 1700 MPa.
func NeuberConstant(uts float64) Quantity {
	if !shigley.NeuberInRange(uts) {
		return Undefined(ReasonDomainRange, "UTS outside 340-1700 MPa")
	}
	return Of(shigley.NeuberSqrtA(uts))
}

// FatigueConcentration reduces Kt to the fatigue stress-concentration factor
// using the notch sensitivity from Neuber's constant:
//
//	Kf = 1 + (Kt − 1) / (1 + √a/√r)
func FatigueConcentration(kt, nc Quantity, r float64) Quantity {
	if !kt.Defined {
		return requires("Kt")
	}
	if !nc.Defined {
		return requires("Neuber constant")
	}
	if r <= 0 {
		return Undefined(ReasonDegenerateInput, "r must be positive")
	}
	return Of(1 + (kt.Value-1)/(1+nc.Value/math.Sqrt(r)))
}
