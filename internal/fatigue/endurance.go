package fatigue

import (
	"math"

	"github.com/alexiusacademia/goshaft/internal/shigley"
)

// EndurancePrime returns the rotating-beam endurance limit Se' = 0.5·UTS.
// No cap is applied above 1400 MPa.
func EndurancePrime(uts float64) Quantity {
	if uts <= 0 {
		return Undefined(ReasonDegenerateInput, "UTS must be positive")
	}
	return Of(shigley.EnduranceRatio * uts)
}

// SurfaceFactor returns the Marin surface factor ka = a·UTS^b.
func SurfaceFactor(uts, a, b float64) Quantity {
	if uts <= 0 {
		return Undefined(ReasonDegenerateInput, "UTS must be positive")
	}
	if a <= 0 {
		return Undefined(ReasonDomainRange, "surface factor a must be positive")
	}
	return Of(a * math.Pow(uts, b))
}

// SizeFactor returns the Marin size factor kb for the critical diameter.
func SizeFactor(d float64) Quantity {
	if !shigley.SizeFactorInRange(d) {
		return Undefined(ReasonDomainRange, "Db outside 2.79-254 mm")
	}
	return Of(shigley.SizeFactor(d))
}

// EnduranceLimit returns Se = ka·kb·Se'.
func EnduranceLimit(sePrime, ka, kb Quantity) Quantity {
	switch {
	case !sePrime.Defined:
		return requires("Se'")
	case !ka.Defined:
		return requires("ka")
	case !kb.Defined:
		return requires("kb")
	}
	return Of(ka.Value * kb.Value * sePrime.Value)
}
