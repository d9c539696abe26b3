package fatigue

import "math"

// LifeState is the outcome of the finite-life check
type LifeState string

const (
	LifeNotApplicable LifeState = "not_applicable" // S-N model does not apply
	LifeInfinite      LifeState = "infinite_life"  // σa' <= Se
	LifeFinite        LifeState = "finite_life"    // Se < σa' < Sy
)

// Life holds the S-N estimate. A, B and Cycles are only defined in the
// finite-life state.
type Life struct {
	State  LifeState `json:"state"`
	Detail string    `json:"detail,omitempty"`

	SigmaAR Quantity `json:"sigma_ar"` // equivalent fully reversed stress (MPa)
	A       Quantity `json:"a"`        // S-N coefficient (MPa)
	B       Quantity `json:"b"`        // S-N exponent
	Cycles  Quantity `json:"cycles"`   // N to failure
}

// FiniteLife runs the life state machine:
//
//	σa' <= Se       → infinite life
//	σa' >= Sy       → not applicable (yields)
//	Se < σa' < Sy   → finite life, N = (σar/a)^(1/b)
//
// with a = (f·Sut)²/Se and b = −(1/3)·log10(f·Sut/Se).
func FiniteLife(sigmaAPrime, sigmaMPrime, se Quantity, uts, sy, f float64) Life {
	switch {
	case !sigmaAPrime.Defined:
		return withoutCycles(LifeNotApplicable, requires("σa'"), "σa' is undefined")
	case !se.Defined:
		return withoutCycles(LifeNotApplicable, requires("Se"), "Se is undefined")
	}

	sa := sigmaAPrime.Value
	if sa <= se.Value {
		return withoutCycles(LifeInfinite, Undefined(ReasonNotApplicable, "infinite life"), "σa' <= Se")
	}
	if sa >= sy {
		return withoutCycles(LifeNotApplicable, Undefined(ReasonNotApplicable, "stress at or above yield"), "σa' >= Sy")
	}

	life := Life{State: LifeFinite}

	// Goodman-equivalent fully reversed stress
	life.SigmaAR = Of(sa)
	if sigmaMPrime.Defined && uts > 0 && sigmaMPrime.Value < uts {
		life.SigmaAR = Of(sa / (1 - sigmaMPrime.Value/uts))
	}

	if f < 0 || f > 1 {
		u := Undefined(ReasonDomainRange, "fatigue fraction f outside 0-1")
		life.A, life.B, life.Cycles = u, u, requires("a and b")
		return life
	}
	strength := f * uts
	ratio := strength / se.Value
	if ratio <= 0 {
		u := Undefined(ReasonDomainRange, "f·Sut/Se must be positive")
		life.A, life.B, life.Cycles = u, u, requires("a and b")
		return life
	}

	life.A = Of(strength * strength / se.Value)
	life.B = Of(-math.Log10(ratio) / 3)

	switch {
	case !life.A.Defined || !life.B.Defined:
		life.Cycles = requires("a and b")
	case life.A.Value <= 0:
		life.Cycles = Undefined(ReasonDegenerateInput, "a must be positive")
	case life.B.Value == 0:
		life.Cycles = Undefined(ReasonInvalidExponent, "b is zero (f·Sut equals Se)")
	default:
		life.Cycles = Of(math.Pow(life.SigmaAR.Value/life.A.Value, 1/life.B.Value))
	}
	return life
}

func withoutCycles(state LifeState, q Quantity, detail string) Life {
	return Life{
		State:   state,
		Detail:  detail,
		SigmaAR: q,
		A:       q,
		B:       q,
		Cycles:  q,
	}
}
