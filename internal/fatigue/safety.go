package fatigue

// Status classifies a safety factor
type Status string

const (
	StatusSafe      Status = "safe"      // n > 1
	StatusCritical  Status = "critical"  // n == 1
	StatusUnsafe    Status = "unsafe"    // n < 1
	StatusUndefined Status = "undefined" // n could not be computed
)

// Classify maps a safety factor onto a status. Exactly 1.0 is its own state.
func Classify(n Quantity) Status {
	switch {
	case !n.Defined:
		return StatusUndefined
	case n.Value > 1:
		return StatusSafe
	case n.Value == 1:
		return StatusCritical
	default:
		return StatusUnsafe
	}
}

// GoodmanFactor returns the modified-Goodman fatigue safety factor
//
//	1/n = σa'/Se + σm'/Sut
func GoodmanFactor(sigmaAPrime, sigmaMPrime, se Quantity, uts float64) Quantity {
	sa, sm, ok := criterionInputs(sigmaAPrime, sigmaMPrime, se, uts)
	if !ok.Defined {
		return ok
	}
	return reciprocal(sa/se.Value + sm/uts)
}

// GerberFactor returns the Gerber-type factor offered alongside Goodman
//
//	1/n = σa'/Se + (σm'/Sut)²
func GerberFactor(sigmaAPrime, sigmaMPrime, se Quantity, uts float64) Quantity {
	sa, sm, ok := criterionInputs(sigmaAPrime, sigmaMPrime, se, uts)
	if !ok.Defined {
		return ok
	}
	ratio := sm / uts
	return reciprocal(sa/se.Value + ratio*ratio)
}

// YieldFactor returns the first-cycle yield safety factor n = Sy/σ'max.
func YieldFactor(sy float64, sigmaVMMax Quantity) Quantity {
	if !sigmaVMMax.Defined {
		return requires("σ'max")
	}
	if sy <= 0 {
		return Undefined(ReasonDomainRange, "Sy must be positive")
	}
	if sigmaVMMax.Value <= 0 {
		return Undefined(ReasonDegenerateInput, "σ'max is zero")
	}
	return Of(sy / sigmaVMMax.Value)
}

// criterionInputs checks the operands shared by the fatigue criteria. The
// returned Quantity is defined when the check passes.
func criterionInputs(sigmaAPrime, sigmaMPrime, se Quantity, uts float64) (float64, float64, Quantity) {
	switch {
	case !se.Defined:
		return 0, 0, requires("Se")
	case !sigmaAPrime.Defined:
		return 0, 0, requires("σa'")
	case !sigmaMPrime.Defined:
		return 0, 0, requires("σm'")
	case se.Value <= 0:
		return 0, 0, Undefined(ReasonDegenerateInput, "Se must be positive")
	case uts <= 0:
		return 0, 0, Undefined(ReasonDegenerateInput, "UTS must be positive")
	}
	return sigmaAPrime.Value, sigmaMPrime.Value, Of(1)
}

func reciprocal(denom float64) Quantity {
	if denom <= 0 {
		return Undefined(ReasonDegenerateInput, "criterion denominator is not positive")
	}
	return Of(1 / denom)
}
