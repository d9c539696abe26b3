package shigley

import "math"

// Empirical fatigue constants, Shigley's Mechanical Engineering Design
// (SI units: MPa, mm).

const (
	// EnduranceRatio relates the rotating-beam endurance limit to UTS.
	// Eq. 6-8: Se' = 0.5 Sut
	EnduranceRatio = 0.5

	// DefaultFatigueFraction is f for Sut around 490 MPa and above (Fig. 6-18)
	DefaultFatigueFraction = 0.9

	// Neuber constant validity range for steels (MPa), inclusive
	NeuberMinUTS = 340.0
	NeuberMaxUTS = 1700.0

	// Size factor ranges for rotating round bars (mm)
	// Eq. 6-20
	SizeMinDiameter   = 2.79
	SizeBreakDiameter = 51.0
	SizeMaxDiameter   = 254.0

	sizeSmallCoeff = 1.24
	sizeSmallExp   = -0.107
	sizeLargeCoeff = 1.51
	sizeLargeExp   = -0.157
)

// Neuber polynomial coefficients for bending/axial loading, √a in √mm
// Eq. 6-35a
var neuberCoeffs = [4]float64{1.24, -2.25e-3, 1.60e-6, -4.11e-10}

// NeuberInRange reports whether uts lies inside the validated range of the
// Neuber polynomial.
func NeuberInRange(uts float64) bool {
	return uts >= NeuberMinUTS && uts <= NeuberMaxUTS
}

// NeuberSqrtA evaluates the Neuber constant √a (√mm) for a steel of the
// given ultimate strength. Callers check NeuberInRange first.
func NeuberSqrtA(uts float64) float64 {
	c := neuberCoeffs
	return c[0] + c[1]*uts + c[2]*uts*uts + c[3]*uts*uts*uts
}

// SizeFactorInRange reports whether d (mm) is covered by Eq. 6-20.
func SizeFactorInRange(d float64) bool {
	return d >= SizeMinDiameter && d <= SizeMaxDiameter
}

// SizeFactor calculates kb for a rotating round section of diameter d (mm).
// Outside [2.79, 254] mm the result is meaningless; check SizeFactorInRange.
func SizeFactor(d float64) float64 {
	if d <= SizeBreakDiameter {
		// kb = 1.24 d^-0.107 for 2.79 <= d <= 51 mm
		return sizeSmallCoeff * math.Pow(d, sizeSmallExp)
	}
	// kb = 1.51 d^-0.157 for 51 < d <= 254 mm
	return sizeLargeCoeff * math.Pow(d, sizeLargeExp)
}
