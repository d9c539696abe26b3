package fatigue

import (
	"math"

	"github.com/alexiusacademia/goshaft/internal/shaft"
)

// SectionModulus returns Z = π·d³/32 (mm³) for a solid round section.
func SectionModulus(d float64) Quantity {
	if d <= 0 {
		return Undefined(ReasonDegenerateInput, "Db must be positive")
	}
	return Of(math.Pi * d * d * d / 32)
}

// SectionArea returns A = π·d²/4 (mm²).
func SectionArea(d float64) Quantity {
	if d <= 0 {
		return Undefined(ReasonDegenerateInput, "Db must be positive")
	}
	return Of(math.Pi * d * d / 4)
}

// ShearStress returns the torsional shear stress τ = 16·T/(π·d³) (MPa).
func ShearStress(torque, d float64) Quantity {
	if d <= 0 {
		return Undefined(ReasonDegenerateInput, "Db must be positive")
	}
	return Of(16 * torque / (math.Pi * d * d * d))
}

// StressState summarizes the stresses at the critical section (MPa)
type StressState struct {
	Z    Quantity `json:"z"`    // section modulus (mm³)
	Area Quantity `json:"area"` // section area (mm²)

	SigmaA   Quantity `json:"sigma_a"`   // alternating normal stress
	SigmaM   Quantity `json:"sigma_m"`   // mean normal stress
	TauA     Quantity `json:"tau_a"`     // alternating shear stress
	TauM     Quantity `json:"tau_m"`     // mean shear stress
	SigmaMax Quantity `json:"sigma_max"` // σm + σa
	SigmaMin Quantity `json:"sigma_min"` // σm − σa

	// von Mises equivalents
	SigmaAPrime Quantity `json:"sigma_a_prime"` // √(σa² + 3τa²)
	SigmaMPrime Quantity `json:"sigma_m_prime"` // √(σm² + 3τm²)
	SigmaVMMax  Quantity `json:"sigma_vm_max"`  // √((σm+σa)² + 3(τm+τa)²)
}

// Stresses computes the stress state for rotating bending with torsion.
// Bending is fully reversed, so it contributes only to σa. Axial loads act
// over the section area: AmplitudeLoad on σa and MeanLoad on σm; both are
// zero unless given.
func Stresses(kf, moment Quantity, in shaft.Inputs) StressState {
	s := StressState{
		Z:    SectionModulus(in.Db),
		Area: SectionArea(in.Db),
		TauA: ShearStress(in.AltTorque, in.Db),
		TauM: ShearStress(in.MeanTorque, in.Db),
	}

	switch {
	case !kf.Defined:
		s.SigmaA = requires("Kf")
	case !moment.Defined:
		s.SigmaA = requires("bending moment")
	case !s.Z.Defined:
		s.SigmaA = requires("Z")
	default:
		s.SigmaA = Of(kf.Value*moment.Value/s.Z.Value + math.Abs(in.AmplitudeLoad)/s.Area.Value)
	}

	if s.Area.Defined {
		s.SigmaM = Of(in.MeanLoad / s.Area.Value)
	} else {
		s.SigmaM = requires("section area")
	}

	if s.SigmaA.Defined && s.SigmaM.Defined {
		s.SigmaMax = Of(s.SigmaM.Value + s.SigmaA.Value)
		s.SigmaMin = Of(s.SigmaM.Value - s.SigmaA.Value)
	} else {
		s.SigmaMax = requires("σa and σm")
		s.SigmaMin = requires("σa and σm")
	}

	s.SigmaAPrime = vonMises(s.SigmaA, s.TauA, "σa", "τa")
	s.SigmaMPrime = vonMises(s.SigmaM, s.TauM, "σm", "τm")

	if s.SigmaMax.Defined && s.TauA.Defined && s.TauM.Defined {
		s.SigmaVMMax = Of(math.Hypot(s.SigmaMax.Value, math.Sqrt(3)*(s.TauM.Value+s.TauA.Value)))
	} else {
		s.SigmaVMMax = requires("σmax and τ")
	}
	return s
}

func vonMises(sigma, tau Quantity, sigmaName, tauName string) Quantity {
	if !sigma.Defined {
		return requires(sigmaName)
	}
	if !tau.Defined {
		return requires(tauName)
	}
	return Of(math.Sqrt(sigma.Value*sigma.Value + 3*tau.Value*tau.Value))
}
