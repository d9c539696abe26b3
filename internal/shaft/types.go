package shaft

import (
	"fmt"
	"math"
	"strings"
)

// MomentModel selects the free-body model used to obtain the bending moment
// at the critical section.
type MomentModel string

const (
	// MomentSimplySupported treats the shaft as a simply supported span L with
	// point loads, evaluated SectionX from bearing B.
	MomentSimplySupported MomentModel = "simply-supported"
	// MomentCantilever uses M = F·Db/2.
	MomentCantilever MomentModel = "cantilever"
	// MomentDirect takes BendingMoment as given.
	MomentDirect MomentModel = "direct"
)

// MomentModels lists the accepted models in display order
var MomentModels = []MomentModel{MomentSimplySupported, MomentCantilever, MomentDirect}

// OrDefault returns the model, substituting simply-supported for the empty value.
func (m MomentModel) OrDefault() MomentModel {
	if m == "" {
		return MomentSimplySupported
	}
	return m
}

// Valid reports whether m names a known model (the empty value is valid).
func (m MomentModel) Valid() bool {
	for _, known := range MomentModels {
		if m.OrDefault() == known {
			return true
		}
	}
	return false
}

// ParseMomentModel normalizes user input into a MomentModel.
func ParseMomentModel(s string) (MomentModel, error) {
	m := MomentModel(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", &ValidationError{msg: fmt.Sprintf("unknown moment model %q (want one of simply-supported, cantilever, direct)", s)}
	}
	return m.OrDefault(), nil
}

// Inputs holds the geometry, loading and material data of one shaft
// calculation. The field order is the canonical export order.
type Inputs struct {
	// Geometry (mm)
	Da  float64 `json:"da" yaml:"da"`   // larger (shoulder) diameter
	Db  float64 `json:"db" yaml:"db"`   // smaller diameter at the critical section
	R   float64 `json:"r" yaml:"r"`     // fillet radius
	L   float64 `json:"l" yaml:"l"`     // bearing span
	Lfa float64 `json:"lfa" yaml:"lfa"` // position of Fa (or F) from bearing A
	Lfb float64 `json:"lfb" yaml:"lfb"` // position of Fb from bearing A

	// Loading
	F             float64 `json:"f" yaml:"f"`                           // single transverse load (N)
	Fa            float64 `json:"fa" yaml:"fa"`                         // transverse load a (N)
	Fb            float64 `json:"fb" yaml:"fb"`                         // transverse load b (N)
	MeanTorque    float64 `json:"mean_torque" yaml:"mean_torque"`       // N·mm
	AltTorque     float64 `json:"alt_torque" yaml:"alt_torque"`         // N·mm
	MeanLoad      float64 `json:"mean_load" yaml:"mean_load"`           // axial, N
	AmplitudeLoad float64 `json:"amplitude_load" yaml:"amplitude_load"` // axial, N

	// Material
	UTS             float64 `json:"uts" yaml:"uts"`                           // MPa
	Sy              float64 `json:"sy" yaml:"sy"`                             // MPa
	ASurf           float64 `json:"a_surf" yaml:"a_surf"`                     // Marin surface factor a (MPa)
	BSurf           float64 `json:"b_surf" yaml:"b_surf"`                     // Marin surface factor exponent b
	FatigueFraction float64 `json:"fatigue_fraction" yaml:"fatigue_fraction"` // f, 0..1

	// Free-body model
	Moment        MomentModel `json:"moment" yaml:"moment"`
	SectionX      float64     `json:"section_x" yaml:"section_x"`           // critical section from bearing B (mm)
	BendingMoment float64     `json:"bending_moment" yaml:"bending_moment"` // direct model only (N·mm)
}

// Defaults returns the default input set: a machined 690 MPa steel shaft
// stepping from 38 to 32 mm with a 3 mm fillet.
func Defaults() Inputs {
	return Inputs{
		Da:              38,
		Db:              32,
		R:               3,
		L:               500,
		Lfa:             250,
		F:               2000,
		UTS:             690,
		Sy:              580,
		ASurf:           4.51,
		BSurf:           -0.265,
		FatigueFraction: 0.9,
		Moment:          MomentSimplySupported,
		SectionX:        250,
	}
}

// Validate checks that the inputs can be fed to the calculation at all.
// Out-of-range values are not rejected here; they surface as undefined
// quantities in the result.
func (in Inputs) Validate() error {
	for _, c := range columns {
		if c.num == nil {
			continue
		}
		v := *c.num(&in)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{msg: fmt.Sprintf("%s must be a finite number", c.name)}
		}
	}
	if !in.Moment.Valid() {
		return &ValidationError{msg: fmt.Sprintf("unknown moment model %q", in.Moment)}
	}
	return nil
}

// Case is a named set of inputs, as read from case files and batch sheets
type Case struct {
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Inputs Inputs `json:"inputs" yaml:"inputs"`
}

// ValidationError represents an input validation error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}
