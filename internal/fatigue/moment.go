package fatigue

import (
	"math"

	"github.com/alexiusacademia/goshaft/internal/shaft"
)

// PointLoad is a transverse load at a position measured from bearing A
type PointLoad struct {
	Force    float64 // N
	Position float64 // mm
}

// PointLoads returns the transverse loads acting on the shaft. Fa and Fb take
// precedence; when both are zero the single load F acts at Lfa.
func PointLoads(in shaft.Inputs) []PointLoad {
	if in.Fa == 0 && in.Fb == 0 {
		if in.F == 0 {
			return nil
		}
		return []PointLoad{{Force: in.F, Position: in.Lfa}}
	}
	var loads []PointLoad
	if in.Fa != 0 {
		loads = append(loads, PointLoad{Force: in.Fa, Position: in.Lfa})
	}
	if in.Fb != 0 {
		loads = append(loads, PointLoad{Force: in.Fb, Position: in.Lfb})
	}
	return loads
}

// Reactions holds the bearing reactions of a simply supported shaft
type Reactions struct {
	A Quantity // at bearing A, x = 0 (N)
	B Quantity // at bearing B, x = L (N)
}

// SupportReactions solves the simply supported free body for the bearing
// reactions.
func SupportReactions(in shaft.Inputs) Reactions {
	if in.L <= 0 {
		u := Undefined(ReasonDegenerateInput, "span L must be positive")
		return Reactions{A: u, B: u}
	}
	var ra, total float64
	for _, p := range PointLoads(in) {
		if p.Position < 0 || p.Position > in.L {
			u := Undefined(ReasonDomainRange, "load position outside the span")
			return Reactions{A: u, B: u}
		}
		ra += p.Force * (in.L - p.Position) / in.L
		total += p.Force
	}
	return Reactions{A: Of(ra), B: Of(total - ra)}
}

// BendingMoment returns the bending-moment magnitude (N·mm) at the critical
// section for the free-body model selected in the inputs.
//
//	cantilever:       M = F·Db/2
//	simply-supported: M(s) = R_A·s − Σ F_i·max(0, s − a_i), s = L − SectionX
//	direct:           M = BendingMoment
func BendingMoment(in shaft.Inputs) Quantity {
	switch in.Moment.OrDefault() {
	case shaft.MomentCantilever:
		if in.Db <= 0 {
			return Undefined(ReasonDegenerateInput, "Db must be positive")
		}
		return Of(math.Abs(in.F * in.Db / 2))
	case shaft.MomentDirect:
		return Of(math.Abs(in.BendingMoment))
	case shaft.MomentSimplySupported:
		return simplySupportedMoment(in)
	}
	return Undefined(ReasonDomainRange, "unknown moment model "+string(in.Moment))
}

func simplySupportedMoment(in shaft.Inputs) Quantity {
	r := SupportReactions(in)
	if !r.A.Defined {
		return r.A
	}
	if in.SectionX < 0 || in.SectionX > in.L {
		return Undefined(ReasonDomainRange, "section position outside the span")
	}
	s := in.L - in.SectionX
	m := r.A.Value * s
	for _, p := range PointLoads(in) {
		if s > p.Position {
			m -= p.Force * (s - p.Position)
		}
	}
	return Of(math.Abs(m))
}
