package shigley

import (
	"math"
	"strings"
)

// Finish holds the Marin surface factor parameters for a surface condition
// Table 6-2: ka = a Sut^b (Sut in MPa)
type Finish struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	A           float64 `json:"a" yaml:"a"` // factor a (MPa)
	B           float64 `json:"b" yaml:"b"` // exponent b
}

// Finishes lists the surface conditions of Table 6-2
var Finishes = []Finish{
	{
		Name:        "ground",
		Description: "Ground",
		A:           1.58,
		B:           -0.085,
	},
	{
		Name:        "machined",
		Description: "Machined or cold-drawn",
		A:           4.51,
		B:           -0.265,
	},
	{
		Name:        "hot-rolled",
		Description: "Hot-rolled",
		A:           57.7,
		B:           -0.718,
	},
	{
		Name:        "as-forged",
		Description: "As-forged",
		A:           272,
		B:           -0.995,
	},
}

// SurfaceFactor returns ka = a·Sut^b.
func (f Finish) SurfaceFactor(uts float64) float64 {
	return f.A * math.Pow(uts, f.B)
}

// FinishByName looks up a surface condition, ignoring case. "cold-drawn" is
// accepted as an alias for "machined".
func FinishByName(name string) (Finish, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "cold-drawn" {
		key = "machined"
	}
	for _, f := range Finishes {
		if f.Name == key {
			return f, true
		}
	}
	return Finish{}, false
}
