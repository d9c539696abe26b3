package fatigue

import (
	"encoding/json"
	"fmt"
	"math"
)

// Reason classifies why a quantity is undefined.
type Reason string

const (
	// ReasonDomainRange: an input lies outside the empirical range of a formula.
	ReasonDomainRange Reason = "domain_range"
	// ReasonDegenerateInput: a zero or negative divisor, root or log argument.
	ReasonDegenerateInput Reason = "degenerate_input"
	// ReasonInvalidExponent: the S-N exponent b is zero.
	ReasonInvalidExponent Reason = "invalid_exponent"
	// ReasonUpstream: a quantity this one depends on is undefined.
	ReasonUpstream Reason = "upstream_undefined"
	// ReasonNotApplicable: the life state machine did not take this branch.
	ReasonNotApplicable Reason = "not_applicable"
)

// Quantity is a derived value that is either a finite number or explicitly
// undefined. The zero value is undefined.
type Quantity struct {
	Value   float64
	Defined bool
	Reason  Reason // empty when Defined
	Detail  string
}

// Of wraps v. Non-finite values become undefined so NaN never leaks
// downstream.
func Of(v float64) Quantity {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Undefined(ReasonDegenerateInput, "non-finite result")
	}
	return Quantity{Value: v, Defined: true}
}

// Undefined returns an undefined quantity.
func Undefined(reason Reason, detail string) Quantity {
	return Quantity{Reason: reason, Detail: detail}
}

func requires(name string) Quantity {
	return Undefined(ReasonUpstream, "requires "+name)
}

// Get returns the value and whether it is defined.
func (q Quantity) Get() (float64, bool) {
	return q.Value, q.Defined
}

func (q Quantity) String() string {
	if !q.Defined {
		if q.Detail != "" {
			return fmt.Sprintf("undefined (%s: %s)", q.Reason, q.Detail)
		}
		return fmt.Sprintf("undefined (%s)", q.Reason)
	}
	return fmt.Sprintf("%g", q.Value)
}

// MarshalJSON encodes a defined quantity as a number and an undefined one
// as null.
func (q Quantity) MarshalJSON() ([]byte, error) {
	if !q.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(q.Value)
}

// UnmarshalJSON accepts a number or null.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*q = Undefined(ReasonUpstream, "")
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*q = Of(v)
	return nil
}
