package fatigue

import (
	"math"
	"testing"
)

func TestEnduranceScenario(t *testing.T) {
	sePrime := EndurancePrime(690)
	if sePrime.Value != 345 {
		t.Fatalf("Se' = %v, want 345", sePrime.Value)
	}

	ka := SurfaceFactor(690, 4.51, -0.265)
	if want := 4.51 * math.Pow(690, -0.265); ka.Value != want {
		t.Fatalf("ka = %v, want %v", ka.Value, want)
	}

	kb := SizeFactor(32)
	se := EnduranceLimit(sePrime, ka, kb)
	if !se.Defined {
		t.Fatalf("expected Se to be defined: %v", se)
	}
	if se.Value != ka.Value*kb.Value*sePrime.Value {
		t.Fatalf("Se = %v is not ka·kb·Se'", se.Value)
	}
	if !approx(se.Value, 235.5436, 1e-5) {
		t.Fatalf("Se = %v, want about 235.54", se.Value)
	}
}

func TestEndurancePrimeStrictlyIncreasing(t *testing.T) {
	prev := EndurancePrime(1)
	for uts := 2.0; uts <= 1700; uts += 7 {
		cur := EndurancePrime(uts)
		if !cur.Defined || cur.Value <= prev.Value {
			t.Fatalf("Se'(%v) = %v not above %v", uts, cur, prev)
		}
		prev = cur
	}
}

func TestSizeFactorRanges(t *testing.T) {
	cases := []struct {
		d       float64
		defined bool
	}{
		{2.78, false},
		{2.79, true},
		{51, true},
		{51.5, true},
		{254, true},
		{254.01, false},
		{300, false},
	}
	for _, tc := range cases {
		kb := SizeFactor(tc.d)
		if kb.Defined != tc.defined {
			t.Fatalf("kb(%v) defined = %v, want %v", tc.d, kb.Defined, tc.defined)
		}
		if !tc.defined && kb.Reason != ReasonDomainRange {
			t.Fatalf("kb(%v) reason = %s, want domain_range", tc.d, kb.Reason)
		}
	}
}

func TestEnduranceLimitPropagatesUndefined(t *testing.T) {
	se := EnduranceLimit(EndurancePrime(500), SurfaceFactor(500, 4.51, -0.265), SizeFactor(300))
	if se.Defined {
		t.Fatalf("expected Se to be undefined")
	}
	if se.Reason != ReasonUpstream || se.Detail != "requires kb" {
		t.Fatalf("unexpected reason: %v", se)
	}

	if got := SurfaceFactor(0, 4.51, -0.265); got.Reason != ReasonDegenerateInput {
		t.Fatalf("expected degenerate_input for UTS=0, got %v", got)
	}
	if got := SurfaceFactor(690, 0, -0.265); got.Reason != ReasonDomainRange {
		t.Fatalf("expected domain_range for a=0, got %v", got)
	}
	if got := EndurancePrime(-1); got.Defined {
		t.Fatalf("expected Se' to be undefined for negative UTS")
	}
}
