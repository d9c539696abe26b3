package fatigue

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		n    Quantity
		want Status
	}{
		{Of(2.26), StatusSafe},
		{Of(1.0000001), StatusSafe},
		{Of(1), StatusCritical},
		{Of(0.9999999), StatusUnsafe},
		{Undefined(ReasonUpstream, ""), StatusUndefined},
	}
	for _, tc := range cases {
		if got := Classify(tc.n); got != tc.want {
			t.Fatalf("Classify(%v) = %s, want %s", tc.n, got, tc.want)
		}
	}
}

func TestGoodmanFactor(t *testing.T) {
	n := GoodmanFactor(Of(100), Of(0), Of(100), 690)
	if n.Value != 1 || Classify(n) != StatusCritical {
		t.Fatalf("expected exactly critical, got %v", n)
	}

	n = GoodmanFactor(Of(50), Of(345), Of(200), 690)
	if want := 1 / (50.0/200 + 345.0/690); !approx(n.Value, want, 1e-12) {
		t.Fatalf("n = %v, want %v", n.Value, want)
	}

	if n := GoodmanFactor(Of(0), Of(0), Of(200), 690); n.Reason != ReasonDegenerateInput {
		t.Fatalf("expected zero stress to be degenerate, got %v", n)
	}
	if n := GoodmanFactor(Of(100), Of(0), Undefined(ReasonUpstream, ""), 690); n.Reason != ReasonUpstream {
		t.Fatalf("expected upstream_undefined without Se, got %v", n)
	}
	if n := GoodmanFactor(Of(100), Of(0), Of(0), 690); n.Reason != ReasonDegenerateInput {
		t.Fatalf("expected Se=0 to be degenerate, got %v", n)
	}
}

func TestGerberFactor(t *testing.T) {
	n := GerberFactor(Of(50), Of(345), Of(200), 690)
	if want := 1 / (50.0/200 + 0.25); !approx(n.Value, want, 1e-12) {
		t.Fatalf("n = %v, want %v", n.Value, want)
	}
	goodman := GoodmanFactor(Of(50), Of(345), Of(200), 690)
	if n.Value <= goodman.Value {
		t.Fatalf("expected Gerber (%v) to be less conservative than Goodman (%v)", n.Value, goodman.Value)
	}
}

func TestYieldFactor(t *testing.T) {
	if n := YieldFactor(580, Of(290)); n.Value != 2 {
		t.Fatalf("n_y = %v, want 2", n.Value)
	}
	if n := YieldFactor(580, Of(0)); n.Defined {
		t.Fatalf("expected undefined for zero stress")
	}
	if n := YieldFactor(0, Of(100)); n.Reason != ReasonDomainRange {
		t.Fatalf("expected domain_range for Sy=0, got %v", n)
	}
	if n := YieldFactor(580, requires("σmax")); n.Reason != ReasonUpstream {
		t.Fatalf("expected upstream_undefined, got %v", n)
	}
}
