package engine

import (
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		fn, err := LookupEasing(name)
		if err != nil {
			t.Fatalf("LookupEasing(%q) failed: %v", name, err)
		}
		if got := fn(150, 80, 0); got != 150 {
			t.Errorf("%s at t=0 = %v, expected start 150", name, got)
		}
		if got := fn(150, 80, 1); math.Abs(got-80) > 1e-9 {
			t.Errorf("%s at t=1 = %v, expected end 80", name, got)
		}
	}
}

func TestEasingLinearMidpoint(t *testing.T) {
	linear, err := LookupEasing("linear")
	if err != nil {
		t.Fatal(err)
	}
	if got := linear(100, 200, 0.5); got != 150 {
		t.Errorf("linear midpoint = %v, expected 150", got)
	}
}

func TestEasingQuadShapes(t *testing.T) {
	in, _ := LookupEasing("ease-in-quad")
	out, _ := LookupEasing("ease-out-quad")

	// Ease-in lags the linear midpoint, ease-out leads it.
	if got := in(0, 100, 0.5); got >= 50 {
		t.Errorf("ease-in-quad at t=0.5 = %v, expected below 50", got)
	}
	if got := out(0, 100, 0.5); got <= 50 {
		t.Errorf("ease-out-quad at t=0.5 = %v, expected above 50", got)
	}
}

func TestEasingEmptyNameIsLinear(t *testing.T) {
	fn, err := LookupEasing("")
	if err != nil {
		t.Fatal(err)
	}
	if got := fn(0, 10, 0.3); math.Abs(got-3) > 1e-9 {
		t.Errorf("Default easing at t=0.3 = %v, expected linear 3", got)
	}
}

func TestEasingUnknownName(t *testing.T) {
	if _, err := LookupEasing("bounce"); err == nil {
		t.Error("Expected an error for an unregistered easing")
	}
}

func TestEasingNamesSortedAndComplete(t *testing.T) {
	names := EasingNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names not sorted: %v", names)
		}
	}

	want := map[string]bool{"linear": false, "ease-in-quad": false, "ease-out-quad": false}
	for _, n := range names {
		if _, ok := want[n]; ok {
			want[n] = true
		}
	}
	for n, ok := range want {
		if !ok {
			t.Errorf("Builtin easing %q missing from %v", n, names)
		}
	}
}
