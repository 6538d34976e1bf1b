package forecast

import (
	"math"
	"testing"
)

func TestEvaluate_DayZeroConvention(t *testing.T) {
	curves := []CurveParams{
		{Kind: CurvePower, A: 0.6, B: 0.3},
		{Kind: CurvePower, A: 0, B: 0},
		{Kind: CurveExponential, A: 0.5, Lambda: 0.01, C: 0.05},
		{Kind: CurveExponential, A: 0, Lambda: 0, C: 0},
	}
	for _, p := range curves {
		if got := p.Evaluate(0); got != 1.0 {
			t.Errorf("Evaluate(%+v, 0) = %f, want exactly 1.0", p, got)
		}
	}
}

func TestEvaluate_ClampsToUnitInterval(t *testing.T) {
	curves := []CurveParams{
		{Kind: CurvePower, A: 5.0, B: 0.1},            // extrapolates above 1 for small t
		{Kind: CurvePower, A: 0.6, B: -0.2},           // grows without bound
		{Kind: CurveExponential, A: 3.0, Lambda: 1e-9, C: 0.5},
		{Kind: CurveExponential, A: -2.0, Lambda: 0.001, C: 0.01}, // dips below 0
	}
	days := []int{1, 7, 28, 360, 720, 10_000, 10_000_000}

	for _, p := range curves {
		for _, day := range days {
			got := p.Evaluate(day)
			if math.IsNaN(got) || got < 0 || got > 1 {
				t.Errorf("Evaluate(%+v, %d) = %f, want value in [0,1]", p, day, got)
			}
		}
	}
}

func TestEvaluate_PowerApproachesZero(t *testing.T) {
	p := CurveParams{Kind: CurvePower, A: 0.6, B: 0.3}
	if got := p.Evaluate(10_000_000); got > 0.01 {
		t.Errorf("Power curve should decay toward 0 for huge t, got %f", got)
	}
}

func TestEvaluate_ExponentialApproachesAsymptote(t *testing.T) {
	p := CurveParams{Kind: CurveExponential, A: 0.5, Lambda: 0.01, C: 0.05}
	if got := p.Evaluate(10_000_000); math.Abs(got-0.05) > 1e-9 {
		t.Errorf("Exponential curve should approach c=0.05 for huge t, got %f", got)
	}
}
