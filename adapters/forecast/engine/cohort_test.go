package engine

import (
	"math"
	"testing"

	"growthcast/domain/forecast"
)

// flatCurve retains every user forever: a=1, b=0.
var flatCurve = forecast.CurveParams{Kind: forecast.CurvePower, A: 1, B: 0}

func TestAccumulateNewUsers_FlatCurveCountsEveryCohort(t *testing.T) {
	got := AccumulateNewUsers(10, 0, 30, 30, flatCurve)
	if math.Abs(got-300) > 1e-9 {
		t.Errorf("30 cohorts of 10 at full retention should give 300, got %f", got)
	}
}

func TestAccumulateNewUsers_SkipsFutureCohorts(t *testing.T) {
	// Cohorts acquired after asOfDay contribute nothing; the day-10 cohort
	// itself counts at age 0.
	got := AccumulateNewUsers(10, 0, 30, 10, flatCurve)
	if math.Abs(got-110) > 1e-9 {
		t.Errorf("Only the 11 cohorts acquired by day 10 should count, got %f", got)
	}
}

func TestAccumulateNewUsers_ZeroRateAndEmptyWindow(t *testing.T) {
	if got := AccumulateNewUsers(0, 0, 100, 100, flatCurve); got != 0 {
		t.Errorf("Zero rate must contribute nothing, got %f", got)
	}
	if got := AccumulateNewUsers(10, 50, 50, 100, flatCurve); got != 0 {
		t.Errorf("Empty window must contribute nothing, got %f", got)
	}
}

func TestAccumulateNewUsers_AppliesDecay(t *testing.T) {
	curve := forecast.CurveParams{Kind: forecast.CurvePower, A: 0.6, B: 0.3}
	full := AccumulateNewUsers(10, 0, 30, 30, flatCurve)
	decayed := AccumulateNewUsers(10, 0, 30, 30, curve)
	if decayed >= full {
		t.Errorf("Decaying curve must contribute less than full retention: %f >= %f", decayed, full)
	}
	if decayed <= 0 {
		t.Errorf("Positive rate and curve must contribute something, got %f", decayed)
	}
}

func TestAccumulateUplift_FloorsAtZero(t *testing.T) {
	better := forecast.CurveParams{Kind: forecast.CurvePower, A: 0.7, B: 0.3}
	worse := forecast.CurveParams{Kind: forecast.CurvePower, A: 0.5, B: 0.3}

	if got := AccumulateUplift(10, 0, 30, 30, better, worse); got != 0 {
		t.Errorf("An improvement below baseline must floor at zero, got %f", got)
	}
	if got := AccumulateUplift(10, 0, 30, 30, worse, better); got <= 0 {
		t.Errorf("A genuine improvement must contribute, got %f", got)
	}
}

func TestFixedDecay(t *testing.T) {
	if got := FixedDecay(1_000_000, 0); got != 1_000_000 {
		t.Errorf("Day 0 keeps the full population, got %f", got)
	}
	if got := FixedDecay(1_000_000, 30); math.Abs(got-950_000) > 1e-6 {
		t.Errorf("One month of decay should keep 95%%, got %f", got)
	}
	if got := FixedDecay(1_000_000, 300); math.Abs(got-1_000_000*math.Pow(0.95, 10)) > 1e-6 {
		t.Errorf("Ten months of decay mismatch, got %f", got)
	}
}
