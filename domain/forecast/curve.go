package forecast

import (
	"math"
)

// CurveKind tags a fitted retention curve variant.
type CurveKind string

const (
	// CurvePower is retention(t) = a * t^(-b) for t >= 1.
	CurvePower CurveKind = "power"
	// CurveExponential is retention(t) = c + a * e^(-lambda*t).
	CurveExponential CurveKind = "exponential"
)

// CurveParams holds the fitted parameters of one retention curve together
// with its goodness-of-fit score. Parameters may extrapolate outside [0,1]
// for extreme t; Evaluate clamps, so callers never see an out-of-range value.
type CurveParams struct {
	Kind          CurveKind `json:"kind"`
	A             float64   `json:"a"`
	B             float64   `json:"b,omitempty"`
	Lambda        float64   `json:"lambda,omitempty"`
	C             float64   `json:"c,omitempty"`
	GoodnessOfFit float64   `json:"goodness_of_fit"`
}

// Evaluate returns the retained fraction at the given day offset.
// Day 0 is always exactly 1.0 (the signup-day convention), overriding the
// fitted formula. The result is clamped to [0,1] for every other day and the
// function never panics, however large the offset.
func (p CurveParams) Evaluate(day int) float64 {
	if day <= 0 {
		return 1.0
	}

	t := float64(day)
	var r float64
	switch p.Kind {
	case CurveExponential:
		r = p.C + p.A*math.Exp(-p.Lambda*t)
	default:
		r = p.A * math.Pow(t, -p.B)
	}

	if math.IsNaN(r) || r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}

// FittedCurves bundles the four parameter sets a simulation works with.
// When no retention initiative is requested the improved curves equal the
// base curves.
type FittedCurves struct {
	BaseNew          CurveParams `json:"base_new"`
	BaseExisting     CurveParams `json:"base_existing"`
	ImprovedNew      CurveParams `json:"improved_new"`
	ImprovedExisting CurveParams `json:"improved_existing"`
}
