package fitting

import (
	"math"

	"growthcast/domain/forecast"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// logFloor keeps transformed retention values strictly positive so the
// log-linearized regressions never see ln(0).
const logFloor = 0.001

// asymptoteFactor places the exponential asymptote below the lowest observed
// point: c = 0.8 * min(retention).
const asymptoteFactor = 0.8

// Fitter produces closed-form least-squares retention curve fits from the
// six fixed calibration points. It is stateless and safe for concurrent use.
//
// Degenerate inputs (all-zero, all-equal series) never fail: the fits are
// still produced, with near-zero decay parameters and a low or zero
// goodness-of-fit score, and callers are expected to tolerate them.
type Fitter struct{}

// NewFitter creates a curve fitter
func NewFitter() *Fitter {
	return &Fitter{}
}

// FitPower fits retention(t) = a * t^(-b) by ordinary least squares on the
// log-linearized model ln r = ln a - b ln t. The six fixed day offsets
// differ, so the regression denominator never vanishes even for a perfectly
// flat series.
func (f *Fitter) FitPower(points []forecast.CurvePoint) forecast.CurveParams {
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = math.Log(float64(p.Day))
		ys[i] = math.Log(math.Max(p.Retention, logFloor))
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return forecast.CurveParams{
		Kind:          forecast.CurvePower,
		A:             math.Exp(intercept),
		B:             -slope,
		GoodnessOfFit: rSquared(xs, ys, intercept, slope),
	}
}

// FitExponential fits retention(t) = c + a * e^(-lambda*t) in two stages:
// the asymptote c is pinned heuristically below the minimum observation, then
// ln(r - c) is regressed against the raw day values. Closed-form and
// deterministic; the calibration points are fixed checkpoints, not noisy
// samples, so the lost rigor is acceptable.
func (f *Fitter) FitExponential(points []forecast.CurvePoint) forecast.CurveParams {
	retained := make([]float64, len(points))
	for i, p := range points {
		retained[i] = p.Retention
	}
	minRetention, err := stats.Min(retained)
	if err != nil {
		minRetention = 0
	}
	c := asymptoteFactor * minRetention

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = float64(p.Day)
		ys[i] = math.Log(math.Max(p.Retention-c, logFloor))
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return forecast.CurveParams{
		Kind:          forecast.CurveExponential,
		A:             math.Exp(intercept),
		Lambda:        -slope,
		C:             c,
		GoodnessOfFit: rSquared(xs, ys, intercept, slope),
	}
}

// Fit fits the requested curve family. FamilyAuto fits both and keeps the
// higher goodness of fit, power winning ties.
func (f *Fitter) Fit(points []forecast.CurvePoint, family forecast.CurveFamily) forecast.CurveParams {
	switch family {
	case forecast.FamilyPower:
		return f.FitPower(points)
	case forecast.FamilyExponential:
		return f.FitExponential(points)
	default:
		power := f.FitPower(points)
		exponential := f.FitExponential(points)
		if exponential.GoodnessOfFit > power.GoodnessOfFit {
			return exponential
		}
		return power
	}
}

// rSquared computes R² in the transformed (linearized) space, clamped to
// [0,1]: a fit worse than the mean reports 0, never a negative score.
func rSquared(xs, ys []float64, intercept, slope float64) float64 {
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)
	if math.IsNaN(r2) || r2 < 0 {
		return 0
	}
	if r2 > 1 {
		return 1
	}
	return r2
}
