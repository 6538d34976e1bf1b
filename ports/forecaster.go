package ports

import (
	"context"

	"growthcast/domain/forecast"
)

// ForecastPort runs one simulation: a pure function of the request.
type ForecastPort interface {
	Forecast(ctx context.Context, req forecast.SimulationRequest) (*forecast.SimulationResult, error)
}

// CurveFitterPort produces fitted retention-curve parameters from the six
// calibration points.
type CurveFitterPort interface {
	Fit(points []forecast.CurvePoint, family forecast.CurveFamily) forecast.CurveParams
	FitPower(points []forecast.CurvePoint) forecast.CurveParams
	FitExponential(points []forecast.CurvePoint) forecast.CurveParams
}
