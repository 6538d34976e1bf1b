package api

import (
	"math"

	"growthcast/domain/forecast"
)

// forecastRequest is the wire form of a simulation request. The baseline may
// be supplied inline, referenced by stored name, or omitted to use the
// server's default.
type forecastRequest struct {
	Initiative     forecast.InitiativeKind  `json:"initiative"`
	Acquisition    forecast.AcquisitionPlan `json:"acquisition"`
	Retention      forecast.RetentionPlan   `json:"retention"`
	SegmentFilter  []string                 `json:"segment_filter"`
	PlatformFilter []string                 `json:"platform_filter"`
	ExposureRate   float64                  `json:"exposure_rate"`

	Baseline     *forecast.BaselineDataset `json:"baseline,omitempty"`
	BaselineName string                    `json:"baseline_name,omitempty"`
}

// forecastResponse carries the raw result plus display-rounded integer
// series. Rounding happens only here, never inside the engine.
type forecastResponse struct {
	forecast.SimulationResult
	Display displaySeries `json:"display"`
}

type displaySeries struct {
	Baseline       []int64 `json:"baseline"`
	WithInitiative []int64 `json:"with_initiative"`
	Incremental    []int64 `json:"incremental"`
	TotalImpact    int64   `json:"total_impact"`
}

func newForecastResponse(result *forecast.SimulationResult) forecastResponse {
	return forecastResponse{
		SimulationResult: *result,
		Display: displaySeries{
			Baseline:       roundSeries(result.Baseline),
			WithInitiative: roundSeries(result.WithInitiative),
			Incremental:    roundSeries(result.Incremental),
			TotalImpact:    int64(math.Round(result.Summary.TotalImpact)),
		},
	}
}

func roundSeries(values []float64) []int64 {
	out := make([]int64, len(values))
	for i, v := range values {
		out[i] = int64(math.Round(v))
	}
	return out
}

// baselineRequest is the wire form for saving a named baseline.
type baselineRequest struct {
	Name    string                   `json:"name"`
	Dataset forecast.BaselineDataset `json:"dataset"`
}
