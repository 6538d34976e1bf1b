package forecast

import (
	"growthcast/domain/core"
)

// Months is the fixed forecast horizon: one year of monthly checkpoints.
const Months = 12

// DaysPerMonth is the simulation's month length convention.
const DaysPerMonth = 30

// Breakdown attributes total incremental DAU-days to its three sources.
type Breakdown struct {
	ExistingUsers  float64 `json:"existing_users"`
	NewUsers       float64 `json:"new_users"`
	NewAcquisition float64 `json:"new_acquisition"`
}

// Summary holds the headline statistics of one simulation.
type Summary struct {
	// TotalImpact is incremental DAU-days over the whole horizon.
	TotalImpact float64 `json:"total_impact"`
	// PeakIncremental is the largest monthly incremental value.
	PeakIncremental float64 `json:"peak_incremental"`
	// PeakMonth is the zero-based index of the first month reaching the peak.
	PeakMonth int `json:"peak_month"`
	// PeakLiftPercent is the peak as a percentage of that month's baseline.
	PeakLiftPercent float64   `json:"peak_lift_percent"`
	Breakdown       Breakdown `json:"breakdown"`
}

// SimulationResult is the structured output of one forecast: three
// 12-element monthly series, the summary, and the fitted curve parameters.
// Invariant: WithInitiative[i] = Baseline[i] + Incremental[i] for every i.
type SimulationResult struct {
	ForecastID     core.ForecastID `json:"forecast_id"`
	Baseline       []float64       `json:"baseline"`
	WithInitiative []float64       `json:"with_initiative"`
	Incremental    []float64       `json:"incremental"`
	Summary        Summary         `json:"summary"`
	Curves         FittedCurves    `json:"curves"`
}
