package forecast

import (
	"sort"
	"strings"
)

// RetentionDays are the fixed day offsets at which retention is observed.
// Every retention series must provide all six, in strictly increasing order.
var RetentionDays = []int{1, 7, 14, 28, 360, 720}

// SliceKey identifies one (segment, platform) slice of the user base.
// Encoded as "segment:platform" so it can serve as a map key and survive
// JSON round-trips without a custom marshaller.
type SliceKey string

// NewSliceKey builds a slice key from its parts
func NewSliceKey(segment, platform string) SliceKey {
	return SliceKey(segment + ":" + platform)
}

// Segment returns the segment part of the key
func (k SliceKey) Segment() string {
	if i := strings.IndexByte(string(k), ':'); i >= 0 {
		return string(k)[:i]
	}
	return string(k)
}

// Platform returns the platform part of the key
func (k SliceKey) Platform() string {
	if i := strings.IndexByte(string(k), ':'); i >= 0 {
		return string(k)[i+1:]
	}
	return ""
}

// RetentionSeries maps a day offset to an observed retention percentage (0-100).
type RetentionSeries map[int]float64

// Points returns the series as (day, fraction) pairs ordered by day, with
// percentages clamped to [0,100] before conversion.
func (s RetentionSeries) Points() []CurvePoint {
	days := make([]int, 0, len(s))
	for d := range s {
		days = append(days, d)
	}
	sort.Ints(days)

	points := make([]CurvePoint, 0, len(days))
	for _, d := range days {
		pct := s[d]
		if pct < 0 {
			pct = 0
		} else if pct > 100 {
			pct = 100
		}
		points = append(points, CurvePoint{Day: d, Retention: pct / 100.0})
	}
	return points
}

// Shifted returns a copy of the series with per-offset percentage-point gains
// applied, clamped back to [0,100]. Used to build the improved-retention
// series for a retention initiative.
func (s RetentionSeries) Shifted(gains map[int]float64) RetentionSeries {
	out := make(RetentionSeries, len(s))
	for d, pct := range s {
		v := pct + gains[d]
		if v < 0 {
			v = 0
		} else if v > 100 {
			v = 100
		}
		out[d] = v
	}
	return out
}

// CurvePoint is one retention observation: day offset and retained fraction.
type CurvePoint struct {
	Day       int
	Retention float64
}

// RetentionCurves holds the two observed series of a baseline dataset.
type RetentionCurves struct {
	Existing RetentionSeries `json:"existing"`
	New      RetentionSeries `json:"new"`
}

// BaselineDataset carries the population, acquisition and retention inputs
// for one forecast. It is supplied per request and never mutated by the
// engine.
type BaselineDataset struct {
	CurrentDAU         map[SliceKey]float64 `json:"current_dau"`
	WeeklyAcquisitions map[SliceKey]float64 `json:"weekly_acquisitions"`
	RetentionCurves    RetentionCurves      `json:"retention_curves"`
}

// InitiativeKind selects which growth levers a simulation applies.
type InitiativeKind string

const (
	InitiativeNone        InitiativeKind = "none"
	InitiativeAcquisition InitiativeKind = "acquisition"
	InitiativeRetention   InitiativeKind = "retention"
	InitiativeCombined    InitiativeKind = "combined"
)

// TargetCohort selects which user population a retention initiative affects.
type TargetCohort string

const (
	TargetNew      TargetCohort = "new"
	TargetExisting TargetCohort = "existing"
	TargetAll      TargetCohort = "all"
)

// AcquisitionPlan describes a time-boxed acquisition campaign.
type AcquisitionPlan struct {
	WeeklyInstalls float64 `json:"weekly_installs"`
	LeadWeeks      int     `json:"lead_weeks"`
	DurationWeeks  int     `json:"duration_weeks"`
}

// RetentionPlan describes a retention improvement: percentage-point gains at
// each observed day offset, a launch delay, and the cohort it targets.
type RetentionPlan struct {
	TargetCohort  TargetCohort    `json:"target_cohort"`
	MonthsToStart int             `json:"months_to_start"`
	DayGainPoints map[int]float64 `json:"day_gain_points"`
}

// SimulationRequest is one forecast invocation. Created fresh per call,
// never persisted by the engine.
type SimulationRequest struct {
	Initiative     InitiativeKind  `json:"initiative"`
	Acquisition    AcquisitionPlan `json:"acquisition"`
	Retention      RetentionPlan   `json:"retention"`
	SegmentFilter  []string        `json:"segment_filter,omitempty"`
	PlatformFilter []string        `json:"platform_filter,omitempty"`
	ExposureRate   float64         `json:"exposure_rate"`
	Baseline       BaselineDataset `json:"baseline"`
}

// ChurnModel selects how existing-user decay is computed.
type ChurnModel string

const (
	// ChurnFixedExponential applies the constant 5%-per-30-days decay.
	ChurnFixedExponential ChurnModel = "fixed-exponential"
	// ChurnFittedCurve drives decay off the fitted existing-user curve.
	ChurnFittedCurve ChurnModel = "fitted-curve"
)

// Granularity selects the simulation sampling step.
type Granularity string

const (
	// GranularityMonthly samples 12 mid-month checkpoints.
	GranularityMonthly Granularity = "monthly"
	// GranularityDaily simulates every day and reports monthly means.
	GranularityDaily Granularity = "daily"
)

// CurveFamily selects which retention curve family to fit.
type CurveFamily string

const (
	// FamilyAuto fits both families and keeps the better goodness of fit.
	FamilyAuto        CurveFamily = "auto"
	FamilyPower       CurveFamily = "power"
	FamilyExponential CurveFamily = "exponential"
)
