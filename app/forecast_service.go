package app

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"growthcast/adapters/forecast/engine"
	"growthcast/domain/core"
	"growthcast/domain/forecast"
	"growthcast/ports"
)

// ForecastService orchestrates one simulation: request validation, unit
// conversion at the boundary (percentages to fractions), curve fitting, and
// the simulation run. It holds no per-request state and is safe for
// concurrent use.
type ForecastService struct {
	fitter    ports.CurveFitterPort
	simulator *engine.Simulator
	family    forecast.CurveFamily
}

// NewForecastService creates a forecast service
func NewForecastService(fitter ports.CurveFitterPort, simulator *engine.Simulator, family forecast.CurveFamily) *ForecastService {
	if family == "" {
		family = forecast.FamilyAuto
	}
	return &ForecastService{
		fitter:    fitter,
		simulator: simulator,
		family:    family,
	}
}

// Forecast validates the request, fits the base and (when requested)
// improved retention curves, runs the simulation, and returns the structured
// result. Validation failures surface before the simulation loop starts; no
// partial results are ever returned.
func (s *ForecastService) Forecast(ctx context.Context, req forecast.SimulationRequest) (*forecast.SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inputs := s.buildInputs(req)
	result := s.simulator.Run(inputs)
	result.ForecastID = core.ForecastID(core.NewID())
	result.Curves = inputs.Curves
	return &result, nil
}

// buildInputs aggregates the filtered slices, converts every human-entered
// percentage into a fraction, and fits the four curve parameter sets.
func (s *ForecastService) buildInputs(req forecast.SimulationRequest) engine.Inputs {
	// Sum slices in sorted key order so repeated invocations accumulate in
	// the same order and stay byte-identical.
	population := sumFiltered(req, req.Baseline.CurrentDAU)
	weeklyAcquisitions := sumFiltered(req, req.Baseline.WeeklyAcquisitions)

	baseNewSeries := req.Baseline.RetentionCurves.New
	baseExistingSeries := req.Baseline.RetentionCurves.Existing

	curves := forecast.FittedCurves{
		BaseNew:      s.fitter.Fit(baseNewSeries.Points(), s.family),
		BaseExisting: s.fitter.Fit(baseExistingSeries.Points(), s.family),
	}

	// Improved curves default to the base fits; a retention initiative
	// refits against the gain-shifted series for the cohorts it targets.
	curves.ImprovedNew = curves.BaseNew
	curves.ImprovedExisting = curves.BaseExisting
	if req.Initiative == forecast.InitiativeRetention || req.Initiative == forecast.InitiativeCombined {
		gains := req.Retention.DayGainPoints
		if req.Retention.TargetCohort == forecast.TargetNew || req.Retention.TargetCohort == forecast.TargetAll {
			curves.ImprovedNew = s.fitter.Fit(baseNewSeries.Shifted(gains).Points(), s.family)
		}
		if req.Retention.TargetCohort == forecast.TargetExisting || req.Retention.TargetCohort == forecast.TargetAll {
			curves.ImprovedExisting = s.fitter.Fit(baseExistingSeries.Shifted(gains).Points(), s.family)
		}
	}

	return engine.Inputs{
		Population:           population,
		DailyAcquisitionRate: weeklyAcquisitions / 7.0,
		Exposure:             req.ExposureRate / 100.0,
		Initiative:           req.Initiative,
		Acquisition:          req.Acquisition,
		Target:               req.Retention.TargetCohort,
		LaunchDay:            req.Retention.MonthsToStart * forecast.DaysPerMonth,
		Curves:               curves,
	}
}

func sumFiltered(req forecast.SimulationRequest, slices map[forecast.SliceKey]float64) float64 {
	keys := make([]string, 0, len(slices))
	for k := range slices {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	total := 0.0
	for _, k := range keys {
		key := forecast.SliceKey(k)
		if req.MatchesFilters(key) {
			total += slices[key]
		}
	}
	return total
}

// Scenario pairs a label with an initiative variant to evaluate against a
// shared baseline.
type Scenario struct {
	Name    string
	Request forecast.SimulationRequest
}

// ScenarioResult is one scenario's outcome within a batch run.
type ScenarioResult struct {
	Name   string
	Result *forecast.SimulationResult
}

// RunScenarios evaluates independent scenarios concurrently. Simulations are
// pure and share no state, so they parallelize freely; the first validation
// failure cancels the batch.
func (s *ForecastService) RunScenarios(ctx context.Context, scenarios []Scenario) ([]ScenarioResult, error) {
	results := make([]ScenarioResult, len(scenarios))

	g, ctx := errgroup.WithContext(ctx)
	for i, sc := range scenarios {
		i, sc := i, sc
		g.Go(func() error {
			res, err := s.Forecast(ctx, sc.Request)
			if err != nil {
				return err
			}
			results[i] = ScenarioResult{Name: sc.Name, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
