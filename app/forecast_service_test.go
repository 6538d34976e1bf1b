package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthcast/adapters/forecast/engine"
	"growthcast/adapters/stats/fitting"
	"growthcast/domain/core"
	"growthcast/domain/forecast"
	"growthcast/internal/testkit"
)

func newService() *ForecastService {
	return NewForecastService(
		fitting.NewFitter(),
		engine.NewSimulator(engine.DefaultOptions()),
		forecast.FamilyAuto,
	)
}

func TestForecast_Determinism(t *testing.T) {
	service := newService()
	ctx := context.Background()
	req := testkit.CombinedRequest()

	first, err := service.Forecast(ctx, req)
	require.NoError(t, err)
	second, err := service.Forecast(ctx, req)
	require.NoError(t, err)

	// Only the run identifier may differ between invocations.
	assert.Equal(t, first.Baseline, second.Baseline)
	assert.Equal(t, first.WithInitiative, second.WithInitiative)
	assert.Equal(t, first.Incremental, second.Incremental)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, first.Curves, second.Curves)
	assert.NotEqual(t, first.ForecastID, second.ForecastID)
}

func TestForecast_SeriesShape(t *testing.T) {
	service := newService()
	result, err := service.Forecast(context.Background(), testkit.RetentionRequest())
	require.NoError(t, err)

	require.Len(t, result.Baseline, forecast.Months)
	require.Len(t, result.WithInitiative, forecast.Months)
	require.Len(t, result.Incremental, forecast.Months)
	for i := range result.Baseline {
		assert.Equal(t, result.Baseline[i]+result.Incremental[i], result.WithInitiative[i])
	}
	assert.Positive(t, result.Summary.TotalImpact)
}

func TestForecast_FitsImprovedCurvesOnlyForTargetedCohorts(t *testing.T) {
	service := newService()
	req := testkit.RetentionRequest()
	req.Retention.TargetCohort = forecast.TargetNew

	result, err := service.Forecast(context.Background(), req)
	require.NoError(t, err)

	assert.NotEqual(t, result.Curves.BaseNew, result.Curves.ImprovedNew)
	assert.Equal(t, result.Curves.BaseExisting, result.Curves.ImprovedExisting)
}

func TestForecast_ZeroExposure(t *testing.T) {
	service := newService()
	req := testkit.RetentionRequest()
	req.ExposureRate = 0

	result, err := service.Forecast(context.Background(), req)
	require.NoError(t, err)

	for _, inc := range result.Incremental {
		assert.Zero(t, inc)
	}
	assert.Zero(t, result.Summary.Breakdown.ExistingUsers)
	assert.Zero(t, result.Summary.Breakdown.NewUsers)
}

func TestForecast_FiltersRestrictPopulation(t *testing.T) {
	service := newService()
	ctx := context.Background()

	full, err := service.Forecast(ctx, testkit.RetentionRequest())
	require.NoError(t, err)

	filtered := testkit.RetentionRequest()
	filtered.PlatformFilter = []string{"ios"}
	partial, err := service.Forecast(ctx, filtered)
	require.NoError(t, err)

	assert.Less(t, partial.Baseline[0], full.Baseline[0])
}

func TestForecast_ValidationFailsBeforeSimulation(t *testing.T) {
	service := newService()
	req := testkit.RetentionRequest()
	delete(req.Baseline.RetentionCurves.New, 720)

	result, err := service.Forecast(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, core.ErrMissingDayOffset)
}

func TestRunScenarios(t *testing.T) {
	service := newService()
	scenarios := []Scenario{
		{Name: "baseline-only", Request: func() forecast.SimulationRequest {
			req := testkit.RetentionRequest()
			req.Initiative = forecast.InitiativeNone
			return req
		}()},
		{Name: "retention", Request: testkit.RetentionRequest()},
		{Name: "campaign", Request: testkit.CampaignRequest()},
	}

	results, err := service.RunScenarios(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "baseline-only", results[0].Name)
	assert.Zero(t, results[0].Result.Summary.TotalImpact)
	assert.Positive(t, results[1].Result.Summary.TotalImpact)
	assert.Positive(t, results[2].Result.Summary.TotalImpact)
}

func TestRunScenarios_PropagatesValidationError(t *testing.T) {
	service := newService()
	bad := testkit.RetentionRequest()
	bad.ExposureRate = -1

	_, err := service.RunScenarios(context.Background(), []Scenario{
		{Name: "good", Request: testkit.CampaignRequest()},
		{Name: "bad", Request: bad},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrExposureOutOfRange)
}
