package testkit

import (
	"growthcast/domain/forecast"
)

// DemoBaseline returns a realistic mid-size product baseline: ~1.8M DAU
// split across two segments and three platforms, with the familiar shape of
// mobile retention (steep early decay, long flat tail).
func DemoBaseline() forecast.BaselineDataset {
	return forecast.BaselineDataset{
		CurrentDAU: map[forecast.SliceKey]float64{
			forecast.NewSliceKey("core", "ios"):       450_000,
			forecast.NewSliceKey("core", "android"):   620_000,
			forecast.NewSliceKey("core", "web"):       180_000,
			forecast.NewSliceKey("casual", "ios"):     210_000,
			forecast.NewSliceKey("casual", "android"): 290_000,
			forecast.NewSliceKey("casual", "web"):     80_000,
		},
		WeeklyAcquisitions: map[forecast.SliceKey]float64{
			forecast.NewSliceKey("core", "ios"):       21_000,
			forecast.NewSliceKey("core", "android"):   35_000,
			forecast.NewSliceKey("core", "web"):       9_000,
			forecast.NewSliceKey("casual", "ios"):     14_000,
			forecast.NewSliceKey("casual", "android"): 24_500,
			forecast.NewSliceKey("casual", "web"):     5_500,
		},
		RetentionCurves: forecast.RetentionCurves{
			New: forecast.RetentionSeries{
				1: 60, 7: 35, 14: 27, 28: 21, 360: 9, 720: 6,
			},
			Existing: forecast.RetentionSeries{
				1: 95, 7: 88, 14: 84, 28: 80, 360: 60, 720: 52,
			},
		},
	}
}

// RetentionRequest returns a retention-initiative request against the demo
// baseline: +4 points on early retention for all cohorts, 80% exposure,
// launching after two months.
func RetentionRequest() forecast.SimulationRequest {
	return forecast.SimulationRequest{
		Initiative: forecast.InitiativeRetention,
		Retention: forecast.RetentionPlan{
			TargetCohort:  forecast.TargetAll,
			MonthsToStart: 2,
			DayGainPoints: map[int]float64{1: 4, 7: 4, 14: 3, 28: 3, 360: 1, 720: 1},
		},
		ExposureRate: 80,
		Baseline:     DemoBaseline(),
	}
}

// CampaignRequest returns an acquisition-campaign request against the demo
// baseline: 70k weekly installs for 12 weeks after a 2-week lead.
func CampaignRequest() forecast.SimulationRequest {
	return forecast.SimulationRequest{
		Initiative: forecast.InitiativeAcquisition,
		Acquisition: forecast.AcquisitionPlan{
			WeeklyInstalls: 70_000,
			LeadWeeks:      2,
			DurationWeeks:  12,
		},
		ExposureRate: 100,
		Baseline:     DemoBaseline(),
	}
}

// CombinedRequest layers the campaign on top of the retention initiative.
func CombinedRequest() forecast.SimulationRequest {
	req := RetentionRequest()
	req.Initiative = forecast.InitiativeCombined
	req.Acquisition = CampaignRequest().Acquisition
	return req
}
