package engine

import (
	"growthcast/domain/forecast"
)

// Options configure the behavioral variants of the simulator. The zero value
// is not useful; use DefaultOptions.
type Options struct {
	// ChurnModel selects the existing-user decay formula.
	ChurnModel forecast.ChurnModel
	// Ramp applies the acquisition-campaign ramp-up when true; when false
	// the campaign acquires at full volume from its first day.
	Ramp bool
	// Granularity selects mid-month checkpoints or a full daily loop.
	Granularity forecast.Granularity
}

// DefaultOptions returns the primary configuration: fixed-exponential churn,
// ramped campaigns, monthly checkpoints.
func DefaultOptions() Options {
	return Options{
		ChurnModel:  forecast.ChurnFixedExponential,
		Ramp:        true,
		Granularity: forecast.GranularityMonthly,
	}
}

// Inputs are the fully normalized inputs of one simulation run: aggregated
// population figures, fractional rates, and fitted curves. All percentage
// conversion happens before this point.
type Inputs struct {
	// Population is the filtered existing-user count at day 0.
	Population float64
	// DailyAcquisitionRate is the filtered baseline acquisition per day.
	DailyAcquisitionRate float64
	// Exposure is the fraction [0,1] of the targeted population affected by
	// a retention initiative.
	Exposure float64

	Initiative  forecast.InitiativeKind
	Acquisition forecast.AcquisitionPlan
	Target      forecast.TargetCohort
	// LaunchDay is monthsToStart * 30 for the retention initiative.
	LaunchDay int

	Curves forecast.FittedCurves
}

// Simulator drives the 12-month simulation loop: baseline trajectory,
// initiative components, and summary statistics. One Simulator may be shared
// across goroutines; it holds no per-run state.
type Simulator struct {
	opts Options
}

// NewSimulator creates a simulator with the given behavioral options
func NewSimulator(opts Options) *Simulator {
	return &Simulator{opts: opts}
}

// components is one day's incremental decomposition.
type components struct {
	existingUplift float64
	newUplift      float64
	acquisition    float64
}

func (c components) total() float64 {
	return c.existingUplift + c.newUplift + c.acquisition
}

// Run executes the simulation and returns the three monthly series plus the
// summary. The result always holds exactly 12 entries per series; the caller
// attaches identifiers and fitted-curve metadata.
func (s *Simulator) Run(in Inputs) forecast.SimulationResult {
	baseline := make([]float64, forecast.Months)
	incremental := make([]float64, forecast.Months)
	breakdown := make([]components, forecast.Months)

	if s.opts.Granularity == forecast.GranularityDaily {
		s.runDaily(in, baseline, incremental, breakdown)
	} else {
		s.runMonthly(in, baseline, incremental, breakdown)
	}

	withInitiative := make([]float64, forecast.Months)
	for i := range baseline {
		withInitiative[i] = baseline[i] + incremental[i]
	}

	return forecast.SimulationResult{
		Baseline:       baseline,
		WithInitiative: withInitiative,
		Incremental:    incremental,
		Summary:        s.summarize(baseline, incremental, breakdown),
	}
}

// runMonthly samples 12 checkpoints at day (month-1)*30 + 15, projecting each
// snapshot across the month's 30 days for the DAU-days totals.
func (s *Simulator) runMonthly(in Inputs, baseline, incremental []float64, breakdown []components) {
	for m := 0; m < forecast.Months; m++ {
		day := m*forecast.DaysPerMonth + forecast.DaysPerMonth/2
		baseline[m] = s.baselineDAU(in, day)
		comps := s.incrementalDAU(in, day)
		incremental[m] = comps.total()
		breakdown[m] = comps
	}
}

// runDaily simulates every day of the horizon and reports each month as the
// mean of its 30 daily values. Totals computed from these means match the
// exact per-day sums.
func (s *Simulator) runDaily(in Inputs, baseline, incremental []float64, breakdown []components) {
	for m := 0; m < forecast.Months; m++ {
		var baseSum float64
		var compSum components
		for d := 0; d < forecast.DaysPerMonth; d++ {
			day := m*forecast.DaysPerMonth + d
			baseSum += s.baselineDAU(in, day)
			comps := s.incrementalDAU(in, day)
			compSum.existingUplift += comps.existingUplift
			compSum.newUplift += comps.newUplift
			compSum.acquisition += comps.acquisition
		}
		n := float64(forecast.DaysPerMonth)
		baseline[m] = baseSum / n
		breakdown[m] = components{
			existingUplift: compSum.existingUplift / n,
			newUplift:      compSum.newUplift / n,
			acquisition:    compSum.acquisition / n,
		}
		incremental[m] = breakdown[m].total()
	}
}

// baselineDAU is the no-initiative trajectory at one day: decayed existing
// users plus every baseline acquisition cohort active so far.
func (s *Simulator) baselineDAU(in Inputs, day int) float64 {
	return s.existingSurvivors(in, day) +
		AccumulateNewUsers(in.DailyAcquisitionRate, 0, day, day, in.Curves.BaseNew)
}

// existingSurvivors applies the configured churn model to the initial
// population.
func (s *Simulator) existingSurvivors(in Inputs, day int) float64 {
	if s.opts.ChurnModel == forecast.ChurnFittedCurve {
		return in.Population * in.Curves.BaseExisting.Evaluate(day)
	}
	return FixedDecay(in.Population, day)
}

// incrementalDAU computes the three initiative components at one day.
func (s *Simulator) incrementalDAU(in Inputs, day int) components {
	var c components

	if in.Initiative == forecast.InitiativeRetention || in.Initiative == forecast.InitiativeCombined {
		c.existingUplift, c.newUplift = s.retentionUplift(in, day)
	}
	if in.Initiative == forecast.InitiativeAcquisition || in.Initiative == forecast.InitiativeCombined {
		c.acquisition = s.campaignContribution(in, day)
	}
	return c
}

// retentionUplift computes the existing-user and new-user components of a
// retention initiative, both zero before the launch day.
func (s *Simulator) retentionUplift(in Inputs, day int) (existing, newUsers float64) {
	if day < in.LaunchDay {
		return 0, 0
	}
	sinceLaunch := day - in.LaunchDay

	if in.Target == forecast.TargetExisting || in.Target == forecast.TargetAll {
		// The population that existed at launch, decayed to launch day and
		// reduced to the exposed share.
		exposedAtLaunch := s.existingSurvivors(in, in.LaunchDay) * in.Exposure
		uplift := in.Curves.ImprovedExisting.Evaluate(sinceLaunch) -
			in.Curves.BaseExisting.Evaluate(sinceLaunch)
		if uplift > 0 {
			existing = exposedAtLaunch * uplift
		}
	}

	if in.Target == forecast.TargetNew || in.Target == forecast.TargetAll {
		exposedRate := in.DailyAcquisitionRate * in.Exposure
		newUsers = AccumulateUplift(exposedRate, in.LaunchDay, day, day,
			in.Curves.BaseNew, in.Curves.ImprovedNew)
	}
	return existing, newUsers
}

// campaignContribution sums the surviving campaign cohorts at one day.
// Cohorts persist after the campaign ends: acquisition stops at endDay but
// the already-acquired users keep decaying along the curve. Campaign cohorts
// follow the base new-user curve; retention uplift on them is never counted
// into the acquisition bucket.
func (s *Simulator) campaignContribution(in Inputs, day int) float64 {
	plan := in.Acquisition
	if plan.WeeklyInstalls <= 0 || plan.DurationWeeks <= 0 {
		return 0
	}

	startDay := plan.LeadWeeks * 7
	endDay := startDay + plan.DurationWeeks*7
	targetDailyRate := plan.WeeklyInstalls / 7.0

	// Ramp never exceeds four weeks nor the campaign's own length.
	rampWeeks := plan.DurationWeeks
	if rampWeeks > 4 {
		rampWeeks = 4
	}
	rampDays := float64(rampWeeks * 7)

	lastAcquisition := endDay
	if day < lastAcquisition {
		lastAcquisition = day
	}

	total := 0.0
	for cohortDay := startDay; cohortDay < lastAcquisition; cohortDay++ {
		volume := targetDailyRate
		if s.opts.Ramp {
			ramp := float64(cohortDay-startDay) / rampDays
			if ramp < 1 {
				volume *= ramp
			}
		}
		total += volume * in.Curves.BaseNew.Evaluate(day-cohortDay)
	}
	return total
}

// summarize folds the monthly series into the headline statistics. Peaks use
// strict greater-than so the first month reaching the maximum wins ties; each
// monthly snapshot is projected across 30 days for the DAU-days totals.
func (s *Simulator) summarize(baseline, incremental []float64, breakdown []components) forecast.Summary {
	var sum forecast.Summary
	for m := range incremental {
		if incremental[m] > sum.PeakIncremental {
			sum.PeakIncremental = incremental[m]
			sum.PeakMonth = m
			if baseline[m] > 0 {
				sum.PeakLiftPercent = incremental[m] / baseline[m] * 100.0
			} else {
				sum.PeakLiftPercent = 0
			}
		}
		days := float64(forecast.DaysPerMonth)
		sum.TotalImpact += incremental[m] * days
		sum.Breakdown.ExistingUsers += breakdown[m].existingUplift * days
		sum.Breakdown.NewUsers += breakdown[m].newUplift * days
		sum.Breakdown.NewAcquisition += breakdown[m].acquisition * days
	}
	return sum
}
