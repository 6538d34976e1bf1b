package forecast

import (
	"fmt"

	"growthcast/domain/core"
)

// Validate checks the request and its baseline before any simulation work
// begins. Degenerate numeric inputs (all-zero series, zero population) are
// deliberately not errors; only structural problems are.
func (r SimulationRequest) Validate() error {
	switch r.Initiative {
	case InitiativeNone, InitiativeAcquisition, InitiativeRetention, InitiativeCombined:
	default:
		return fmt.Errorf("%w: %q", core.ErrUnknownInitiative, r.Initiative)
	}

	if r.ExposureRate < 0 || r.ExposureRate > 100 {
		return fmt.Errorf("%w: got %v", core.ErrExposureOutOfRange, r.ExposureRate)
	}

	if r.Initiative == InitiativeRetention || r.Initiative == InitiativeCombined {
		switch r.Retention.TargetCohort {
		case TargetNew, TargetExisting, TargetAll:
		default:
			return core.NewValidationError("retention.target_cohort",
				fmt.Sprintf("unknown cohort %q", r.Retention.TargetCohort))
		}
		if r.Retention.MonthsToStart < 0 {
			return core.NewValidationError("retention.months_to_start", "must be non-negative")
		}
	}

	if r.Initiative == InitiativeAcquisition || r.Initiative == InitiativeCombined {
		if r.Acquisition.WeeklyInstalls < 0 {
			return core.NewValidationError("acquisition.weekly_installs", "must be non-negative")
		}
		if r.Acquisition.LeadWeeks < 0 || r.Acquisition.DurationWeeks < 0 {
			return core.NewValidationError("acquisition", "lead_weeks and duration_weeks must be non-negative")
		}
	}

	if err := r.Baseline.Validate(); err != nil {
		return err
	}

	return r.validateFilters()
}

// Validate checks the structural invariants of a baseline dataset: every
// retention series carries all six required day offsets and no user count is
// negative.
func (b BaselineDataset) Validate() error {
	if err := validateSeries("retention_curves.existing", b.RetentionCurves.Existing); err != nil {
		return err
	}
	if err := validateSeries("retention_curves.new", b.RetentionCurves.New); err != nil {
		return err
	}
	for key, v := range b.CurrentDAU {
		if v < 0 {
			return fmt.Errorf("%w: current_dau[%s] = %v", core.ErrNegativeCount, key, v)
		}
	}
	for key, v := range b.WeeklyAcquisitions {
		if v < 0 {
			return fmt.Errorf("%w: weekly_acquisitions[%s] = %v", core.ErrNegativeCount, key, v)
		}
	}
	return nil
}

func validateSeries(field string, s RetentionSeries) error {
	for _, day := range RetentionDays {
		if _, ok := s[day]; !ok {
			return fmt.Errorf("%w: %s lacks day %d", core.ErrMissingDayOffset, field, day)
		}
	}
	// The required offsets are strictly increasing by construction; extra
	// offsets are tolerated but ignored downstream.
	return nil
}

// validateFilters ensures every filter value references at least one slice
// present in the baseline, so a typo surfaces before the loop instead of
// silently forecasting an empty population.
func (r SimulationRequest) validateFilters() error {
	for _, seg := range r.SegmentFilter {
		if !r.baselineHas(func(k SliceKey) bool { return k.Segment() == seg }) {
			return fmt.Errorf("%w: segment %q", core.ErrUnknownSlice, seg)
		}
	}
	for _, plat := range r.PlatformFilter {
		if !r.baselineHas(func(k SliceKey) bool { return k.Platform() == plat }) {
			return fmt.Errorf("%w: platform %q", core.ErrUnknownSlice, plat)
		}
	}
	return nil
}

func (r SimulationRequest) baselineHas(match func(SliceKey) bool) bool {
	for k := range r.Baseline.CurrentDAU {
		if match(k) {
			return true
		}
	}
	for k := range r.Baseline.WeeklyAcquisitions {
		if match(k) {
			return true
		}
	}
	return false
}

// MatchesFilters reports whether a slice passes the request's inclusion
// filters. Empty filters include everything.
func (r SimulationRequest) MatchesFilters(k SliceKey) bool {
	if len(r.SegmentFilter) > 0 && !contains(r.SegmentFilter, k.Segment()) {
		return false
	}
	if len(r.PlatformFilter) > 0 && !contains(r.PlatformFilter, k.Platform()) {
		return false
	}
	return true
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
