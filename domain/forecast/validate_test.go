package forecast

import (
	"errors"
	"testing"

	"growthcast/domain/core"
)

func validBaseline() BaselineDataset {
	return BaselineDataset{
		CurrentDAU: map[SliceKey]float64{
			NewSliceKey("core", "ios"):     100_000,
			NewSliceKey("core", "android"): 200_000,
		},
		WeeklyAcquisitions: map[SliceKey]float64{
			NewSliceKey("core", "ios"):     7_000,
			NewSliceKey("core", "android"): 14_000,
		},
		RetentionCurves: RetentionCurves{
			New:      RetentionSeries{1: 60, 7: 35, 14: 27, 28: 21, 360: 9, 720: 6},
			Existing: RetentionSeries{1: 95, 7: 88, 14: 84, 28: 80, 360: 60, 720: 52},
		},
	}
}

func TestValidate_AcceptsWellFormedRequest(t *testing.T) {
	req := SimulationRequest{
		Initiative:   InitiativeNone,
		ExposureRate: 50,
		Baseline:     validBaseline(),
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("Expected valid request, got error: %v", err)
	}
}

func TestValidate_MissingDayOffset(t *testing.T) {
	baseline := validBaseline()
	delete(baseline.RetentionCurves.New, 360)

	req := SimulationRequest{Initiative: InitiativeNone, Baseline: baseline}
	err := req.Validate()
	if !errors.Is(err, core.ErrMissingDayOffset) {
		t.Fatalf("Expected ErrMissingDayOffset, got %v", err)
	}
}

func TestValidate_UnknownFilterSlice(t *testing.T) {
	req := SimulationRequest{
		Initiative:    InitiativeNone,
		SegmentFilter: []string{"enterprise"},
		Baseline:      validBaseline(),
	}
	err := req.Validate()
	if !errors.Is(err, core.ErrUnknownSlice) {
		t.Fatalf("Expected ErrUnknownSlice, got %v", err)
	}
}

func TestValidate_ExposureOutOfRange(t *testing.T) {
	req := SimulationRequest{
		Initiative:   InitiativeNone,
		ExposureRate: 150,
		Baseline:     validBaseline(),
	}
	err := req.Validate()
	if !errors.Is(err, core.ErrExposureOutOfRange) {
		t.Fatalf("Expected ErrExposureOutOfRange, got %v", err)
	}
}

func TestValidate_UnknownInitiative(t *testing.T) {
	req := SimulationRequest{Initiative: "turbo", Baseline: validBaseline()}
	err := req.Validate()
	if !errors.Is(err, core.ErrUnknownInitiative) {
		t.Fatalf("Expected ErrUnknownInitiative, got %v", err)
	}
}

func TestValidate_NegativeCount(t *testing.T) {
	baseline := validBaseline()
	baseline.CurrentDAU[NewSliceKey("core", "ios")] = -5

	req := SimulationRequest{Initiative: InitiativeNone, Baseline: baseline}
	err := req.Validate()
	if !errors.Is(err, core.ErrNegativeCount) {
		t.Fatalf("Expected ErrNegativeCount, got %v", err)
	}
}

func TestPoints_ClampsPercentages(t *testing.T) {
	s := RetentionSeries{1: 120, 7: -10, 14: 27, 28: 21, 360: 9, 720: 6}
	for _, p := range s.Points() {
		if p.Retention < 0 || p.Retention > 1 {
			t.Errorf("Point %+v outside [0,1] after clamping", p)
		}
	}
}

func TestShifted_ClampsGains(t *testing.T) {
	s := RetentionSeries{1: 98, 7: 35, 14: 27, 28: 21, 360: 9, 720: 1}
	out := s.Shifted(map[int]float64{1: 10, 720: -5})
	if out[1] != 100 {
		t.Errorf("Gain above 100 must clamp, got %f", out[1])
	}
	if out[720] != 0 {
		t.Errorf("Negative shift below 0 must clamp, got %f", out[720])
	}
	if out[7] != 35 {
		t.Errorf("Offsets without gains must pass through, got %f", out[7])
	}
}

func TestSliceKey_Parts(t *testing.T) {
	k := NewSliceKey("core", "ios")
	if k.Segment() != "core" || k.Platform() != "ios" {
		t.Errorf("Unexpected parts: %q / %q", k.Segment(), k.Platform())
	}
}
