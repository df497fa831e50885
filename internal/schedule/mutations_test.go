package schedule

import (
	"context"
	"errors"
	"testing"
)

func TestSetDurationCascades(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	out := SetDuration(stops, 0, 105, "10:00")

	if out[0].DepartureTime != "11:45" {
		t.Fatalf("stop 1 departure = %q, want 11:45", out[0].DepartureTime)
	}
	if out[1].ArrivalTime != "12:00" {
		t.Fatalf("stop 2 arrival = %q, want 12:00", out[1].ArrivalTime)
	}
	checkChain(t, out)
}

func TestSetDurationNonCascadingIsLocal(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")
	stops[1].Cascade = false

	out := SetDuration(stops, 1, 120, "10:00")

	// only stop 2's departure moves; every other time field stays put
	if out[1].DepartureTime != "13:30" {
		t.Fatalf("stop 2 departure = %q, want 13:30", out[1].DepartureTime)
	}
	if out[1].ArrivalTime != stops[1].ArrivalTime {
		t.Fatalf("stop 2 arrival changed: %q", out[1].ArrivalTime)
	}
	for _, i := range []int{0, 2} {
		if out[i].ArrivalTime != stops[i].ArrivalTime || out[i].DepartureTime != stops[i].DepartureTime {
			t.Fatalf("stop %d times changed on a non-cascading edit: %+v", i+1, out[i])
		}
	}
}

func TestSetDurationClampsToFloor(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	out := SetDuration(stops, 0, -30, "10:00")

	if out[0].DurationMinutes != MinVisitMinutes {
		t.Fatalf("duration = %d, want clamp to %d", out[0].DurationMinutes, MinVisitMinutes)
	}
}

func TestSetArrivalTimeRederivesDuration(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")
	stops[0].Cascade = false

	// arrival 10:00 -> 10:30 against the existing 11:15 departure
	out := SetArrivalTime(stops, 0, "10:30", "10:00")

	if out[0].DurationMinutes != 45 {
		t.Fatalf("duration = %d, want 45", out[0].DurationMinutes)
	}
	if out[0].DepartureTime != "11:15" {
		t.Fatalf("departure = %q, want 11:15", out[0].DepartureTime)
	}
	if out[1].ArrivalTime != stops[1].ArrivalTime {
		t.Fatalf("downstream arrival moved on a non-cascading edit")
	}
}

func TestSetArrivalTimePastDepartureClampsDurationToZero(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")
	stops[0].Cascade = false

	out := SetArrivalTime(stops, 0, "12:00", "10:00")

	if out[0].DurationMinutes != 0 {
		t.Fatalf("duration = %d, want 0", out[0].DurationMinutes)
	}
	if out[0].DepartureTime != "12:00" {
		t.Fatalf("departure = %q, want 12:00", out[0].DepartureTime)
	}
}

func TestSetDepartureTimeRederivesDuration(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")
	stops[0].Cascade = false

	out := SetDepartureTime(stops, 0, "11:00", "10:00")

	if out[0].DurationMinutes != 60 {
		t.Fatalf("duration = %d, want 60", out[0].DurationMinutes)
	}
	if out[0].DepartureTime != "11:00" {
		t.Fatalf("departure = %q, want 11:00", out[0].DepartureTime)
	}
}

func TestSetDriveTimeCascades(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	out := SetDriveTime(stops, 0, 45, "10:00")

	if out[1].ArrivalTime != "12:00" {
		t.Fatalf("stop 2 arrival = %q, want 12:00", out[1].ArrivalTime)
	}
	checkChain(t, out)
}

func TestAddStopAppendsWithDefaults(t *testing.T) {
	out := AddStop(nil, "w1", "10:00")

	if len(out) != 1 {
		t.Fatalf("expected 1 stop, got %d", len(out))
	}
	s := out[0]
	if s.Order != 1 || s.DurationMinutes != DefaultVisitMinutes || s.DriveTimeToNextMinutes != DefaultDriveMinutes {
		t.Fatalf("unexpected defaults: %+v", s)
	}
	if !s.Cascade {
		t.Fatal("new stop should default to cascading")
	}
	if s.ArrivalTime != "10:00" || s.DepartureTime != "11:15" {
		t.Fatalf("times = %q/%q, want 10:00/11:15", s.ArrivalTime, s.DepartureTime)
	}
}

func TestAddStopPadsLunchWindowArrivals(t *testing.T) {
	// first stop departs 12:15, so the appended stop arrives 12:30 - inside
	// the lunch window with the default 75 minute visit
	stops := []Stop{
		{WineryID: "a", Order: 1, DurationMinutes: 75, DriveTimeToNextMinutes: 15, Cascade: true},
	}

	out := AddStop(stops, "b", "11:00")

	if out[1].ArrivalTime != "12:30" {
		t.Fatalf("stop 2 arrival = %q, want 12:30", out[1].ArrivalTime)
	}
	if out[1].DurationMinutes != LunchVisitMinutes {
		t.Fatalf("stop 2 duration = %d, want padded to %d", out[1].DurationMinutes, LunchVisitMinutes)
	}
	if out[1].DepartureTime != "14:00" {
		t.Fatalf("stop 2 departure = %q, want 14:00", out[1].DepartureTime)
	}
	// first stop arrives 11:00, outside the window - untouched
	if out[0].DurationMinutes != 75 {
		t.Fatalf("stop 1 duration = %d, want 75", out[0].DurationMinutes)
	}
	checkChain(t, out)
}

func TestRemoveStopRenumbers(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")
	stops[2].Cascade = false

	out := RemoveStop(stops, 1, "10:00")

	if len(out) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(out))
	}
	for i, s := range out {
		if s.Order != i+1 {
			t.Errorf("stop at index %d has order %d, want %d", i, s.Order, i+1)
		}
	}
	if out[0].WineryID != "a" || out[1].WineryID != "c" {
		t.Fatalf("wrong stops survived: %q, %q", out[0].WineryID, out[1].WineryID)
	}
	// the cascade preference travels with the stop, not with its old index
	if out[1].Cascade {
		t.Fatal("stop c lost its cascade=false preference on removal")
	}
	checkChain(t, out)
}

func TestReorderStopRenumbersAndAlwaysCascades(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")
	stops[0].Cascade = false // no opt-out for reorders

	out := ReorderStop(stops, 0, 2, "10:00")

	if out[0].WineryID != "b" || out[1].WineryID != "c" || out[2].WineryID != "a" {
		t.Fatalf("unexpected order: %q, %q, %q", out[0].WineryID, out[1].WineryID, out[2].WineryID)
	}
	for i, s := range out {
		if s.Order != i+1 {
			t.Errorf("stop at index %d has order %d, want %d", i, s.Order, i+1)
		}
	}
	if out[0].ArrivalTime != "10:00" {
		t.Fatalf("first stop arrival = %q, want 10:00", out[0].ArrivalTime)
	}
	checkChain(t, out)
}

func TestToggleLunchStopExclusivity(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	out := ToggleLunchStop(stops, 0, "10:00")
	out = ToggleLunchStop(out, 2, "10:00")
	out = ToggleLunchStop(out, 1, "10:00")

	lunchCount := 0
	for _, s := range out {
		if s.IsLunchStop {
			lunchCount++
		}
	}
	if lunchCount != 1 {
		t.Fatalf("lunch stops = %d, want exactly 1", lunchCount)
	}
	if !out[1].IsLunchStop {
		t.Fatal("expected stop 2 to hold the lunch flag")
	}
}

func TestToggleLunchStopBumpsAndResetsDuration(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	on := ToggleLunchStop(stops, 0, "10:00")
	if on[0].DurationMinutes != LunchVisitMinutes {
		t.Fatalf("duration = %d, want bumped to %d", on[0].DurationMinutes, LunchVisitMinutes)
	}

	off := ToggleLunchStop(on, 0, "10:00")
	if off[0].IsLunchStop {
		t.Fatal("lunch flag should be cleared")
	}
	if off[0].DurationMinutes != DefaultVisitMinutes {
		t.Fatalf("duration = %d, want reset to %d", off[0].DurationMinutes, DefaultVisitMinutes)
	}

	// an already-longer visit is not shortened when flagged
	long := Recompute(sampleStops(), "10:00")
	long[1].DurationMinutes = 120
	bumped := ToggleLunchStop(long, 1, "10:00")
	if bumped[1].DurationMinutes != 120 {
		t.Fatalf("duration = %d, want 120 kept", bumped[1].DurationMinutes)
	}
}

type stubEstimator struct {
	minutes int
	err     error
}

func (s stubEstimator) EstimateTravelTime(_ context.Context, _, _ string) (int, error) {
	return s.minutes, s.err
}

func TestRefreshDriveTimeAppliesEstimate(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	out, err := RefreshDriveTime(context.Background(), stops, 0, "10:00", stubEstimator{minutes: 25}, "A", "B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].DriveTimeToNextMinutes != 25 {
		t.Fatalf("drive time = %d, want 25", out[0].DriveTimeToNextMinutes)
	}
	if out[1].ArrivalTime != "11:40" {
		t.Fatalf("stop 2 arrival = %q, want 11:40", out[1].ArrivalTime)
	}
}

func TestRefreshDriveTimeKeepsOldValueOnFailure(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	out, err := RefreshDriveTime(context.Background(), stops, 0, "10:00", stubEstimator{err: errors.New("network down")}, "A", "B")
	if err == nil {
		t.Fatal("expected error to surface")
	}
	if out[0].DriveTimeToNextMinutes != 15 {
		t.Fatalf("drive time = %d, want previous value 15", out[0].DriveTimeToNextMinutes)
	}
	for i := range out {
		if out[i] != stops[i] {
			t.Fatalf("stop %d changed after estimator failure: %+v", i, out[i])
		}
	}
}
