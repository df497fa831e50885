package schedule

import "testing"

// three-stop itinerary used across tests: durations 75/90/60, drives 15/20
func sampleStops() []Stop {
	return []Stop{
		{WineryID: "a", Order: 1, DurationMinutes: 75, DriveTimeToNextMinutes: 15, Cascade: true},
		{WineryID: "b", Order: 2, DurationMinutes: 90, DriveTimeToNextMinutes: 20, Cascade: true},
		{WineryID: "c", Order: 3, DurationMinutes: 60, DriveTimeToNextMinutes: 0, Cascade: true},
	}
}

// checkChain verifies the full-cascade invariants: every departure equals
// arrival plus duration, and every successor's arrival equals the
// predecessor's departure plus drive time.
func checkChain(t *testing.T, stops []Stop) {
	t.Helper()
	for i, s := range stops {
		if want := AddMinutes(s.ArrivalTime, s.DurationMinutes); s.DepartureTime != want {
			t.Errorf("stop %d: departure = %q, want %q", i, s.DepartureTime, want)
		}
		if i < len(stops)-1 {
			next := stops[i+1]
			if want := AddMinutes(s.DepartureTime, s.DriveTimeToNextMinutes); next.ArrivalTime != want {
				t.Errorf("stop %d: next arrival = %q, want %q", i+1, next.ArrivalTime, want)
			}
		}
	}
}

func TestRecomputeEndToEnd(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	want := []struct{ arrive, depart string }{
		{"10:00", "11:15"},
		{"11:30", "13:00"},
		{"13:20", "14:20"},
	}
	for i, w := range want {
		if stops[i].ArrivalTime != w.arrive {
			t.Errorf("stop %d arrival = %q, want %q", i, stops[i].ArrivalTime, w.arrive)
		}
		if stops[i].DepartureTime != w.depart {
			t.Errorf("stop %d departure = %q, want %q", i, stops[i].DepartureTime, w.depart)
		}
	}

	checkChain(t, stops)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	once := Recompute(sampleStops(), "10:00")
	twice := Recompute(once, "10:00")

	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("stop %d changed on second recompute: %+v vs %+v", i, once[i], twice[i])
		}
	}
}

func TestRecomputeDoesNotMutateInput(t *testing.T) {
	in := sampleStops()
	_ = Recompute(in, "10:00")

	for i, s := range in {
		if s.ArrivalTime != "" || s.DepartureTime != "" {
			t.Fatalf("input stop %d was mutated: %+v", i, s)
		}
	}
}

func TestRecomputeEmptyList(t *testing.T) {
	out := Recompute(nil, "10:00")
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %d stops", len(out))
	}
}

func TestRecomputePastMidnightWraps(t *testing.T) {
	stops := []Stop{
		{WineryID: "a", Order: 1, DurationMinutes: 120, DriveTimeToNextMinutes: 30, Cascade: true},
		{WineryID: "b", Order: 2, DurationMinutes: 90, Cascade: true},
	}

	out := Recompute(stops, "22:00")

	if out[1].ArrivalTime != "00:30" {
		t.Errorf("stop 2 arrival = %q, want 00:30", out[1].ArrivalTime)
	}
	if out[1].DepartureTime != "02:00" {
		t.Errorf("stop 2 departure = %q, want 02:00", out[1].DepartureTime)
	}
}
