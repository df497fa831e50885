package schedule

import (
	"context"
	"fmt"
)

// finishEdit applies the selective cascade policy after a local change at
// index: a cascading stop routes the whole list through Recompute (stops
// before index come out unchanged - state only flows forward), while a
// non-cascading stop gets only its own departure refreshed. The latter
// intentionally lets the schedule drift internally inconsistent; that is the
// user-controlled "freeze my neighbors" escape hatch, not a bug.
func finishEdit(stops []Stop, index int, pickupTime string) []Stop {
	if stops[index].Cascade {
		return Recompute(stops, pickupTime)
	}
	stops[index].DepartureTime = AddMinutes(stops[index].ArrivalTime, stops[index].DurationMinutes)
	return stops
}

// SetArrivalTime applies a direct arrival-time edit. Duration is re-derived
// as MinutesBetween(newArrival, existingDeparture) before the cascade
// decision, so duration stays consistent with the two explicit endpoints the
// user just set.
func SetArrivalTime(stops []Stop, index int, arrival, pickupTime string) []Stop {
	out := cloneStops(stops)
	out[index].DurationMinutes = MinutesBetween(arrival, out[index].DepartureTime)
	out[index].ArrivalTime = arrival
	return finishEdit(out, index, pickupTime)
}

// SetDepartureTime applies a direct departure-time edit, re-deriving duration
// from the stop's current arrival.
func SetDepartureTime(stops []Stop, index int, departure, pickupTime string) []Stop {
	out := cloneStops(stops)
	out[index].DurationMinutes = MinutesBetween(out[index].ArrivalTime, departure)
	out[index].DepartureTime = departure
	return finishEdit(out, index, pickupTime)
}

// SetDuration nudges a stop's visit duration, clamped to MinVisitMinutes.
func SetDuration(stops []Stop, index, minutes int, pickupTime string) []Stop {
	if minutes < MinVisitMinutes {
		minutes = MinVisitMinutes
	}
	out := cloneStops(stops)
	out[index].DurationMinutes = minutes
	return finishEdit(out, index, pickupTime)
}

// SetDriveTime sets the drive time from a stop to its successor, clamped at
// zero.
func SetDriveTime(stops []Stop, index, minutes int, pickupTime string) []Stop {
	if minutes < 0 {
		minutes = 0
	}
	out := cloneStops(stops)
	out[index].DriveTimeToNextMinutes = minutes
	return finishEdit(out, index, pickupTime)
}

// ToggleCascade flips a stop's cascade preference. No times change until the
// next edit at that stop.
func ToggleCascade(stops []Stop, index int) []Stop {
	out := cloneStops(stops)
	out[index].Cascade = !out[index].Cascade
	return out
}

// AddStop appends a new stop with default duration and drive time, recomputes
// the chain, then runs a one-time lunch-padding pass: every stop whose fresh
// arrival lands in the lunch window and whose duration is below the lunch
// floor is raised to the floor, followed by one more recompute. The pass runs
// once per insertion only - it is a convenience default the user may undo.
func AddStop(stops []Stop, wineryID, pickupTime string) []Stop {
	out := cloneStops(stops)
	out = append(out, Stop{
		WineryID:               wineryID,
		Order:                  len(out) + 1,
		DurationMinutes:        DefaultVisitMinutes,
		DriveTimeToNextMinutes: DefaultDriveMinutes,
		Cascade:                true,
	})
	out = Recompute(out, pickupTime)

	padded := false
	for i := range out {
		if IsLunchWindow(out[i].ArrivalTime) && out[i].DurationMinutes < LunchVisitMinutes {
			out[i].DurationMinutes = LunchVisitMinutes
			padded = true
		}
	}
	if padded {
		out = Recompute(out, pickupTime)
	}

	return out
}

// RemoveStop drops the stop at index, renumbers the remainder 1..n and
// recomputes. The removed stop's cascade preference leaves with it.
func RemoveStop(stops []Stop, index int, pickupTime string) []Stop {
	if index < 0 || index >= len(stops) {
		return cloneStops(stops)
	}
	out := make([]Stop, 0, len(stops)-1)
	out = append(out, stops[:index]...)
	out = append(out, stops[index+1:]...)
	renumber(out)
	return Recompute(out, pickupTime)
}

// ReorderStop moves the stop at fromIndex to toIndex (drag-and-drop),
// renumbers and recomputes unconditionally - reordering always cascades,
// there is no per-stop opt-out for this operation.
func ReorderStop(stops []Stop, fromIndex, toIndex int, pickupTime string) []Stop {
	if fromIndex < 0 || fromIndex >= len(stops) || toIndex < 0 || toIndex >= len(stops) {
		return cloneStops(stops)
	}
	out := cloneStops(stops)
	moved := out[fromIndex]
	out = append(out[:fromIndex], out[fromIndex+1:]...)
	out = append(out[:toIndex], append([]Stop{moved}, out[toIndex:]...)...)
	renumber(out)
	return Recompute(out, pickupTime)
}

// ToggleLunchStop toggles the lunch flag at index. Toggling off resets the
// duration to the non-lunch default. Toggling on clears the flag everywhere
// else (at most one lunch stop per itinerary) and bumps the duration to the
// lunch floor if it is lower. The edit then follows the normal cascade policy
// at that index.
func ToggleLunchStop(stops []Stop, index int, pickupTime string) []Stop {
	out := cloneStops(stops)

	if out[index].IsLunchStop {
		out[index].IsLunchStop = false
		out[index].DurationMinutes = DefaultVisitMinutes
	} else {
		for i := range out {
			out[i].IsLunchStop = false
		}
		out[index].IsLunchStop = true
		if out[index].DurationMinutes < LunchVisitMinutes {
			out[index].DurationMinutes = LunchVisitMinutes
		}
	}

	return finishEdit(out, index, pickupTime)
}

// RefreshDriveTime fetches a fresh drive-time estimate between two addresses
// and writes it into the stop at index. Estimator failure is non-fatal: the
// previous value is kept, the error surfaces to the caller, and the returned
// list is always valid and renderable.
func RefreshDriveTime(ctx context.Context, stops []Stop, index int, pickupTime string, estimator TravelTimeEstimator, origin, destination string) ([]Stop, error) {
	minutes, err := estimator.EstimateTravelTime(ctx, origin, destination)
	if err != nil {
		return cloneStops(stops), fmt.Errorf("refresh drive time: estimate %q -> %q: %w", origin, destination, err)
	}
	return SetDriveTime(stops, index, minutes, pickupTime), nil
}
