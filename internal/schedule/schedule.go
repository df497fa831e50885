package schedule

import "context"

// Default per-stop values applied at insertion time
const (
	DefaultVisitMinutes = 75 // standard tasting visit
	DefaultDriveMinutes = 15 // placeholder until a real estimate is fetched
	LunchVisitMinutes   = 90 // floor for stops flagged (or landing) in the lunch window
	MinVisitMinutes     = 15 // duration nudges never go below this
)

// Stop is one scheduled winery visit in an itinerary. ArrivalTime and
// DepartureTime are derived values - hand-authored only via a direct
// time-field edit. DriveTimeToNextMinutes is ignored for the last stop.
//
// Cascade records whether an edit at this stop re-derives every downstream
// stop's times. It lives on the stop itself so the preference travels with
// the stop through removals and reorders. Defaults to true.
type Stop struct {
	WineryID               string
	Order                  int // 1-based, contiguous, matches slice index + 1
	ArrivalTime            string
	DepartureTime          string
	DurationMinutes        int
	DriveTimeToNextMinutes int
	IsLunchStop            bool
	ReservationConfirmed   bool
	SpecialNotes           string
	Cascade                bool
}

// TravelTimeEstimator is the engine's only external dependency: an opaque
// service returning an estimated drive time in minutes between two addresses.
// Implemented elsewhere as an HTTP call to a distance API; the engine
// tolerates failure (see RefreshDriveTime).
type TravelTimeEstimator interface {
	EstimateTravelTime(ctx context.Context, origin, destination string) (int, error)
}

// Recompute walks the stop list in order with a running clock starting at
// pickupTime: each stop's arrival is the clock, departure is arrival plus its
// duration, and the clock then advances by the drive time to the next stop.
//
// This is unconditional - it re-derives every stop's times from scratch and
// is the single source of truth for the fully-cascaded schedule. Selective
// (non-cascading) behavior is the mutation operators' job: they choose per
// edit whether to route through Recompute or apply a local-only patch.
//
// The input slice is never mutated; callers can diff old vs new state.
func Recompute(stops []Stop, pickupTime string) []Stop {
	out := cloneStops(stops)

	clock := pickupTime
	for i := range out {
		out[i].ArrivalTime = clock
		out[i].DepartureTime = AddMinutes(clock, out[i].DurationMinutes)
		clock = AddMinutes(out[i].DepartureTime, out[i].DriveTimeToNextMinutes)
	}

	return out
}

func cloneStops(stops []Stop) []Stop {
	out := make([]Stop, len(stops))
	copy(out, stops)
	return out
}

func renumber(stops []Stop) {
	for i := range stops {
		stops[i].Order = i + 1
	}
}
