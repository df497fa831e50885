package schedule

import "fmt"

// CommandKind tags a stop edit. The legal operation set is closed: anything
// the editing UI can do to a single stop's fields maps onto one of these.
type CommandKind string

const (
	CmdSetArrival    CommandKind = "set_arrival"
	CmdSetDeparture  CommandKind = "set_departure"
	CmdSetDuration   CommandKind = "set_duration"
	CmdSetDriveTime  CommandKind = "set_drive_time"
	CmdToggleLunch   CommandKind = "toggle_lunch"
	CmdToggleCascade CommandKind = "toggle_cascade"
)

// Command is a single per-stop edit. Time carries the payload for the
// set_arrival/set_departure kinds, Minutes for set_duration/set_drive_time;
// the toggle kinds need only the index.
type Command struct {
	Kind    CommandKind `json:"kind"`
	Index   int         `json:"index"`
	Time    string      `json:"time,omitempty"`
	Minutes int         `json:"minutes,omitempty"`
}

// Apply dispatches a command through the corresponding mutation operator.
// Centralizing the dispatch keeps the cascade-policy branch exhaustive and
// testable without any HTTP plumbing in the way.
func Apply(stops []Stop, pickupTime string, cmd Command) ([]Stop, error) {
	if cmd.Index < 0 || cmd.Index >= len(stops) {
		return nil, fmt.Errorf("apply %s: stop index %d out of range (have %d stops)", cmd.Kind, cmd.Index, len(stops))
	}

	switch cmd.Kind {
	case CmdSetArrival:
		return SetArrivalTime(stops, cmd.Index, cmd.Time, pickupTime), nil
	case CmdSetDeparture:
		return SetDepartureTime(stops, cmd.Index, cmd.Time, pickupTime), nil
	case CmdSetDuration:
		return SetDuration(stops, cmd.Index, cmd.Minutes, pickupTime), nil
	case CmdSetDriveTime:
		return SetDriveTime(stops, cmd.Index, cmd.Minutes, pickupTime), nil
	case CmdToggleLunch:
		return ToggleLunchStop(stops, cmd.Index, pickupTime), nil
	case CmdToggleCascade:
		return ToggleCascade(stops, cmd.Index), nil
	default:
		return nil, fmt.Errorf("apply: unknown command kind %q", cmd.Kind)
	}
}
