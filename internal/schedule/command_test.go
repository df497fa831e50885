package schedule

import "testing"

func TestApplyDispatchesEachKind(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	cases := []struct {
		name  string
		cmd   Command
		check func(t *testing.T, out []Stop)
	}{
		{
			name: "set_arrival",
			cmd:  Command{Kind: CmdSetArrival, Index: 0, Time: "10:15"},
			check: func(t *testing.T, out []Stop) {
				// cascading stop: the full recompute wins, chain stays consistent
				checkChain(t, out)
			},
		},
		{
			name: "set_duration",
			cmd:  Command{Kind: CmdSetDuration, Index: 1, Minutes: 60},
			check: func(t *testing.T, out []Stop) {
				if out[1].DurationMinutes != 60 {
					t.Fatalf("duration = %d, want 60", out[1].DurationMinutes)
				}
				checkChain(t, out)
			},
		},
		{
			name: "set_drive_time",
			cmd:  Command{Kind: CmdSetDriveTime, Index: 0, Minutes: 30},
			check: func(t *testing.T, out []Stop) {
				if out[0].DriveTimeToNextMinutes != 30 {
					t.Fatalf("drive time = %d, want 30", out[0].DriveTimeToNextMinutes)
				}
			},
		},
		{
			name: "toggle_lunch",
			cmd:  Command{Kind: CmdToggleLunch, Index: 2},
			check: func(t *testing.T, out []Stop) {
				if !out[2].IsLunchStop {
					t.Fatal("lunch flag not set")
				}
			},
		},
		{
			name: "toggle_cascade",
			cmd:  Command{Kind: CmdToggleCascade, Index: 1},
			check: func(t *testing.T, out []Stop) {
				if out[1].Cascade {
					t.Fatal("cascade flag not flipped")
				}
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := Apply(stops, "10:00", c.cmd)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			c.check(t, out)
		})
	}
}

func TestApplyRejectsBadIndex(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	if _, err := Apply(stops, "10:00", Command{Kind: CmdSetDuration, Index: 5, Minutes: 60}); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if _, err := Apply(stops, "10:00", Command{Kind: CmdSetDuration, Index: -1, Minutes: 60}); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestApplyRejectsUnknownKind(t *testing.T) {
	stops := Recompute(sampleStops(), "10:00")

	if _, err := Apply(stops, "10:00", Command{Kind: "set_weather", Index: 0}); err == nil {
		t.Fatal("expected unknown-kind error")
	}
}
