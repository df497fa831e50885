package schedule

import "testing"

func TestAddMinutesWrapsAtMidnight(t *testing.T) {
	got := AddMinutes("23:30", 90)
	if got != "01:00" {
		t.Fatalf("AddMinutes(23:30, 90) = %q, want 01:00", got)
	}
}

func TestAddMinutes(t *testing.T) {
	cases := []struct {
		start   string
		minutes int
		want    string
	}{
		{"10:00", 75, "11:15"},
		{"11:15", 15, "11:30"},
		{"00:00", 0, "00:00"},
		{"12:45", 1440, "12:45"},
		{"00:30", -45, "23:45"},
	}

	for _, c := range cases {
		if got := AddMinutes(c.start, c.minutes); got != c.want {
			t.Errorf("AddMinutes(%q, %d) = %q, want %q", c.start, c.minutes, got, c.want)
		}
	}
}

func TestMinutesBetweenClampsNegative(t *testing.T) {
	if got := MinutesBetween("14:00", "13:00"); got != 0 {
		t.Fatalf("MinutesBetween(14:00, 13:00) = %d, want 0", got)
	}
}

func TestMinutesBetween(t *testing.T) {
	cases := []struct {
		start string
		end   string
		want  int
	}{
		{"10:00", "11:15", 75},
		{"10:00", "10:00", 0},
		{"23:00", "00:30", 0}, // clamp, not day-aware wraparound
	}

	for _, c := range cases {
		if got := MinutesBetween(c.start, c.end); got != c.want {
			t.Errorf("MinutesBetween(%q, %q) = %d, want %d", c.start, c.end, got, c.want)
		}
	}
}

func TestIsLunchWindowInclusiveBounds(t *testing.T) {
	cases := []struct {
		arrival string
		want    bool
	}{
		{"11:59", false},
		{"12:00", true},
		{"12:45", true},
		{"13:30", true},
		{"13:31", false},
	}

	for _, c := range cases {
		if got := IsLunchWindow(c.arrival); got != c.want {
			t.Errorf("IsLunchWindow(%q) = %v, want %v", c.arrival, got, c.want)
		}
	}
}

func TestMalformedTimeCoercesToMidnight(t *testing.T) {
	if got := AddMinutes("not-a-time", 30); got != "00:30" {
		t.Fatalf("AddMinutes on malformed input = %q, want 00:30", got)
	}
}
