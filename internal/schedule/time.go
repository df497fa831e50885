package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Itinerary times are plain "HH:MM" 24-hour wall-clock strings with no date
// component. A tour that runs past midnight silently wraps back to 00:00 -
// no elapsed-day counter is tracked.

const minutesPerDay = 24 * 60

// Lunch window bounds in minutes since midnight, inclusive on both ends
const (
	lunchWindowStart = 12 * 60     // 12:00
	lunchWindowEnd   = 13*60 + 30  // 13:30
)

// clockToMinutes parses an "HH:MM" value into minutes since midnight.
// Malformed input coerces to 0 (midnight) instead of failing - upstream
// validation is expected to keep time fields well-formed.
func clockToMinutes(t string) int {
	parts := strings.SplitN(t, ":", 2)
	if len(parts) != 2 {
		return 0
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0
	}
	mins, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}

	return hours*60 + mins
}

// minutesToClock formats minutes since midnight as "HH:MM", wrapping at 24h
func minutesToClock(m int) string {
	m = m % minutesPerDay
	if m < 0 {
		m += minutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutes adds a minute offset to an "HH:MM" wall-clock value, wrapping
// silently at midnight (AddMinutes("23:30", 90) == "01:00")
func AddMinutes(t string, minutes int) string {
	return minutesToClock(clockToMinutes(t) + minutes)
}

// MinutesBetween returns end minus start in whole minutes, clamped at zero.
// An end time numerically before the start yields 0 - never a negative
// duration and never a day-aware wraparound value.
func MinutesBetween(start, end string) int {
	diff := clockToMinutes(end) - clockToMinutes(start)
	if diff < 0 {
		return 0
	}
	return diff
}

// IsLunchWindow reports whether an arrival time falls inside the 12:00-13:30
// lunch window (inclusive). Used as a heuristic for default-duration padding,
// never as a hard constraint.
func IsLunchWindow(arrival string) bool {
	m := clockToMinutes(arrival)
	return m >= lunchWindowStart && m <= lunchWindowEnd
}
