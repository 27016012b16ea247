// Package civil centralizes the fixed UTC+7 civil-time arithmetic used by the
// attendance rules. Interns and admins operate in a single timezone (WIB), so
// every day boundary and clock comparison goes through this package instead of
// being re-derived from server-local time at each call site.
package civil

import (
	"fmt"
	"time"
)

// WIB is Waktu Indonesia Barat, fixed UTC+7 with no DST.
var WIB = time.FixedZone("WIB", 7*60*60)

// In converts an instant to WIB civil time.
func In(t time.Time) time.Time {
	return t.In(WIB)
}

// DayStart returns midnight WIB of the civil day containing t.
// Attendance rows are keyed on this value.
func DayStart(t time.Time) time.Time {
	local := t.In(WIB)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, WIB)
}

// Clock formats the civil time-of-day of t as "HH:mm" (24-hour, zero-padded),
// the literal format attendance rows persist.
func Clock(t time.Time) string {
	return t.In(WIB).Format("15:04")
}

// MinuteOfDay parses an "HH:mm" clock string into minutes since midnight.
func MinuteOfDay(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// After reports whether clock a is strictly later than clock b.
// Both must be valid "HH:mm" strings; invalid input compares as not-after.
func After(a, b string) bool {
	am, err := MinuteOfDay(a)
	if err != nil {
		return false
	}
	bm, err := MinuteOfDay(b)
	if err != nil {
		return false
	}
	return am > bm
}
