package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Mondays through Fridays in March 2025, expressed as UTC instants whose WIB
// civil date is the named weekday.
func wibInstant(year int, month time.Month, day, hour, minute int) time.Time {
	wib := time.FixedZone("WIB", 7*60*60)
	return time.Date(year, month, day, hour, minute, 0, 0, wib)
}

func TestResolveWindow_DefaultsWhenNoPolicy(t *testing.T) {
	// Scenario D: config collaborator returns no policy record.
	resolved := ResolveWindow(nil, wibInstant(2025, 3, 10, 7, 0)) // Monday

	assert.Equal(t, "06:00", resolved.WindowOpen)
	assert.Equal(t, "07:30", resolved.LateCutoff)
	assert.True(t, resolved.IsOperatingDay)
}

func TestResolveWindow_UsesConfiguredWindow(t *testing.T) {
	p := &OperatingPolicy{
		WindowOpen: "05:30",
		LateCutoff: "08:00",
	}

	resolved := ResolveWindow(p, wibInstant(2025, 3, 11, 7, 0)) // Tuesday

	assert.Equal(t, "05:30", resolved.WindowOpen)
	assert.Equal(t, "08:00", resolved.LateCutoff)
	assert.True(t, resolved.IsOperatingDay)
}

func TestResolveWindow_MalformedClocksDegradeToDefaults(t *testing.T) {
	p := &OperatingPolicy{
		WindowOpen: "late-ish",
		LateCutoff: "25:99",
	}

	resolved := ResolveWindow(p, wibInstant(2025, 3, 12, 7, 0)) // Wednesday

	assert.Equal(t, DefaultWindowOpen, resolved.WindowOpen)
	assert.Equal(t, DefaultLateCutoff, resolved.LateCutoff)
}

func TestResolveWindow_WeekdayGroups(t *testing.T) {
	tests := []struct {
		name      string
		day       int // March 2025: 10=Mon ... 16=Sun
		operating bool
	}{
		{"monday", 10, true},
		{"thursday", 13, true},
		{"friday", 14, true},
		{"saturday", 15, false},
		{"sunday", 16, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved := ResolveWindow(nil, wibInstant(2025, 3, tt.day, 9, 0))
			assert.Equal(t, tt.operating, resolved.IsOperatingDay)
		})
	}
}

func TestResolveWindow_WeekdayDeterminedInCivilTime(t *testing.T) {
	// 2025-03-15 17:30 UTC (Saturday) is already Sunday 00:30 in WIB.
	instant := time.Date(2025, 3, 15, 17, 30, 0, 0, time.UTC)
	resolved := ResolveWindow(nil, instant)
	assert.False(t, resolved.IsOperatingDay)

	// 2025-03-16 17:30 UTC (Sunday) is already Monday 00:30 in WIB.
	instant = time.Date(2025, 3, 16, 17, 30, 0, 0, time.UTC)
	resolved = ResolveWindow(nil, instant)
	assert.True(t, resolved.IsOperatingDay)
}
