package civil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayStart_NormalizesAcrossTimezones(t *testing.T) {
	// 2025-03-10 23:30 UTC is already 2025-03-11 06:30 in WIB.
	instant := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC)

	start := DayStart(instant)

	assert.Equal(t, 2025, start.Year())
	assert.Equal(t, time.March, start.Month())
	assert.Equal(t, 11, start.Day())
	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, "WIB", start.Location().String())
}

func TestClock_FormatsZeroPadded(t *testing.T) {
	// 00:05 UTC = 07:05 WIB
	instant := time.Date(2025, 3, 10, 0, 5, 0, 0, time.UTC)
	assert.Equal(t, "07:05", Clock(instant))
}

func TestMinuteOfDay(t *testing.T) {
	tests := []struct {
		clock   string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:30", 450, false},
		{"23:59", 1439, false},
		{"7:30", 0, true},
		{"24:00", 0, true},
		{"-", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := MinuteOfDay(tt.clock)
		if tt.wantErr {
			assert.Error(t, err, tt.clock)
			continue
		}
		require.NoError(t, err, tt.clock)
		assert.Equal(t, tt.want, got, tt.clock)
	}
}

func TestAfter_StrictComparison(t *testing.T) {
	assert.False(t, After("07:30", "07:30"), "equal clocks are not after")
	assert.True(t, After("07:31", "07:30"))
	assert.False(t, After("07:29", "07:30"))
	assert.False(t, After("-", "07:30"), "sentinel never compares after")
}
