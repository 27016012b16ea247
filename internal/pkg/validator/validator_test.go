package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"intern@kampus.ac.id", true},
		{"a.b+c@example.com", true},
		{"missing-at.example.com", false},
		{"@nodomain", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidEmail(tt.email), tt.email)
	}
}

func TestIsValidClock(t *testing.T) {
	tests := []struct {
		clock string
		want  bool
	}{
		{"00:00", true},
		{"07:30", true},
		{"23:59", true},
		{"24:00", false},
		{"7:30", false},
		{"07:60", false},
		{"-", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsValidClock(tt.clock), tt.clock)
	}
}

func TestIsValidDate(t *testing.T) {
	_, ok := IsValidDate("2025-03-10")
	assert.True(t, ok)

	_, ok = IsValidDate("10-03-2025")
	assert.False(t, ok)

	_, ok = IsValidDate("2025-02-30")
	assert.False(t, ok)
}

func TestIsValidScore(t *testing.T) {
	assert.True(t, IsValidScore(0))
	assert.True(t, IsValidScore(100))
	assert.True(t, IsValidScore(87.5))
	assert.False(t, IsValidScore(-1))
	assert.False(t, IsValidScore(100.5))
}

func TestIsValidNIP(t *testing.T) {
	assert.True(t, IsValidNIP("199001012015031002"))
	assert.False(t, IsValidNIP("12345"))
	assert.False(t, IsValidNIP("19900101201503100x"))
}
