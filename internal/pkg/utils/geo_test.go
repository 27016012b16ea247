package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Zero(t, HaversineDistance(-6.2, 106.8, -6.2, 106.8))
	})

	t.Run("known city pair", func(t *testing.T) {
		// Jakarta to Bandung, roughly 117 km
		d := HaversineDistance(-6.2088, 106.8456, -6.9175, 107.6191)
		assert.InDelta(t, 117000, d, 3000)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := HaversineDistance(-6.2, 106.8, -6.3, 106.9)
		b := HaversineDistance(-6.3, 106.9, -6.2, 106.8)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestWithinRadius(t *testing.T) {
	office := struct{ lat, lon float64 }{-6.2, 106.8}

	t.Run("same point is inside", func(t *testing.T) {
		assert.True(t, WithinRadius(office.lat, office.lon, office.lat, office.lon, 100))
	})

	t.Run("about 111 meters north is outside a 100m fence", func(t *testing.T) {
		// 0.001 degrees of latitude is roughly 111 meters
		assert.False(t, WithinRadius(office.lat+0.001, office.lon, office.lat, office.lon, 100))
	})

	t.Run("same offset is inside a 150m fence", func(t *testing.T) {
		assert.True(t, WithinRadius(office.lat+0.001, office.lon, office.lat, office.lon, 150))
	})
}
