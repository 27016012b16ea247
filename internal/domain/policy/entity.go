package policy

import "time"

// Fallback window used whenever no policy row is readable. Late-policy
// unavailability must never block a check-in.
const (
	DefaultWindowOpen = "06:00"
	DefaultLateCutoff = "07:30"
)

// OperatingPolicy is the global singleton configuring operating hours and the
// office geofence. Latest value wins; there is no history.
type OperatingPolicy struct {
	ID string

	// Operating hours per weekday group
	WeekdayOpen  string // Mon-Thu, "HH:mm"
	WeekdayClose string
	FridayOpen   string
	FridayClose  string

	// Attendance window
	WindowOpen string // earliest accepted check-in, "HH:mm"
	LateCutoff string // strictly later than this is TELAT, "HH:mm"

	// Geofence
	Latitude     float64
	Longitude    float64
	RadiusMeters int

	UpdatedBy *string
	UpdatedAt time.Time
}

// Resolved is the policy snapshot for one instant, produced by the resolver.
type Resolved struct {
	WindowOpen     string
	LateCutoff     string
	IsOperatingDay bool
}
