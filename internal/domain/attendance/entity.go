package attendance

import "time"

// Attendance statuses. These literals are part of the persisted contract;
// renaming one requires a migration of historical rows.
const (
	StatusHadir = "HADIR" // present, on time
	StatusTelat = "TELAT" // present, after the late cutoff
	StatusIzin  = "IZIN"  // excused via an approved leave request
	StatusAlpha = "ALPHA" // absent with no record; written by the absence job
)

// ClockSentinel is stored as the check-in time of rows that were not produced
// by a physical check-in (IZIN, ALPHA).
const ClockSentinel = "-"

// Attendance is one row per (user, civil date). Date is normalized to the WIB
// day start; CheckIn/CheckOut are "HH:mm" civil clock strings.
type Attendance struct {
	ID        string
	UserID    string
	Date      time.Time
	CheckIn   string
	CheckOut  *string
	Status    string
	Latitude  *float64
	Longitude *float64
	CreatedAt time.Time
	UpdatedAt time.Time

	// Join
	UserName *string
}

// Present reports whether the row was produced by a physical check-in.
func (a *Attendance) Present() bool {
	return a.Status == StatusHadir || a.Status == StatusTelat
}
