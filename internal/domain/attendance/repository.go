package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance rows. Dates passed
// in must already be normalized to the WIB day start; the storage layer does
// exact-match date comparison.
type AttendanceRepository interface {
	// Create inserts a new row. The storage layer enforces UNIQUE (user_id, date)
	// and returns ErrAlreadyCheckedIn on conflict, which is what makes the
	// check-then-insert in the decision engine safe against double taps.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByUserAndDate returns nil when no row exists for (userID, date).
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*Attendance, error)

	// Update rewrites a row in place (check-out).
	Update(ctx context.Context, att Attendance) error

	// Upsert writes status/check-in keyed on (user_id, date), overwriting any
	// prior status. Used by leave reconciliation: approval always wins.
	Upsert(ctx context.Context, userID string, date time.Time, status, checkIn string) error

	// DeleteIfStatus deletes the (userID, date) row only when its current
	// status equals expectedStatus. Returns the number of rows removed.
	DeleteIfStatus(ctx context.Context, userID string, date time.Time, expectedStatus string) (int64, error)

	// List retrieves rows for the admin table, newest first.
	List(ctx context.Context, filter HistoryFilter) ([]Attendance, int64, error)

	// ListByUser retrieves an intern's own history, newest first.
	ListByUser(ctx context.Context, userID string, filter HistoryFilter) ([]Attendance, int64, error)
}
