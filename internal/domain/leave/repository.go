package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByUserAndDate returns nil when the user has no request for that date.
	GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*LeaveRequest, error)
	// SetStatus flips the request status and records the deciding admin.
	SetStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error
	List(ctx context.Context, filter ListFilter) ([]LeaveRequest, int64, error)
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]LeaveRequest, int64, error)
}
