package leave

import "time"

// Leave request statuses. Part of the persisted contract.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// LeaveRequest is one row per leave submission. Date is normalized to the WIB
// day start of the requested day.
type LeaveRequest struct {
	ID            string
	UserID        string
	Date          time.Time
	Reason        string
	AttachmentURL *string
	Status        string
	DecidedBy     *string
	DecidedAt     *time.Time
	SubmittedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Join
	UserName *string
}
