package leave

import "errors"

// Leave domain errors
var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrAdminOnly            = errors.New("only admins can decide leave requests")
	ErrInvalidDecision      = errors.New("decision must be APPROVED or REJECTED")
	ErrDuplicateRequest     = errors.New("a leave request for that date already exists")
)
