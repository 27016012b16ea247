package leave

import "context"

type LeaveService interface {
	Submit(ctx context.Context, req SubmitRequest) (LeaveRequestResponse, error)
	GetMyRequests(ctx context.Context, filter ListFilter) (ListLeaveRequestsResponse, error)

	// Admin surface
	List(ctx context.Context, filter ListFilter) (ListLeaveRequestsResponse, error)
	// Decide applies an APPROVED/REJECTED decision and reconciles the
	// attendance ledger atomically. Re-deciding an already-decided request is
	// idempotent.
	Decide(ctx context.Context, req DecideRequest) (LeaveRequestResponse, error)
}
