package policy

import (
	"context"
	"time"
)

type PolicyService interface {
	Get(ctx context.Context) (PolicyResponse, error)
	Update(ctx context.Context, req UpdatePolicyRequest) (PolicyResponse, error)
	// Resolve loads the current policy and resolves the window for now.
	// It never fails: a missing or unreadable row degrades to defaults.
	Resolve(ctx context.Context, now time.Time) Resolved
	// Geofence returns the current geofence, or nil when no policy row exists
	// (no fence configured means no location restriction).
	Geofence(ctx context.Context) *OperatingPolicy
}
