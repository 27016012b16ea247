package policy

import "context"

type PolicyRepository interface {
	// Get returns nil when no policy row exists yet; callers fall back to the
	// documented defaults.
	Get(ctx context.Context) (*OperatingPolicy, error)
	// Upsert replaces the singleton row.
	Upsert(ctx context.Context, p OperatingPolicy) (OperatingPolicy, error)
}
