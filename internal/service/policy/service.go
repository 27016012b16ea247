package policy

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/simagang/presensi-backend-go/internal/domain/policy"
	"github.com/simagang/presensi-backend-go/internal/pkg/jwt"
)

type PolicyServiceImpl struct {
	policy.PolicyRepository
}

func NewPolicyService(policyRepo policy.PolicyRepository) policy.PolicyService {
	return &PolicyServiceImpl{PolicyRepository: policyRepo}
}

// Get implements policy.PolicyService. A missing row is reported as the
// default policy rather than an error so the settings page always renders.
func (s *PolicyServiceImpl) Get(ctx context.Context) (policy.PolicyResponse, error) {
	p, err := s.PolicyRepository.Get(ctx)
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to read operating policy: %w", err)
	}
	if p == nil {
		return policy.PolicyResponse{
			WeekdayOpen:  policy.DefaultWeekdayOpen,
			WeekdayClose: policy.DefaultWeekdayClose,
			FridayOpen:   policy.DefaultFridayOpen,
			FridayClose:  policy.DefaultFridayClose,
			WindowOpen:   policy.DefaultWindowOpen,
			LateCutoff:   policy.DefaultLateCutoff,
		}, nil
	}
	return mapPolicyToResponse(*p), nil
}

// Update implements policy.PolicyService. Latest value wins; there is no
// policy history.
func (s *PolicyServiceImpl) Update(ctx context.Context, req policy.UpdatePolicyRequest) (policy.PolicyResponse, error) {
	if err := req.Validate(); err != nil {
		return policy.PolicyResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return policy.PolicyResponse{}, err
	}

	updated, err := s.PolicyRepository.Upsert(ctx, policy.OperatingPolicy{
		WeekdayOpen:  req.WeekdayOpen,
		WeekdayClose: req.WeekdayClose,
		FridayOpen:   req.FridayOpen,
		FridayClose:  req.FridayClose,
		WindowOpen:   req.WindowOpen,
		LateCutoff:   req.LateCutoff,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		RadiusMeters: req.RadiusMeters,
		UpdatedBy:    &ident.UserID,
	})
	if err != nil {
		return policy.PolicyResponse{}, fmt.Errorf("failed to update operating policy: %w", err)
	}

	return mapPolicyToResponse(updated), nil
}

// Resolve implements policy.PolicyService. Never fails: an unreadable policy
// row degrades to the documented defaults.
func (s *PolicyServiceImpl) Resolve(ctx context.Context, now time.Time) policy.Resolved {
	p, err := s.PolicyRepository.Get(ctx)
	if err != nil {
		slog.Warn("operating policy unreadable, falling back to defaults", "error", err)
		p = nil
	}
	return policy.ResolveWindow(p, now)
}

// Geofence implements policy.PolicyService. Nil means no fence is configured
// and check-ins are not location-restricted.
func (s *PolicyServiceImpl) Geofence(ctx context.Context) *policy.OperatingPolicy {
	p, err := s.PolicyRepository.Get(ctx)
	if err != nil {
		slog.Warn("operating policy unreadable, skipping geofence", "error", err)
		return nil
	}
	if p == nil || p.RadiusMeters <= 0 {
		return nil
	}
	return p
}

func mapPolicyToResponse(p policy.OperatingPolicy) policy.PolicyResponse {
	return policy.PolicyResponse{
		WeekdayOpen:  p.WeekdayOpen,
		WeekdayClose: p.WeekdayClose,
		FridayOpen:   p.FridayOpen,
		FridayClose:  p.FridayClose,
		WindowOpen:   p.WindowOpen,
		LateCutoff:   p.LateCutoff,
		Latitude:     p.Latitude,
		Longitude:    p.Longitude,
		RadiusMeters: p.RadiusMeters,
		UpdatedAt:    p.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
