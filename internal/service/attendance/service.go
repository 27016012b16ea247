package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/domain/policy"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/simagang/presensi-backend-go/internal/pkg/civil"
	"github.com/simagang/presensi-backend-go/internal/pkg/jwt"
	"github.com/simagang/presensi-backend-go/internal/pkg/utils"
	"github.com/simagang/presensi-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	profileRepo   user.InternshipProfileRepository
	policyService policy.PolicyService

	// now is the clock; replaced in tests.
	now func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	profileRepo user.InternshipProfileRepository,
	policyService policy.PolicyService,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		profileRepo:          profileRepo,
		policyService:        policyService,
		now:                  time.Now,
	}
}

// CheckIn implements attendance.AttendanceService. This is the only
// authoritative side-effecting action of the decision engine: it accepts or
// rejects the event and persists the HADIR/TELAT row for the civil day.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	today := civil.DayStart(now)
	clock := civil.Clock(now)

	resolved := a.policyService.Resolve(ctx, now)
	if !resolved.IsOperatingDay {
		return attendance.AttendanceResponse{}, attendance.ErrNotOperatingDay
	}

	if fence := a.policyService.Geofence(ctx); fence != nil {
		if !utils.WithinRadius(req.Latitude, req.Longitude, fence.Latitude, fence.Longitude, fence.RadiusMeters) {
			return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedRadius
		}
	}

	windowOpen, lateCutoff := a.applyProfileOverride(ctx, ident.UserID, resolved)

	if civil.After(windowOpen, clock) {
		return attendance.AttendanceResponse{}, attendance.ErrTooEarlyToCheckIn
	}

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, ident.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
	}

	// Strictly later than the cutoff is TELAT; exactly on the cutoff is HADIR.
	status := attendance.StatusHadir
	if civil.After(clock, lateCutoff) {
		status = attendance.StatusTelat
	}

	created, err := a.AttendanceRepository.Create(ctx, attendance.Attendance{
		UserID:    ident.UserID,
		Date:      today,
		CheckIn:   clock,
		Status:    status,
		Latitude:  &req.Latitude,
		Longitude: &req.Longitude,
	})
	if err != nil {
		// The repository maps the (user_id, date) uniqueness violation to
		// ErrAlreadyCheckedIn, which closes the check-then-insert race.
		return attendance.AttendanceResponse{}, err
	}

	return mapAttendanceToResponse(created), nil
}

// applyProfileOverride replaces the global window with the intern's per-user
// override when one is configured.
func (a *AttendanceServiceImpl) applyProfileOverride(ctx context.Context, userID string, resolved policy.Resolved) (windowOpen, lateCutoff string) {
	windowOpen = resolved.WindowOpen
	lateCutoff = resolved.LateCutoff

	profile, err := a.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return windowOpen, lateCutoff
	}
	if profile.WindowOpen != nil && validator.IsValidClock(*profile.WindowOpen) {
		windowOpen = *profile.WindowOpen
	}
	if profile.LateCutoff != nil && validator.IsValidClock(*profile.LateCutoff) {
		lateCutoff = *profile.LateCutoff
	}
	return windowOpen, lateCutoff
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.now()
	today := civil.DayStart(now)

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, ident.UserID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing == nil || !existing.Present() {
		// IZIN and ALPHA rows are not check-ins; there is nothing to close.
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if existing.CheckOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clock := civil.Clock(now)
	existing.CheckOut = &clock

	if err := a.AttendanceRepository.Update(ctx, *existing); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance record: %w", err)
	}

	return mapAttendanceToResponse(*existing), nil
}

// GetToday implements attendance.AttendanceService. Returns nil data when the
// caller has no row for the current civil day.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context) (*attendance.AttendanceResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := a.AttendanceRepository.GetByUserAndDate(ctx, ident.UserID, civil.DayStart(a.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to look up today's attendance: %w", err)
	}
	if existing == nil {
		return nil, nil
	}

	resp := mapAttendanceToResponse(*existing)
	return &resp, nil
}

// GetMyHistory implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetMyHistory(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	normalizeFilter(&filter)

	records, total, err := a.AttendanceRepository.ListByUser(ctx, ident.UserID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to get attendance history: %w", err)
	}

	return listResponse(records, total, filter), nil
}

// List implements attendance.AttendanceService. Admin table.
func (a *AttendanceServiceImpl) List(ctx context.Context, filter attendance.HistoryFilter) (attendance.ListAttendanceResponse, error) {
	normalizeFilter(&filter)

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendances: %w", err)
	}

	return listResponse(records, total, filter), nil
}

func normalizeFilter(filter *attendance.HistoryFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}

func listResponse(records []attendance.Attendance, total int64, filter attendance.HistoryFilter) attendance.ListAttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, att := range records {
		responses = append(responses, mapAttendanceToResponse(att))
	}
	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: responses,
	}
}

func mapAttendanceToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:       att.ID,
		UserID:   att.UserID,
		UserName: att.UserName,
		Date:     att.Date.Format("2006-01-02"),
		CheckIn:  att.CheckIn,
		CheckOut: att.CheckOut,
		Status:   att.Status,
	}
}
