package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/domain/leave"
	"github.com/simagang/presensi-backend-go/internal/pkg/civil"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
	"github.com/simagang/presensi-backend-go/internal/pkg/jwt"
	"github.com/simagang/presensi-backend-go/internal/pkg/validator"
	"github.com/simagang/presensi-backend-go/internal/service/file"
)

type LeaveServiceImpl struct {
	txm database.TxManager
	leave.LeaveRequestRepository
	attendanceRepo attendance.AttendanceRepository
	fileService    file.FileService

	now func() time.Time
}

func NewLeaveService(
	txm database.TxManager,
	leaveRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	fileService file.FileService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		txm:                    txm,
		LeaveRequestRepository: leaveRepo,
		attendanceRepo:         attendanceRepo,
		fileService:            fileService,
		now:                    time.Now,
	}
}

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	parsed, _ := validator.IsValidDate(req.Date)
	date := civil.DayStart(parsed.In(civil.WIB))

	existing, err := s.LeaveRequestRepository.GetByUserAndDate(ctx, ident.UserID, date)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to look up existing request: %w", err)
	}
	if existing != nil {
		return leave.LeaveRequestResponse{}, leave.ErrDuplicateRequest
	}

	var attachmentURL *string
	if req.File != nil && req.FileHeader != nil {
		url, err := s.fileService.UploadLeaveAttachment(ctx, ident.UserID, req.File, req.FileHeader.Filename)
		if err != nil {
			return leave.LeaveRequestResponse{}, fmt.Errorf("failed to upload leave attachment: %w", err)
		}
		attachmentURL = &url
	}

	created, err := s.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		UserID:        ident.UserID,
		Date:          date,
		Reason:        req.Reason,
		AttachmentURL: attachmentURL,
		Status:        leave.StatusPending,
		SubmittedAt:   s.now(),
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return mapRequestToResponse(created), nil
}

// Decide implements leave.LeaveService. The status flip and the attendance
// ledger mutation run in one transaction: a partially-applied decision is the
// worst failure mode of this engine and is structurally prevented rather than
// retried.
//
// Re-deciding an already-decided request is deliberately idempotent: approval
// repeats the same upsert, rejection repeats a guarded delete that only ever
// removes an IZIN row.
func (s *LeaveServiceImpl) Decide(ctx context.Context, req leave.DecideRequest) (leave.LeaveRequestResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	if !ident.IsAdmin() {
		return leave.LeaveRequestResponse{}, leave.ErrAdminOnly
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decidedAt := s.now()
	err = s.txm.RunTx(ctx, func(ctx context.Context) error {
		if err := s.LeaveRequestRepository.SetStatus(ctx, request.ID, req.Decision, ident.UserID, decidedAt); err != nil {
			return fmt.Errorf("failed to set leave status: %w", err)
		}

		switch req.Decision {
		case leave.StatusApproved:
			// Approval always wins over a same-day attendance row: a prior
			// HADIR or TELAT is overwritten by IZIN.
			if err := s.attendanceRepo.Upsert(ctx, request.UserID, request.Date, attendance.StatusIzin, attendance.ClockSentinel); err != nil {
				return fmt.Errorf("failed to upsert attendance for approved leave: %w", err)
			}
		case leave.StatusRejected:
			// Conditional delete: only an IZIN row is retracted, so rejection
			// never clobbers a genuine HADIR/TELAT row on the same date.
			if _, err := s.attendanceRepo.DeleteIfStatus(ctx, request.UserID, request.Date, attendance.StatusIzin); err != nil {
				return fmt.Errorf("failed to retract attendance for rejected leave: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request.Status = req.Decision
	request.DecidedBy = &ident.UserID
	request.DecidedAt = &decidedAt
	return mapRequestToResponse(request), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, filter leave.ListFilter) (leave.ListLeaveRequestsResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	normalizeFilter(&filter)

	requests, total, err := s.LeaveRequestRepository.ListByUser(ctx, ident.UserID, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, fmt.Errorf("failed to get leave requests: %w", err)
	}

	return listResponse(requests, total, filter), nil
}

// List implements leave.LeaveService. Admin table.
func (s *LeaveServiceImpl) List(ctx context.Context, filter leave.ListFilter) (leave.ListLeaveRequestsResponse, error) {
	normalizeFilter(&filter)

	requests, total, err := s.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return listResponse(requests, total, filter), nil
}

func normalizeFilter(filter *leave.ListFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
}

func listResponse(requests []leave.LeaveRequest, total int64, filter leave.ListFilter) leave.ListLeaveRequestsResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, mapRequestToResponse(request))
	}
	return leave.ListLeaveRequestsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Requests:   responses,
	}
}

func mapRequestToResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	return leave.LeaveRequestResponse{
		ID:            request.ID,
		UserID:        request.UserID,
		UserName:      request.UserName,
		Date:          request.Date.Format("2006-01-02"),
		Reason:        request.Reason,
		AttachmentURL: request.AttachmentURL,
		Status:        request.Status,
		DecidedBy:     request.DecidedBy,
		SubmittedAt:   request.SubmittedAt.Format("2006-01-02 15:04:05"),
	}
}
