package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/simagang/presensi-backend-go/internal/domain/leave"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			id, user_id, date, reason, attachment_url, status, submitted_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW()
		) RETURNING id, submitted_at, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.UserID,
		request.Date,
		request.Reason,
		request.AttachmentURL,
		request.Status,
	).Scan(&request.ID, &request.SubmittedAt, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.user_id, lr.date, lr.reason, lr.attachment_url,
		       lr.status, lr.decided_by, lr.decided_at, lr.submitted_at,
		       lr.created_at, lr.updated_at,
		       u.name AS user_name
		FROM leave_requests lr
		INNER JOIN users u ON lr.user_id = u.id
		WHERE lr.id = $1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.UserID, &req.Date, &req.Reason, &req.AttachmentURL,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.SubmittedAt,
		&req.CreatedAt, &req.UpdatedAt,
		&req.UserName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request: %w", err)
	}

	return req, nil
}

// GetByUserAndDate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT lr.id, lr.user_id, lr.date, lr.reason, lr.attachment_url,
		       lr.status, lr.decided_by, lr.decided_at, lr.submitted_at,
		       lr.created_at, lr.updated_at
		FROM leave_requests lr
		WHERE lr.user_id = $1 AND lr.date = $2
		ORDER BY lr.submitted_at DESC
		LIMIT 1
	`

	var req leave.LeaveRequest
	err := q.QueryRow(ctx, query, userID, date).Scan(
		&req.ID, &req.UserID, &req.Date, &req.Reason, &req.AttachmentURL,
		&req.Status, &req.DecidedBy, &req.DecidedAt, &req.SubmittedAt,
		&req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get leave request by user and date: %w", err)
	}

	return &req, nil
}

// SetStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SetStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, decided_by = $2, decided_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, status, decidedBy, decidedAt, id)
	if err != nil {
		return fmt.Errorf("failed to set leave request status: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("lr.user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("lr.status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM leave_requests lr WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	query := `
		SELECT lr.id, lr.user_id, lr.date, lr.reason, lr.attachment_url,
		       lr.status, lr.decided_by, lr.decided_at, lr.submitted_at,
		       lr.created_at, lr.updated_at,
		       u.name AS user_name
		FROM leave_requests lr
		INNER JOIN users u ON lr.user_id = u.id
		WHERE ` + where + `
		ORDER BY lr.submitted_at DESC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		var req leave.LeaveRequest
		err := rows.Scan(
			&req.ID, &req.UserID, &req.Date, &req.Reason, &req.AttachmentURL,
			&req.Status, &req.DecidedBy, &req.DecidedAt, &req.SubmittedAt,
			&req.CreatedAt, &req.UpdatedAt,
			&req.UserName,
		)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// ListByUser implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByUser(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	filter.UserID = userID
	return r.List(ctx, filter)
}
