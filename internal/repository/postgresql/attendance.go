package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceColumns = `
	a.id, a.user_id, a.date, a.check_in, a.check_out, a.status,
	a.latitude, a.longitude, a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status,
		&att.Latitude, &att.Longitude, &att.CreatedAt, &att.UpdatedAt,
	)
	return att, err
}

// Create implements attendance.AttendanceRepository. The attendances table
// carries UNIQUE (user_id, date); a conflict is surfaced as
// ErrAlreadyCheckedIn so concurrent double-taps fail fast instead of racing
// the application-level existence check.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, user_id, date, check_in, check_out, status, latitude, longitude)
		VALUES (uuidv7(), $1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.UserID,
		att.Date,
		att.CheckIn,
		att.CheckOut,
		att.Status,
		att.Latitude,
		att.Longitude,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return att, nil
}

// GetByUserAndDate implements attendance.AttendanceRepository. date must be a
// WIB day start; the comparison is an exact match.
func (r *attendanceRepositoryImpl) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendances a
		WHERE a.user_id = $1 AND a.date = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, userID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance by user and date: %w", err)
	}

	return &att, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_in = $1, check_out = $2, status = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, att.CheckIn, att.CheckOut, att.Status, att.ID)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// Upsert implements attendance.AttendanceRepository. Keyed on the
// (user_id, date) uniqueness constraint; an existing row of any status is
// overwritten, which is what makes leave approval win over a same-day
// check-in.
func (r *attendanceRepositoryImpl) Upsert(ctx context.Context, userID string, date time.Time, status, checkIn string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (id, user_id, date, check_in, status)
		VALUES (uuidv7(), $1, $2, $3, $4)
		ON CONFLICT (user_id, date)
		DO UPDATE SET status = EXCLUDED.status, check_in = EXCLUDED.check_in,
		              check_out = NULL, updated_at = NOW()
	`

	if _, err := q.Exec(ctx, query, userID, date, checkIn, status); err != nil {
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}
	return nil
}

// DeleteIfStatus implements attendance.AttendanceRepository. The status guard
// lives in the statement itself so the check and the delete are one atomic
// operation.
func (r *attendanceRepositoryImpl) DeleteIfStatus(ctx context.Context, userID string, date time.Time, expectedStatus string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM attendances
		WHERE user_id = $1 AND date = $2 AND status = $3
	`

	commandTag, err := q.Exec(ctx, query, userID, date, expectedStatus)
	if err != nil {
		return 0, fmt.Errorf("failed to delete attendance: %w", err)
	}
	return commandTag.RowsAffected(), nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) List(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.DateFrom != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, filter.DateFrom)
		argPos++
	}
	if filter.DateTo != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, filter.DateTo)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM attendances a WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	query := `
		SELECT ` + attendanceColumns + `, u.name
		FROM attendances a
		INNER JOIN users u ON a.user_id = u.id
		WHERE ` + where + `
		ORDER BY a.date DESC, u.name ASC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.UserID, &att.Date, &att.CheckIn, &att.CheckOut, &att.Status,
			&att.Latitude, &att.Longitude, &att.CreatedAt, &att.UpdatedAt, &att.UserName,
		)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, att)
	}

	return records, total, rows.Err()
}

// ListByUser implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	filter.UserID = userID
	return r.List(ctx, filter)
}
