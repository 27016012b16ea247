package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
)

type internshipProfileRepositoryImpl struct {
	db *database.DB
}

func NewInternshipProfileRepository(db *database.DB) user.InternshipProfileRepository {
	return &internshipProfileRepositoryImpl{db: db}
}

// Upsert implements user.InternshipProfileRepository. Keyed on the
// UNIQUE (user_id) constraint so each intern owns at most one profile.
func (r *internshipProfileRepositoryImpl) Upsert(ctx context.Context, p user.InternshipProfile) (user.InternshipProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO internship_profiles (id, user_id, start_date, end_date, window_open, late_cutoff)
		VALUES (uuidv7(), $1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET start_date = EXCLUDED.start_date, end_date = EXCLUDED.end_date,
		              window_open = EXCLUDED.window_open, late_cutoff = EXCLUDED.late_cutoff,
		              updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.UserID,
		p.StartDate,
		p.EndDate,
		p.WindowOpen,
		p.LateCutoff,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return user.InternshipProfile{}, fmt.Errorf("failed to upsert internship profile: %w", err)
	}

	return p, nil
}

// GetByUserID implements user.InternshipProfileRepository.
func (r *internshipProfileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (user.InternshipProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, window_open, late_cutoff, created_at, updated_at
		FROM internship_profiles
		WHERE user_id = $1
	`

	var p user.InternshipProfile
	err := q.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.StartDate, &p.EndDate, &p.WindowOpen, &p.LateCutoff,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.InternshipProfile{}, user.ErrProfileNotFound
		}
		return user.InternshipProfile{}, fmt.Errorf("failed to get internship profile: %w", err)
	}

	return p, nil
}

// ListActiveOn implements user.InternshipProfileRepository.
func (r *internshipProfileRepositoryImpl) ListActiveOn(ctx context.Context, date time.Time) ([]user.InternshipProfile, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, start_date, end_date, window_open, late_cutoff, created_at, updated_at
		FROM internship_profiles
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY user_id
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list active internship profiles: %w", err)
	}
	defer rows.Close()

	var profiles []user.InternshipProfile
	for rows.Next() {
		var p user.InternshipProfile
		err := rows.Scan(
			&p.ID, &p.UserID, &p.StartDate, &p.EndDate, &p.WindowOpen, &p.LateCutoff,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}

	return profiles, rows.Err()
}
