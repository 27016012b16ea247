package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/simagang/presensi-backend-go/internal/domain/policy"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
)

type policyRepositoryImpl struct {
	db *database.DB
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepositoryImpl{db: db}
}

// Get implements policy.PolicyRepository. The table holds at most one row,
// pinned by singleton = TRUE.
func (r *policyRepositoryImpl) Get(ctx context.Context) (*policy.OperatingPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, weekday_open, weekday_close, friday_open, friday_close,
		       window_open, late_cutoff, latitude, longitude, radius_meters,
		       updated_by, updated_at
		FROM operating_policies
		WHERE singleton = TRUE
	`

	var p policy.OperatingPolicy
	err := q.QueryRow(ctx, query).Scan(
		&p.ID, &p.WeekdayOpen, &p.WeekdayClose, &p.FridayOpen, &p.FridayClose,
		&p.WindowOpen, &p.LateCutoff, &p.Latitude, &p.Longitude, &p.RadiusMeters,
		&p.UpdatedBy, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get operating policy: %w", err)
	}

	return &p, nil
}

// Upsert implements policy.PolicyRepository.
func (r *policyRepositoryImpl) Upsert(ctx context.Context, p policy.OperatingPolicy) (policy.OperatingPolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO operating_policies (
			id, singleton, weekday_open, weekday_close, friday_open, friday_close,
			window_open, late_cutoff, latitude, longitude, radius_meters, updated_by
		) VALUES (
			uuidv7(), TRUE, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		)
		ON CONFLICT (singleton)
		DO UPDATE SET weekday_open = EXCLUDED.weekday_open,
		              weekday_close = EXCLUDED.weekday_close,
		              friday_open = EXCLUDED.friday_open,
		              friday_close = EXCLUDED.friday_close,
		              window_open = EXCLUDED.window_open,
		              late_cutoff = EXCLUDED.late_cutoff,
		              latitude = EXCLUDED.latitude,
		              longitude = EXCLUDED.longitude,
		              radius_meters = EXCLUDED.radius_meters,
		              updated_by = EXCLUDED.updated_by,
		              updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.WeekdayOpen, p.WeekdayClose, p.FridayOpen, p.FridayClose,
		p.WindowOpen, p.LateCutoff, p.Latitude, p.Longitude, p.RadiusMeters,
		p.UpdatedBy,
	).Scan(&p.ID, &p.UpdatedAt)

	if err != nil {
		return policy.OperatingPolicy{}, fmt.Errorf("failed to upsert operating policy: %w", err)
	}

	return p, nil
}
