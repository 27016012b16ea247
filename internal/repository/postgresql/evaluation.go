package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/simagang/presensi-backend-go/internal/domain/evaluation"
	"github.com/simagang/presensi-backend-go/internal/pkg/database"
)

type evaluationRepositoryImpl struct {
	db *database.DB
}

func NewEvaluationRepository(db *database.DB) evaluation.EvaluationRepository {
	return &evaluationRepositoryImpl{db: db}
}

const evaluationColumns = `
	fe.id, fe.user_id, fe.work_summary, fe.reflection,
	fe.discipline_score, fe.initiative_score, fe.teamwork_score,
	fe.technical_score, fe.communication_score, fe.average_score,
	fe.status, fe.graded_by, fe.graded_at, fe.created_at, fe.updated_at
`

func scanEvaluation(row pgx.Row) (evaluation.FinalEvaluation, error) {
	var ev evaluation.FinalEvaluation
	err := row.Scan(
		&ev.ID, &ev.UserID, &ev.WorkSummary, &ev.Reflection,
		&ev.Discipline, &ev.Initiative, &ev.Teamwork,
		&ev.Technical, &ev.Communication, &ev.AverageScore,
		&ev.Status, &ev.GradedBy, &ev.GradedAt, &ev.CreatedAt, &ev.UpdatedAt,
	)
	return ev, err
}

// UpsertDraft implements evaluation.EvaluationRepository. Keyed on the
// UNIQUE (user_id) constraint; only the write-up columns are touched so a
// racing grade is never clobbered.
func (r *evaluationRepositoryImpl) UpsertDraft(ctx context.Context, ev evaluation.FinalEvaluation) (evaluation.FinalEvaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO final_evaluations (id, user_id, work_summary, reflection, status)
		VALUES (uuidv7(), $1, $2, $3, $4)
		ON CONFLICT (user_id)
		DO UPDATE SET work_summary = EXCLUDED.work_summary,
		              reflection = EXCLUDED.reflection,
		              updated_at = NOW()
		RETURNING id, status, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		ev.UserID,
		ev.WorkSummary,
		ev.Reflection,
		evaluation.StatusPending,
	).Scan(&ev.ID, &ev.Status, &ev.CreatedAt, &ev.UpdatedAt)

	if err != nil {
		return evaluation.FinalEvaluation{}, fmt.Errorf("failed to upsert evaluation draft: %w", err)
	}

	return ev, nil
}

// GetByID implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) GetByID(ctx context.Context, id string) (evaluation.FinalEvaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + evaluationColumns + ` FROM final_evaluations fe WHERE fe.id = $1`

	ev, err := scanEvaluation(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return evaluation.FinalEvaluation{}, evaluation.ErrEvaluationNotFound
		}
		return evaluation.FinalEvaluation{}, fmt.Errorf("failed to get evaluation: %w", err)
	}

	return ev, nil
}

// GetByUserID implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) GetByUserID(ctx context.Context, userID string) (evaluation.FinalEvaluation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + evaluationColumns + ` FROM final_evaluations fe WHERE fe.user_id = $1`

	ev, err := scanEvaluation(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return evaluation.FinalEvaluation{}, evaluation.ErrEvaluationNotFound
		}
		return evaluation.FinalEvaluation{}, fmt.Errorf("failed to get evaluation by user: %w", err)
	}

	return ev, nil
}

// SetGrade implements evaluation.EvaluationRepository. The PENDING guard in
// the statement keeps grading a once-only transition even under concurrent
// admins.
func (r *evaluationRepositoryImpl) SetGrade(ctx context.Context, ev evaluation.FinalEvaluation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE final_evaluations
		SET discipline_score = $1, initiative_score = $2, teamwork_score = $3,
		    technical_score = $4, communication_score = $5, average_score = $6,
		    status = $7, graded_by = $8, graded_at = $9, updated_at = NOW()
		WHERE id = $10 AND status = $11
	`

	commandTag, err := q.Exec(ctx, query,
		ev.Discipline, ev.Initiative, ev.Teamwork,
		ev.Technical, ev.Communication, ev.AverageScore,
		evaluation.StatusGraded, ev.GradedBy, ev.GradedAt,
		ev.ID, evaluation.StatusPending,
	)
	if err != nil {
		return fmt.Errorf("failed to set evaluation grade: %w", err)
	}
	if commandTag.RowsAffected() != 1 {
		return evaluation.ErrAlreadyGraded
	}
	return nil
}

// List implements evaluation.EvaluationRepository.
func (r *evaluationRepositoryImpl) List(ctx context.Context, status string, page, limit int) ([]evaluation.FinalEvaluation, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "1=1"
	args := []interface{}{}
	argPos := 1

	if status != "" {
		where = fmt.Sprintf("fe.status = $%d", argPos)
		args = append(args, status)
		argPos++
	}

	countQuery := `SELECT COUNT(*) FROM final_evaluations fe WHERE ` + where
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count evaluations: %w", err)
	}

	query := `
		SELECT ` + evaluationColumns + `, u.name
		FROM final_evaluations fe
		INNER JOIN users u ON fe.user_id = u.id
		WHERE ` + where + `
		ORDER BY u.name ASC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list evaluations: %w", err)
	}
	defer rows.Close()

	var evaluations []evaluation.FinalEvaluation
	for rows.Next() {
		var ev evaluation.FinalEvaluation
		err := rows.Scan(
			&ev.ID, &ev.UserID, &ev.WorkSummary, &ev.Reflection,
			&ev.Discipline, &ev.Initiative, &ev.Teamwork,
			&ev.Technical, &ev.Communication, &ev.AverageScore,
			&ev.Status, &ev.GradedBy, &ev.GradedAt, &ev.CreatedAt, &ev.UpdatedAt,
			&ev.UserName,
		)
		if err != nil {
			return nil, 0, err
		}
		evaluations = append(evaluations, ev)
	}

	return evaluations, total, rows.Err()
}
