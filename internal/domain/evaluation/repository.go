package evaluation

import "context"

type EvaluationRepository interface {
	// UpsertDraft creates or updates the write-up for a user. Must not touch
	// score columns.
	UpsertDraft(ctx context.Context, ev FinalEvaluation) (FinalEvaluation, error)
	GetByID(ctx context.Context, id string) (FinalEvaluation, error)
	GetByUserID(ctx context.Context, userID string) (FinalEvaluation, error)
	// SetGrade writes the five sub-scores, the average, and the GRADED status.
	SetGrade(ctx context.Context, ev FinalEvaluation) error
	List(ctx context.Context, status string, page, limit int) ([]FinalEvaluation, int64, error)
}
