package evaluation

import "context"

type EvaluationService interface {
	UpsertMine(ctx context.Context, req UpsertRequest) (EvaluationResponse, error)
	GetMine(ctx context.Context) (EvaluationResponse, error)

	// Admin surface
	List(ctx context.Context, status string, page, limit int) (ListEvaluationsResponse, error)
	Grade(ctx context.Context, req GradeRequest) (EvaluationResponse, error)
}
