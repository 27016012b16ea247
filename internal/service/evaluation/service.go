package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/simagang/presensi-backend-go/internal/domain/evaluation"
	"github.com/simagang/presensi-backend-go/internal/pkg/jwt"
)

type EvaluationServiceImpl struct {
	evaluation.EvaluationRepository

	now func() time.Time
}

func NewEvaluationService(evaluationRepo evaluation.EvaluationRepository) evaluation.EvaluationService {
	return &EvaluationServiceImpl{
		EvaluationRepository: evaluationRepo,
		now:                  time.Now,
	}
}

// UpsertMine implements evaluation.EvaluationService. Interns may keep
// editing the write-up until an admin grades it.
func (s *EvaluationServiceImpl) UpsertMine(ctx context.Context, req evaluation.UpsertRequest) (evaluation.EvaluationResponse, error) {
	if err := req.Validate(); err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	existing, err := s.EvaluationRepository.GetByUserID(ctx, ident.UserID)
	if err == nil && existing.Status == evaluation.StatusGraded {
		return evaluation.EvaluationResponse{}, evaluation.ErrAlreadyGraded
	}

	saved, err := s.EvaluationRepository.UpsertDraft(ctx, evaluation.FinalEvaluation{
		UserID:      ident.UserID,
		WorkSummary: req.WorkSummary,
		Reflection:  req.Reflection,
		Status:      evaluation.StatusPending,
	})
	if err != nil {
		return evaluation.EvaluationResponse{}, fmt.Errorf("failed to save evaluation: %w", err)
	}

	return mapEvaluationToResponse(saved), nil
}

// GetMine implements evaluation.EvaluationService.
func (s *EvaluationServiceImpl) GetMine(ctx context.Context) (evaluation.EvaluationResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	ev, err := s.EvaluationRepository.GetByUserID(ctx, ident.UserID)
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	return mapEvaluationToResponse(ev), nil
}

// Grade implements evaluation.EvaluationService. The transition
// PENDING -> GRADED happens exactly once; scores are fixed thereafter.
func (s *EvaluationServiceImpl) Grade(ctx context.Context, req evaluation.GradeRequest) (evaluation.EvaluationResponse, error) {
	ident, err := jwt.IdentityFromContext(ctx)
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return evaluation.EvaluationResponse{}, err
	}

	ev, err := s.EvaluationRepository.GetByID(ctx, req.ID)
	if err != nil {
		return evaluation.EvaluationResponse{}, err
	}
	if ev.Status == evaluation.StatusGraded {
		return evaluation.EvaluationResponse{}, evaluation.ErrAlreadyGraded
	}

	now := s.now()
	average := req.Average()
	ev.Discipline = &req.Discipline
	ev.Initiative = &req.Initiative
	ev.Teamwork = &req.Teamwork
	ev.Technical = &req.Technical
	ev.Communication = &req.Communication
	ev.AverageScore = &average
	ev.Status = evaluation.StatusGraded
	ev.GradedBy = &ident.UserID
	ev.GradedAt = &now

	if err := s.EvaluationRepository.SetGrade(ctx, ev); err != nil {
		return evaluation.EvaluationResponse{}, fmt.Errorf("failed to grade evaluation: %w", err)
	}

	return mapEvaluationToResponse(ev), nil
}

// List implements evaluation.EvaluationService. Admin table.
func (s *EvaluationServiceImpl) List(ctx context.Context, status string, page, limit int) (evaluation.ListEvaluationsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	evaluations, total, err := s.EvaluationRepository.List(ctx, status, page, limit)
	if err != nil {
		return evaluation.ListEvaluationsResponse{}, fmt.Errorf("failed to list evaluations: %w", err)
	}

	responses := make([]evaluation.EvaluationResponse, 0, len(evaluations))
	for _, ev := range evaluations {
		responses = append(responses, mapEvaluationToResponse(ev))
	}

	return evaluation.ListEvaluationsResponse{
		TotalCount:  total,
		Page:        page,
		Limit:       limit,
		Evaluations: responses,
	}, nil
}

func mapEvaluationToResponse(ev evaluation.FinalEvaluation) evaluation.EvaluationResponse {
	return evaluation.EvaluationResponse{
		ID:            ev.ID,
		UserID:        ev.UserID,
		UserName:      ev.UserName,
		WorkSummary:   ev.WorkSummary,
		Reflection:    ev.Reflection,
		Discipline:    ev.Discipline,
		Initiative:    ev.Initiative,
		Teamwork:      ev.Teamwork,
		Technical:     ev.Technical,
		Communication: ev.Communication,
		AverageScore:  ev.AverageScore,
		Status:        ev.Status,
		GradedBy:      ev.GradedBy,
	}
}
