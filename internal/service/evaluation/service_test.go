package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/simagang/presensi-backend-go/internal/domain/evaluation"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEvaluationRepo struct {
	byUser map[string]evaluation.FinalEvaluation
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{byUser: make(map[string]evaluation.FinalEvaluation)}
}

func (f *fakeEvaluationRepo) UpsertDraft(ctx context.Context, ev evaluation.FinalEvaluation) (evaluation.FinalEvaluation, error) {
	existing, ok := f.byUser[ev.UserID]
	if ok {
		existing.WorkSummary = ev.WorkSummary
		existing.Reflection = ev.Reflection
		f.byUser[ev.UserID] = existing
		return existing, nil
	}
	ev.ID = "ev-" + ev.UserID
	ev.Status = evaluation.StatusPending
	f.byUser[ev.UserID] = ev
	return ev, nil
}

func (f *fakeEvaluationRepo) GetByID(ctx context.Context, id string) (evaluation.FinalEvaluation, error) {
	for _, ev := range f.byUser {
		if ev.ID == id {
			return ev, nil
		}
	}
	return evaluation.FinalEvaluation{}, evaluation.ErrEvaluationNotFound
}

func (f *fakeEvaluationRepo) GetByUserID(ctx context.Context, userID string) (evaluation.FinalEvaluation, error) {
	ev, ok := f.byUser[userID]
	if !ok {
		return evaluation.FinalEvaluation{}, evaluation.ErrEvaluationNotFound
	}
	return ev, nil
}

func (f *fakeEvaluationRepo) SetGrade(ctx context.Context, ev evaluation.FinalEvaluation) error {
	existing, err := f.GetByID(ctx, ev.ID)
	if err != nil {
		return err
	}
	if existing.Status == evaluation.StatusGraded {
		return evaluation.ErrAlreadyGraded
	}
	f.byUser[existing.UserID] = ev
	return nil
}

func (f *fakeEvaluationRepo) List(ctx context.Context, status string, page, limit int) ([]evaluation.FinalEvaluation, int64, error) {
	var out []evaluation.FinalEvaluation
	for _, ev := range f.byUser {
		if status != "" && ev.Status != status {
			continue
		}
		out = append(out, ev)
	}
	return out, int64(len(out)), nil
}

func identityContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	token := jwxjwt.New()
	require.NoError(t, token.Set("user_id", userID))
	require.NoError(t, token.Set("email", userID+"@example.com"))
	require.NoError(t, token.Set("role", string(role)))
	require.NoError(t, token.Set("type", "access"))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeEvaluationRepo) *EvaluationServiceImpl {
	svc := NewEvaluationService(repo).(*EvaluationServiceImpl)
	svc.now = func() time.Time { return time.Date(2026, 6, 30, 10, 0, 0, 0, time.UTC) }
	return svc
}

func TestUpsertMine_EditableWhilePending(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := newTestService(repo)
	ctx := identityContext(t, "intern-1", user.RoleIntern)

	first, err := svc.UpsertMine(ctx, evaluation.UpsertRequest{WorkSummary: "v1", Reflection: "r1"})
	require.NoError(t, err)
	assert.Equal(t, evaluation.StatusPending, first.Status)

	second, err := svc.UpsertMine(ctx, evaluation.UpsertRequest{WorkSummary: "v2", Reflection: "r2"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "v2", second.WorkSummary)
}

func TestGrade_SetsScoresAndAverage(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := newTestService(repo)

	_, err := svc.UpsertMine(identityContext(t, "intern-1", user.RoleIntern), evaluation.UpsertRequest{WorkSummary: "v1", Reflection: "r1"})
	require.NoError(t, err)

	ctx := identityContext(t, "admin-1", user.RoleAdmin)
	resp, err := svc.Grade(ctx, evaluation.GradeRequest{
		ID:            "ev-intern-1",
		Discipline:    80,
		Initiative:    90,
		Teamwork:      85,
		Technical:     95,
		Communication: 70,
	})
	require.NoError(t, err)

	assert.Equal(t, evaluation.StatusGraded, resp.Status)
	require.NotNil(t, resp.AverageScore)
	assert.InDelta(t, 84.0, *resp.AverageScore, 0.001)
	require.NotNil(t, resp.GradedBy)
	assert.Equal(t, "admin-1", *resp.GradedBy)
}

func TestGrade_SecondGradeRejected(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := newTestService(repo)

	_, err := svc.UpsertMine(identityContext(t, "intern-1", user.RoleIntern), evaluation.UpsertRequest{WorkSummary: "v1", Reflection: "r1"})
	require.NoError(t, err)

	ctx := identityContext(t, "admin-1", user.RoleAdmin)
	grade := evaluation.GradeRequest{ID: "ev-intern-1", Discipline: 80, Initiative: 80, Teamwork: 80, Technical: 80, Communication: 80}

	_, err = svc.Grade(ctx, grade)
	require.NoError(t, err)

	_, err = svc.Grade(ctx, grade)
	assert.ErrorIs(t, err, evaluation.ErrAlreadyGraded)
}

func TestUpsertMine_LockedAfterGrading(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := newTestService(repo)
	internCtx := identityContext(t, "intern-1", user.RoleIntern)

	_, err := svc.UpsertMine(internCtx, evaluation.UpsertRequest{WorkSummary: "v1", Reflection: "r1"})
	require.NoError(t, err)

	adminCtx := identityContext(t, "admin-1", user.RoleAdmin)
	_, err = svc.Grade(adminCtx, evaluation.GradeRequest{ID: "ev-intern-1", Discipline: 80, Initiative: 80, Teamwork: 80, Technical: 80, Communication: 80})
	require.NoError(t, err)

	_, err = svc.UpsertMine(internCtx, evaluation.UpsertRequest{WorkSummary: "v3", Reflection: "r3"})
	assert.ErrorIs(t, err, evaluation.ErrAlreadyGraded)
}

func TestGrade_OutOfRangeScoreRejected(t *testing.T) {
	repo := newFakeEvaluationRepo()
	svc := newTestService(repo)

	_, err := svc.UpsertMine(identityContext(t, "intern-1", user.RoleIntern), evaluation.UpsertRequest{WorkSummary: "v1", Reflection: "r1"})
	require.NoError(t, err)

	ctx := identityContext(t, "admin-1", user.RoleAdmin)
	_, err = svc.Grade(ctx, evaluation.GradeRequest{ID: "ev-intern-1", Discipline: 101, Initiative: 80, Teamwork: 80, Technical: 80, Communication: 80})
	assert.Error(t, err)
}
