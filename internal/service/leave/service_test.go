package leave

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	jwxjwt "github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/domain/leave"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== Fakes =====

type fakeLeaveRepo struct {
	requests map[string]leave.LeaveRequest

	failSetStatusWith error
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	req.ID = fmt.Sprintf("lr-%d", len(f.requests)+1)
	f.requests[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	req, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return req, nil
}

func (f *fakeLeaveRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*leave.LeaveRequest, error) {
	for _, req := range f.requests {
		if req.UserID == userID && req.Date.Equal(date) {
			r := req
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeLeaveRepo) SetStatus(ctx context.Context, id, status, decidedBy string, decidedAt time.Time) error {
	if f.failSetStatusWith != nil {
		return f.failSetStatusWith
	}
	req, ok := f.requests[id]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	req.Status = status
	req.DecidedBy = &decidedBy
	req.DecidedAt = &decidedAt
	f.requests[id] = req
	return nil
}

func (f *fakeLeaveRepo) List(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, req := range f.requests {
		if filter.UserID != "" && req.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, req)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) ListByUser(ctx context.Context, userID string, filter leave.ListFilter) ([]leave.LeaveRequest, int64, error) {
	filter.UserID = userID
	return f.List(ctx, filter)
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance

	failUpsertWith error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Attendance)}
}

func attKey(userID string, date time.Time) string {
	return fmt.Sprintf("%s|%s", userID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	key := attKey(att.UserID, att.Date)
	if _, exists := f.records[key]; exists {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	att.ID = fmt.Sprintf("att-%d", len(f.records)+1)
	f.records[key] = att
	return att, nil
}

func (f *fakeAttendanceRepo) GetByUserAndDate(ctx context.Context, userID string, date time.Time) (*attendance.Attendance, error) {
	att, ok := f.records[attKey(userID, date)]
	if !ok {
		return nil, nil
	}
	return &att, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, att attendance.Attendance) error {
	f.records[attKey(att.UserID, att.Date)] = att
	return nil
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, userID string, date time.Time, status, checkIn string) error {
	if f.failUpsertWith != nil {
		return f.failUpsertWith
	}
	key := attKey(userID, date)
	att, ok := f.records[key]
	if !ok {
		att = attendance.Attendance{ID: fmt.Sprintf("att-%d", len(f.records)+1), UserID: userID, Date: date}
	}
	att.Status = status
	att.CheckIn = checkIn
	att.CheckOut = nil
	f.records[key] = att
	return nil
}

func (f *fakeAttendanceRepo) DeleteIfStatus(ctx context.Context, userID string, date time.Time, expectedStatus string) (int64, error) {
	key := attKey(userID, date)
	att, ok := f.records[key]
	if !ok || att.Status != expectedStatus {
		return 0, nil
	}
	delete(f.records, key)
	return 1, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

// fakeTxManager runs the unit of work directly; the fakes have no rollback,
// so atomicity tests assert on error propagation instead.
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeFileService struct{}

func (f *fakeFileService) UploadLeaveAttachment(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return "leave-attachments/" + userID + "/" + filename, nil
}

func (f *fakeFileService) UploadAvatar(ctx context.Context, userID string, file io.Reader, filename string) (string, error) {
	return "avatars/" + userID + "/" + filename, nil
}

func (f *fakeFileService) DeleteFile(ctx context.Context, path string) error {
	return nil
}

// ===== Helpers =====

func identityContext(t *testing.T, userID string, role user.Role) context.Context {
	t.Helper()
	token := jwxjwt.New()
	require.NoError(t, token.Set("user_id", userID))
	require.NoError(t, token.Set("email", userID+"@example.com"))
	require.NoError(t, token.Set("role", string(role)))
	require.NoError(t, token.Set("type", "access"))
	return jwtauth.NewContext(context.Background(), token, nil)
}

func wibDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.FixedZone("WIB", 7*60*60))
}

type testEnv struct {
	svc     *LeaveServiceImpl
	leaves  *fakeLeaveRepo
	attRepo *fakeAttendanceRepo
	txm     *fakeTxManager
}

func newTestEnv() testEnv {
	leaves := newFakeLeaveRepo()
	attRepo := newFakeAttendanceRepo()
	txm := &fakeTxManager{}
	svc := NewLeaveService(txm, leaves, attRepo, &fakeFileService{}).(*LeaveServiceImpl)
	svc.now = func() time.Time { return wibDay(2026, 3, 3) }
	return testEnv{svc: svc, leaves: leaves, attRepo: attRepo, txm: txm}
}

func submitPending(t *testing.T, env testEnv, userID string, date time.Time) string {
	t.Helper()
	req, err := env.leaves.Create(context.Background(), leave.LeaveRequest{
		UserID:      userID,
		Date:        date,
		Reason:      "sick",
		Status:      leave.StatusPending,
		SubmittedAt: wibDay(2026, 3, 1),
	})
	require.NoError(t, err)
	return req.ID
}

// ===== Submit =====

func TestSubmit_CreatesPendingRequest(t *testing.T) {
	env := newTestEnv()
	ctx := identityContext(t, "intern-1", user.RoleIntern)

	resp, err := env.svc.Submit(ctx, leave.SubmitRequest{Date: "2026-03-04", Reason: "family matter"})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "2026-03-04", resp.Date)
	assert.Nil(t, resp.DecidedBy)
}

func TestSubmit_DuplicateDateRejected(t *testing.T) {
	env := newTestEnv()
	ctx := identityContext(t, "intern-1", user.RoleIntern)

	_, err := env.svc.Submit(ctx, leave.SubmitRequest{Date: "2026-03-04", Reason: "first"})
	require.NoError(t, err)

	_, err = env.svc.Submit(ctx, leave.SubmitRequest{Date: "2026-03-04", Reason: "second"})
	assert.ErrorIs(t, err, leave.ErrDuplicateRequest)
}

func TestSubmit_InvalidDateRejected(t *testing.T) {
	env := newTestEnv()
	ctx := identityContext(t, "intern-1", user.RoleIntern)

	_, err := env.svc.Submit(ctx, leave.SubmitRequest{Date: "04-03-2026", Reason: "x"})
	assert.Error(t, err)
}

// ===== Decide: approval =====

func TestDecide_ApprovalWritesExcusedRow(t *testing.T) {
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	id := submitPending(t, env, "intern-1", date)
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	resp, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	require.NoError(t, err)

	assert.Equal(t, leave.StatusApproved, resp.Status)
	require.NotNil(t, resp.DecidedBy)
	assert.Equal(t, "admin-1", *resp.DecidedBy)

	rec, err := env.attRepo.GetByUserAndDate(context.Background(), "intern-1", date)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusIzin, rec.Status)
	assert.Equal(t, attendance.ClockSentinel, rec.CheckIn)
	assert.Equal(t, 1, env.txm.calls)
}

func TestDecide_ApprovalIsIdempotent(t *testing.T) {
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	id := submitPending(t, env, "intern-1", date)
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	require.NoError(t, err)
	_, err = env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	require.NoError(t, err)

	rec, err := env.attRepo.GetByUserAndDate(context.Background(), "intern-1", date)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusIzin, rec.Status)
	assert.Len(t, env.attRepo.records, 1, "re-approval must not create a second row")
}

func TestDecide_ApprovalOverwritesSameDayCheckIn(t *testing.T) {
	// The intern checked in late, then the leave for that day was approved:
	// the approval wins and the TELAT row becomes IZIN.
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	_, err := env.attRepo.Create(context.Background(), attendance.Attendance{
		UserID:  "intern-1",
		Date:    date,
		CheckIn: "08:15",
		Status:  attendance.StatusTelat,
	})
	require.NoError(t, err)

	id := submitPending(t, env, "intern-1", date)
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err = env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	require.NoError(t, err)

	rec, err := env.attRepo.GetByUserAndDate(context.Background(), "intern-1", date)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusIzin, rec.Status)
	assert.Equal(t, attendance.ClockSentinel, rec.CheckIn)
}

// ===== Decide: rejection =====

func TestDecide_RejectionRemovesOnlyExcusedRow(t *testing.T) {
	// Approve then re-decide as rejected: the IZIN row written by the
	// approval is retracted.
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	id := submitPending(t, env, "intern-1", date)
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	require.NoError(t, err)

	resp, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, resp.Status)

	rec, err := env.attRepo.GetByUserAndDate(context.Background(), "intern-1", date)
	require.NoError(t, err)
	assert.Nil(t, rec, "the IZIN row must be retracted")
}

func TestDecide_RejectionKeepsGenuineCheckIn(t *testing.T) {
	// The intern physically checked in on the requested day; rejecting the
	// leave must not delete that HADIR row.
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	_, err := env.attRepo.Create(context.Background(), attendance.Attendance{
		UserID:  "intern-1",
		Date:    date,
		CheckIn: "07:05",
		Status:  attendance.StatusHadir,
	})
	require.NoError(t, err)

	id := submitPending(t, env, "intern-1", date)
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err = env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusRejected})
	require.NoError(t, err)

	rec, err := env.attRepo.GetByUserAndDate(context.Background(), "intern-1", date)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attendance.StatusHadir, rec.Status)
	assert.Equal(t, "07:05", rec.CheckIn)
}

func TestDecide_RejectionIsIdempotent(t *testing.T) {
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	id := submitPending(t, env, "intern-1", date)
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusRejected})
	require.NoError(t, err)
	_, err = env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusRejected})
	require.NoError(t, err)

	rec, err := env.attRepo.GetByUserAndDate(context.Background(), "intern-1", date)
	require.NoError(t, err)
	assert.Nil(t, rec)
}

// ===== Decide: guards =====

func TestDecide_NonAdminForbidden(t *testing.T) {
	env := newTestEnv()
	id := submitPending(t, env, "intern-1", wibDay(2026, 3, 4))
	ctx := identityContext(t, "intern-1", user.RoleIntern)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	assert.ErrorIs(t, err, leave.ErrAdminOnly)
}

func TestDecide_UnknownRequestNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: "missing", Decision: leave.StatusApproved})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestDecide_InvalidDecisionRejected(t *testing.T) {
	env := newTestEnv()
	id := submitPending(t, env, "intern-1", wibDay(2026, 3, 4))
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: "MAYBE"})
	assert.Error(t, err)
}

func TestDecide_LedgerFailureAbortsDecision(t *testing.T) {
	env := newTestEnv()
	date := wibDay(2026, 3, 4)
	id := submitPending(t, env, "intern-1", date)
	env.attRepo.failUpsertWith = errors.New("connection reset")
	ctx := identityContext(t, "admin-1", user.RoleAdmin)

	_, err := env.svc.Decide(ctx, leave.DecideRequest{ID: id, Decision: leave.StatusApproved})
	require.Error(t, err)
	assert.Equal(t, 1, env.txm.calls, "the failing mutation must run inside the transaction")
}
