package cron

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/domain/policy"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	records map[string]attendance.Attendance
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
	key := attKey(userID, date)
	att := f.records[key]
	att.UserID = userID
	att.Date = date
	att.Status = status
	att.CheckIn = checkIn
	f.records[key] = att
	return nil
}

func (f *fakeAttendanceRepo) DeleteIfStatus(ctx context.Context, userID string, date time.Time, expectedStatus string) (int64, error) {
	key := attKey(userID, date)
	if att, ok := f.records[key]; ok && att.Status == expectedStatus {
		delete(f.records, key)
		return 1, nil
	}
	return 0, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

func (f *fakeAttendanceRepo) ListByUser(ctx context.Context, userID string, filter attendance.HistoryFilter) ([]attendance.Attendance, int64, error) {
	return nil, 0, nil
}

type fakeProfileRepo struct {
	profiles []user.InternshipProfile
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, p user.InternshipProfile) (user.InternshipProfile, error) {
	f.profiles = append(f.profiles, p)
	return p, nil
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (user.InternshipProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return user.InternshipProfile{}, user.ErrProfileNotFound
}

func (f *fakeProfileRepo) ListActiveOn(ctx context.Context, date time.Time) ([]user.InternshipProfile, error) {
	var out []user.InternshipProfile
	for _, p := range f.profiles {
		if p.ActiveOn(date) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePolicyRepo struct {
	policy *policy.OperatingPolicy
}

func (f *fakePolicyRepo) Get(ctx context.Context) (*policy.OperatingPolicy, error) {
	return f.policy, nil
}

func (f *fakePolicyRepo) Upsert(ctx context.Context, p policy.OperatingPolicy) (policy.OperatingPolicy, error) {
	f.policy = &p
	return p, nil
}

func wibTime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.FixedZone("WIB", 7*60*60))
}

func internProfile(userID string) user.InternshipProfile {
	return user.InternshipProfile{
		UserID:    userID,
		StartDate: wibTime(2026, 1, 5, 0, 0),
		EndDate:   wibTime(2026, 6, 30, 0, 0),
	}
}

func TestMarkAbsentInterns_WritesAlphaRows(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	profiles := &fakeProfileRepo{profiles: []user.InternshipProfile{
		internProfile("intern-1"),
		internProfile("intern-2"),
	}}

	jobs := NewAbsenceJobs(attRepo, profiles, &fakePolicyRepo{})
	// Tuesday 00:30 WIB; yesterday is Monday 2026-03-02
	jobs.now = func() time.Time { return wibTime(2026, 3, 3, 0, 30) }

	monday := wibTime(2026, 3, 2, 0, 0)

	// intern-1 checked in on Monday, intern-2 did not
	_, err := attRepo.Create(context.Background(), attendance.Attendance{
		UserID:  "intern-1",
		Date:    monday,
		CheckIn: "07:10",
		Status:  attendance.StatusHadir,
	})
	require.NoError(t, err)

	require.NoError(t, jobs.MarkAbsentInterns(context.Background()))

	kept, err := attRepo.GetByUserAndDate(context.Background(), "intern-1", monday)
	require.NoError(t, err)
	require.NotNil(t, kept)
	assert.Equal(t, attendance.StatusHadir, kept.Status)

	marked, err := attRepo.GetByUserAndDate(context.Background(), "intern-2", monday)
	require.NoError(t, err)
	require.NotNil(t, marked)
	assert.Equal(t, attendance.StatusAlpha, marked.Status)
	assert.Equal(t, attendance.ClockSentinel, marked.CheckIn)
}

func TestMarkAbsentInterns_NoopOutsideFirstHour(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	profiles := &fakeProfileRepo{profiles: []user.InternshipProfile{internProfile("intern-1")}}

	jobs := NewAbsenceJobs(attRepo, profiles, &fakePolicyRepo{})
	jobs.now = func() time.Time { return wibTime(2026, 3, 3, 12, 0) }

	require.NoError(t, jobs.MarkAbsentInterns(context.Background()))
	assert.Empty(t, attRepo.records)
}

func TestMarkAbsentInterns_SkipsNonOperatingDay(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	profiles := &fakeProfileRepo{profiles: []user.InternshipProfile{internProfile("intern-1")}}

	jobs := NewAbsenceJobs(attRepo, profiles, &fakePolicyRepo{})
	// Monday 00:30 WIB; yesterday is Sunday
	jobs.now = func() time.Time { return wibTime(2026, 3, 2, 0, 30) }

	require.NoError(t, jobs.MarkAbsentInterns(context.Background()))
	assert.Empty(t, attRepo.records)
}

func TestMarkAbsentInterns_SkipsInternsOutsidePlacement(t *testing.T) {
	attRepo := newFakeAttendanceRepo()
	ended := user.InternshipProfile{
		UserID:    "intern-old",
		StartDate: wibTime(2025, 9, 1, 0, 0),
		EndDate:   wibTime(2026, 1, 30, 0, 0),
	}
	profiles := &fakeProfileRepo{profiles: []user.InternshipProfile{ended}}

	jobs := NewAbsenceJobs(attRepo, profiles, &fakePolicyRepo{})
	jobs.now = func() time.Time { return wibTime(2026, 3, 3, 0, 30) }

	require.NoError(t, jobs.MarkAbsentInterns(context.Background()))
	assert.Empty(t, attRepo.records)
}
