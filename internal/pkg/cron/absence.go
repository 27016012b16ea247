package cron

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/simagang/presensi-backend-go/internal/domain/attendance"
	"github.com/simagang/presensi-backend-go/internal/domain/policy"
	"github.com/simagang/presensi-backend-go/internal/domain/user"
	"github.com/simagang/presensi-backend-go/internal/pkg/civil"
)

type AbsenceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	profileRepo    user.InternshipProfileRepository
	policyRepo     policy.PolicyRepository

	// now is the clock; replaced in tests.
	now func() time.Time
}

func NewAbsenceJobs(
	attendanceRepo attendance.AttendanceRepository,
	profileRepo user.InternshipProfileRepository,
	policyRepo policy.PolicyRepository,
) *AbsenceJobs {
	return &AbsenceJobs{
		attendanceRepo: attendanceRepo,
		profileRepo:    profileRepo,
		policyRepo:     policyRepo,
		now:            time.Now,
	}
}

func (j *AbsenceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_interns", 1*time.Hour, j.MarkAbsentInterns)
}

// MarkAbsentInterns writes an ALPHA row for every intern whose placement
// covered yesterday but who produced no attendance row on it. Runs in the
// first hour of the WIB day; other invocations are no-ops.
func (j *AbsenceJobs) MarkAbsentInterns(ctx context.Context) error {
	now := j.now()
	if civil.In(now).Hour() != 0 {
		return nil
	}

	yesterday := civil.DayStart(now.Add(-24 * time.Hour))

	pol, err := j.policyRepo.Get(ctx)
	if err != nil {
		// Resolver degrades to defaults on unreadable config.
		pol = nil
	}
	if !policy.ResolveWindow(pol, yesterday).IsOperatingDay {
		return nil
	}

	profiles, err := j.profileRepo.ListActiveOn(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list active internship profiles: %w", err)
	}

	marked := 0
	for _, profile := range profiles {
		existing, err := j.attendanceRepo.GetByUserAndDate(ctx, profile.UserID, yesterday)
		if err != nil {
			slog.Error("Cron: failed to look up attendance", "user_id", profile.UserID, "error", err)
			continue
		}
		if existing != nil {
			continue
		}

		_, err = j.attendanceRepo.Create(ctx, attendance.Attendance{
			UserID:  profile.UserID,
			Date:    yesterday,
			CheckIn: attendance.ClockSentinel,
			Status:  attendance.StatusAlpha,
		})
		if err != nil {
			// A concurrent writer beat us to the row; the uniqueness
			// constraint keeps the ledger consistent either way.
			if errors.Is(err, attendance.ErrAlreadyCheckedIn) {
				continue
			}
			slog.Error("Cron: failed to mark absence", "user_id", profile.UserID, "error", err)
			continue
		}
		marked++
	}

	if marked > 0 {
		slog.Info("Cron: marked absent interns", "date", yesterday.Format("2006-01-02"), "count", marked)
	}
	return nil
}
