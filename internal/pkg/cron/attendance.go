package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceSvc attendance.Service
}

func NewAttendanceJobs(attendanceSvc attendance.Service) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconstruct_daily_attendance", 1*time.Hour, j.ReconstructYesterday)
	scheduler.AddJob("report_missing_checkins", 1*time.Hour, j.ReportMissingCheckins)
}

// ReconstructYesterday rebuilds derived attendance for the previous day from
// the check-in events collected through it.
func (j *AttendanceJobs) ReconstructYesterday(ctx context.Context) error {
	// Only run at 01:00-01:59 UTC, after the day's imports have landed
	if time.Now().UTC().Hour() != 1 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	slog.Info("Cron: Starting daily attendance reconstruction", "date", yesterday.Format("2006-01-02"))

	result, err := j.attendanceSvc.ReconstructAll(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to reconstruct attendance: %w", err)
	}

	slog.Info("Cron: Daily attendance reconstruction finished",
		"date", result.Date,
		"processed", result.Processed,
		"with_events", result.WithEvents)
	return nil
}

// ReportMissingCheckins logs the active employees with no check-in events for
// the previous day so HR can chase regularizations.
func (j *AttendanceJobs) ReportMissingCheckins(ctx context.Context) error {
	// Only run at 02:00-02:59 UTC, after reconstruction
	if time.Now().UTC().Hour() != 2 {
		return nil
	}

	yesterday := time.Now().UTC().AddDate(0, 0, -1).Truncate(24 * time.Hour)

	rows, err := j.attendanceSvc.MissingCheckins(ctx, yesterday)
	if err != nil {
		return fmt.Errorf("failed to list missing check-ins: %w", err)
	}

	if len(rows) == 0 {
		slog.Info("Cron: No employees missing check-ins", "date", yesterday.Format("2006-01-02"))
		return nil
	}

	for _, row := range rows {
		slog.Warn("Cron: Employee missing check-ins",
			"employee_id", row.EmployeeID,
			"employee_name", row.EmployeeName,
			"date", row.Date)
	}

	slog.Info("Cron: Missing check-in report finished",
		"date", yesterday.Format("2006-01-02"), "count", len(rows))
	return nil
}
