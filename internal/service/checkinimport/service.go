package checkinimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/employee"
)

// ImportSummary reports what an import run did. Errors carries the per-row
// failures; a non-empty list does not mean the batch failed.
type ImportSummary struct {
	Inserted int        `json:"inserted"`
	Skipped  int        `json:"skipped"`
	Errors   []RowError `json:"errors"`
}

// Service normalizes a raw device export and persists the resulting events.
type Service interface {
	Import(ctx context.Context, rawText string) (ImportSummary, error)
}

type ServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	checkinRepo  checkin.EventRepository
	mapping      PunchMapping
}

func NewService(
	employeeRepo employee.EmployeeRepository,
	checkinRepo checkin.EventRepository,
	mapping PunchMapping,
) Service {
	return &ServiceImpl{
		employeeRepo: employeeRepo,
		checkinRepo:  checkinRepo,
		mapping:      mapping,
	}
}

// Import implements Service. Rows are processed strictly one at a time so
// progress and error attribution stay per-row deterministic; cancellation
// stops before the next row with no rollback of rows already persisted.
func (s *ServiceImpl) Import(ctx context.Context, rawText string) (ImportSummary, error) {
	parser, err := NewParser(rawText, s.mapping)
	if err != nil {
		return ImportSummary{}, err
	}

	summary := ImportSummary{}

	for {
		if err := ctx.Err(); err != nil {
			summary.Errors = append(summary.Errors, parser.Errors()...)
			return summary, fmt.Errorf("import cancelled: %w", err)
		}

		row, ok := parser.Next()
		if !ok {
			break
		}

		emp, err := s.employeeRepo.GetByDeviceID(ctx, row.DeviceEmployeeID)
		if err != nil {
			if errors.Is(err, employee.ErrDeviceIDNotFound) {
				summary.Errors = append(summary.Errors, RowError{
					Line:   row.Line,
					Reason: fmt.Sprintf("no employee registered for device id %q", row.DeviceEmployeeID),
				})
				continue
			}
			// Lookup infrastructure failure aborts this row, not the batch.
			slog.Error("employee lookup failed, skipping row",
				"line", row.Line, "device_employee_id", row.DeviceEmployeeID, "error", err)
			summary.Errors = append(summary.Errors, RowError{
				Line:   row.Line,
				Reason: "employee lookup failed",
			})
			continue
		}

		ts, err := time.Parse("2006-01-02 15:04:05", row.Timestamp)
		if err != nil {
			summary.Errors = append(summary.Errors, RowError{
				Line:   row.Line,
				Reason: fmt.Sprintf("invalid timestamp %q", row.Timestamp),
			})
			continue
		}

		exists, err := s.checkinRepo.Exists(ctx, emp.ID, ts)
		if err != nil {
			slog.Error("duplicate check failed, skipping row",
				"line", row.Line, "employee_id", emp.ID, "error", err)
			summary.Errors = append(summary.Errors, RowError{
				Line:   row.Line,
				Reason: "duplicate check failed",
			})
			continue
		}
		if exists {
			summary.Skipped++
			continue
		}

		deviceID := row.DeviceEmployeeID
		_, err = s.checkinRepo.Create(ctx, checkin.Event{
			EmployeeID: emp.ID,
			Time:       ts,
			LogType:    row.Direction,
			DeviceID:   &deviceID,
		})
		if err != nil {
			// A concurrent writer may have landed the same punch between the
			// Exists check and the insert.
			if errors.Is(err, checkin.ErrDuplicateEvent) {
				summary.Skipped++
				continue
			}
			summary.Errors = append(summary.Errors, RowError{
				Line:   row.Line,
				Reason: "failed to persist check-in event",
			})
			continue
		}

		summary.Inserted++
	}

	summary.Errors = append(summary.Errors, parser.Errors()...)
	return summary, nil
}
