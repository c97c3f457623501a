package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/employee"
)

type ServiceImpl struct {
	checkinRepo  checkin.EventRepository
	employeeRepo employee.EmployeeRepository
	derivedRepo  attendance.DerivedRepository
}

func NewService(
	checkinRepo checkin.EventRepository,
	employeeRepo employee.EmployeeRepository,
	derivedRepo attendance.DerivedRepository,
) attendance.Service {
	return &ServiceImpl{
		checkinRepo:  checkinRepo,
		employeeRepo: employeeRepo,
		derivedRepo:  derivedRepo,
	}
}

// DeriveDay implements attendance.Service.
func (s *ServiceImpl) DeriveDay(ctx context.Context, employeeID string, date time.Time) (attendance.DerivedResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.DerivedResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.DerivedResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	events, err := s.checkinRepo.ListByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.DerivedResponse{}, fmt.Errorf("failed to list check-in events: %w", err)
	}

	derived := Reconstruct(employeeID, date, events)

	if err := s.derivedRepo.Upsert(ctx, derived); err != nil {
		return attendance.DerivedResponse{}, fmt.Errorf("failed to upsert derived attendance: %w", err)
	}

	return mapDerivedToResponse(derived), nil
}

// ReconstructAll implements attendance.Service.
func (s *ServiceImpl) ReconstructAll(ctx context.Context, date time.Time) (attendance.ReconstructResult, error) {
	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return attendance.ReconstructResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	result := attendance.ReconstructResult{Date: date.Format("2006-01-02")}

	for _, emp := range employees {
		events, err := s.checkinRepo.ListByEmployeeAndDate(ctx, emp.ID, date)
		if err != nil {
			slog.Error("failed to list check-in events, skipping employee",
				"employee_id", emp.ID, "date", result.Date, "error", err)
			continue
		}

		derived := Reconstruct(emp.ID, date, events)
		if err := s.derivedRepo.Upsert(ctx, derived); err != nil {
			slog.Error("failed to upsert derived attendance, skipping employee",
				"employee_id", emp.ID, "date", result.Date, "error", err)
			continue
		}

		result.Processed++
		if len(events) > 0 {
			result.WithEvents++
		}
	}

	return result, nil
}

// GetDerived implements attendance.Service.
func (s *ServiceImpl) GetDerived(ctx context.Context, employeeID string, date time.Time) (attendance.DerivedResponse, error) {
	derived, err := s.derivedRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrDerivedNotFound) {
			return attendance.DerivedResponse{}, attendance.ErrDerivedNotFound
		}
		return attendance.DerivedResponse{}, fmt.Errorf("failed to get derived attendance: %w", err)
	}

	return mapDerivedToResponse(derived), nil
}

// MissingCheckins implements attendance.Service.
func (s *ServiceImpl) MissingCheckins(ctx context.Context, date time.Time) ([]attendance.MissingCheckinRow, error) {
	employees, err := s.employeeRepo.ListActiveMissingCheckins(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees missing check-ins: %w", err)
	}

	rows := make([]attendance.MissingCheckinRow, 0, len(employees))
	for _, emp := range employees {
		rows = append(rows, attendance.MissingCheckinRow{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Date:         date.Format("2006-01-02"),
		})
	}

	return rows, nil
}

func mapDerivedToResponse(d attendance.Derived) attendance.DerivedResponse {
	clock := func(t *time.Time) *string {
		if t == nil {
			return nil
		}
		s := t.Format("15:04:05")
		return &s
	}

	return attendance.DerivedResponse{
		EmployeeID: d.EmployeeID,
		Date:       d.Date.Format("2006-01-02"),
		InTime:     clock(d.InTime),
		OutTime:    clock(d.OutTime),
		Status:     d.Status,
	}
}
