package regularization

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/employee"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
	attendancesvc "github.com/biotrackhr/biotrack-backend-go/internal/service/attendance"
)

type ServiceImpl struct {
	tx           regularization.TxRunner
	settingsRepo regularization.SettingsRepository
	requestRepo  regularization.RequestRepository
	employeeRepo employee.EmployeeRepository
	checkinRepo  checkin.EventRepository
	derivedRepo  attendance.DerivedRepository
}

func NewService(
	tx regularization.TxRunner,
	settingsRepo regularization.SettingsRepository,
	requestRepo regularization.RequestRepository,
	employeeRepo employee.EmployeeRepository,
	checkinRepo checkin.EventRepository,
	derivedRepo attendance.DerivedRepository,
) regularization.Service {
	return &ServiceImpl{
		tx:           tx,
		settingsRepo: settingsRepo,
		requestRepo:  requestRepo,
		employeeRepo: employeeRepo,
		checkinRepo:  checkinRepo,
		derivedRepo:  derivedRepo,
	}
}

// evaluateFresh loads settings and the current month's approved count, then
// runs the engine. The monthly cap is a soft business limit, so dependency
// failures fail open rather than blocking the user.
func (s *ServiceImpl) evaluateFresh(ctx context.Context, employeeID string, date time.Time) regularization.Decision {
	if employeeID == "" || date.IsZero() {
		return Evaluate(employeeID, date, regularization.Settings{}, 0)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		slog.Warn("regularization settings unavailable, failing open", "error", err)
		return regularization.Decision{
			Outcome: regularization.OutcomeAllowed,
			Reason:  "regularization settings unavailable, limit not enforced",
		}
	}

	if !settings.Enabled {
		return Evaluate(employeeID, date, settings, 0)
	}

	monthStart, monthEnd := MonthBounds(date)
	count, err := s.requestRepo.CountApprovedInRange(ctx, employeeID, monthStart, monthEnd)
	if err != nil {
		slog.Warn("approved regularization count unavailable, failing open",
			"employee_id", employeeID, "error", err)
		return regularization.Decision{
			Outcome: regularization.OutcomeAllowed,
			Reason:  "approved request count unavailable, limit not enforced",
		}
	}

	return Evaluate(employeeID, date, settings, count)
}

// CheckEligibility implements regularization.Service.
func (s *ServiceImpl) CheckEligibility(ctx context.Context, employeeID string, date time.Time) (regularization.Decision, error) {
	return s.evaluateFresh(ctx, employeeID, date), nil
}

// Create implements regularization.Service.
func (s *ServiceImpl) Create(ctx context.Context, req regularization.CreateRequest) (regularization.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return regularization.RequestResponse{}, employee.ErrEmployeeNotFound
		}
		return regularization.RequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// Commit-time check with a fresh count. The reactive check the UI ran
	// earlier may be stale if another request was approved in between.
	decision := s.evaluateFresh(ctx, req.EmployeeID, date)
	if decision.Outcome == regularization.OutcomeDenied {
		return regularization.RequestResponse{}, &regularization.DeniedError{Decision: decision}
	}

	data := regularization.Request{
		EmployeeID:    req.EmployeeID,
		Date:          date,
		InTime:        combineDateAndTime(date, req.InTime),
		OutTime:       combineDateAndTime(date, req.OutTime),
		Reason:        req.Reason,
		WorkflowState: regularization.StatePendingHR,
		Submitted:     false,
	}

	created, err := s.requestRepo.Create(ctx, data)
	if err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to create regularization request: %w", err)
	}

	return mapRequestToResponse(created), nil
}

// Approve implements regularization.Service.
func (s *ServiceImpl) Approve(ctx context.Context, req regularization.ApproveRequest) (regularization.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	r, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, regularization.ErrRequestNotFound) {
			return regularization.RequestResponse{}, regularization.ErrRequestNotFound
		}
		return regularization.RequestResponse{}, fmt.Errorf("failed to get request: %w", err)
	}

	if r.WorkflowState == regularization.StateApprovedByHR || r.WorkflowState == regularization.StateRejectedByHR {
		return regularization.RequestResponse{}, regularization.ErrRequestAlreadyProcessed
	}

	if r.InTime == nil || r.OutTime == nil {
		return regularization.RequestResponse{}, regularization.ErrMissingTimes
	}
	if err := attendancesvc.ValidateWindow(r.InTime, r.OutTime); err != nil {
		return regularization.RequestResponse{}, err
	}

	now := time.Now()
	r.WorkflowState = regularization.StateApprovedByHR
	r.Submitted = true
	r.ApprovedBy = &req.ApproverID
	r.ApprovedAt = &now
	r.RejectionNote = nil

	if err := s.requestRepo.Update(ctx, r); err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to approve request: %w", err)
	}

	if err := s.materializeCheckins(ctx, r); err != nil {
		// The approval itself stands; the derived data can be rebuilt later.
		slog.Error("failed to materialize check-ins for approved request",
			"request_id", r.ID, "employee_id", r.EmployeeID, "error", err)
	}

	return mapRequestToResponse(r), nil
}

// materializeCheckins creates the missing IN/OUT events for an approved
// request and upserts the derived attendance as present, all inside one
// transaction so a failed upsert does not leave orphaned events. Idempotent
// per (employee, date, log type).
func (s *ServiceImpl) materializeCheckins(ctx context.Context, r regularization.Request) error {
	return s.tx.Run(ctx, func(ctx context.Context) error {
		return s.writeMaterialized(ctx, r)
	})
}

func (s *ServiceImpl) writeMaterialized(ctx context.Context, r regularization.Request) error {
	entries := []struct {
		logType string
		t       time.Time
	}{
		{checkin.LogTypeIn, *r.InTime},
		{checkin.LogTypeOut, *r.OutTime},
	}

	for _, e := range entries {
		exists, err := s.checkinRepo.ExistsForDate(ctx, r.EmployeeID, r.Date, e.logType)
		if err != nil {
			return fmt.Errorf("failed to check existing %s event: %w", e.logType, err)
		}
		if exists {
			continue
		}
		_, err = s.checkinRepo.Create(ctx, checkin.Event{
			EmployeeID: r.EmployeeID,
			Time:       e.t,
			LogType:    e.logType,
		})
		if err != nil {
			return fmt.Errorf("failed to create %s event: %w", e.logType, err)
		}
	}

	derived := attendance.Derived{
		EmployeeID: r.EmployeeID,
		Date:       r.Date,
		InTime:     r.InTime,
		OutTime:    r.OutTime,
		Status:     attendance.StatusPresent,
	}
	if err := s.derivedRepo.Upsert(ctx, derived); err != nil {
		return fmt.Errorf("failed to upsert derived attendance: %w", err)
	}

	return nil
}

// Reject implements regularization.Service.
func (s *ServiceImpl) Reject(ctx context.Context, req regularization.RejectRequest) (regularization.RequestResponse, error) {
	if err := req.Validate(); err != nil {
		return regularization.RequestResponse{}, err
	}

	r, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, regularization.ErrRequestNotFound) {
			return regularization.RequestResponse{}, regularization.ErrRequestNotFound
		}
		return regularization.RequestResponse{}, fmt.Errorf("failed to get request: %w", err)
	}

	if r.WorkflowState == regularization.StateApprovedByHR || r.WorkflowState == regularization.StateRejectedByHR {
		return regularization.RequestResponse{}, regularization.ErrRequestAlreadyProcessed
	}

	now := time.Now()
	r.WorkflowState = regularization.StateRejectedByHR
	r.ApprovedBy = &req.ApproverID
	r.ApprovedAt = &now
	r.RejectionNote = &req.Reason

	if err := s.requestRepo.Update(ctx, r); err != nil {
		return regularization.RequestResponse{}, fmt.Errorf("failed to reject request: %w", err)
	}

	return mapRequestToResponse(r), nil
}

// Get implements regularization.Service.
func (s *ServiceImpl) Get(ctx context.Context, id string) (regularization.RequestResponse, error) {
	r, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, regularization.ErrRequestNotFound) {
			return regularization.RequestResponse{}, regularization.ErrRequestNotFound
		}
		return regularization.RequestResponse{}, fmt.Errorf("failed to get request: %w", err)
	}

	return mapRequestToResponse(r), nil
}

// List implements regularization.Service.
func (s *ServiceImpl) List(ctx context.Context, filter regularization.RequestFilter) (regularization.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return regularization.ListResponse{}, err
	}

	requests, total, err := s.requestRepo.List(ctx, filter)
	if err != nil {
		return regularization.ListResponse{}, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]regularization.RequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, mapRequestToResponse(r))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return regularization.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Requests:   responses,
	}, nil
}

// combineDateAndTime joins a calendar day with an HH:MM:SS string. Returns
// nil when the time is absent; the caller already validated the format.
func combineDateAndTime(date time.Time, hhmmss *string) *time.Time {
	if hhmmss == nil || *hhmmss == "" {
		return nil
	}
	t, err := time.Parse("15:04:05", *hhmmss)
	if err != nil {
		return nil
	}
	combined := time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location())
	return &combined
}

// timePtrToClock safely formats a *time.Time as HH:MM:SS.
func timePtrToClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("15:04:05")
	return &formatted
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format("2006-01-02 15:04:05")
	return &formatted
}

// mapRequestToResponse converts a Request entity to RequestResponse
func mapRequestToResponse(r regularization.Request) regularization.RequestResponse {
	return regularization.RequestResponse{
		ID:            r.ID,
		EmployeeID:    r.EmployeeID,
		EmployeeName:  r.EmployeeName,
		Date:          r.Date.Format("2006-01-02"),
		InTime:        timePtrToClock(r.InTime),
		OutTime:       timePtrToClock(r.OutTime),
		Reason:        r.Reason,
		WorkflowState: r.WorkflowState,
		Submitted:     r.Submitted,
		ApprovedBy:    r.ApprovedBy,
		ApprovedAt:    timePtrToString(r.ApprovedAt),
		RejectionNote: r.RejectionNote,
		CreatedAt:     r.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:     r.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
