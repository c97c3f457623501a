package regularization

import (
	"strings"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"` // YYYY-MM-DD
	InTime     *string `json:"in_time,omitempty"`
	OutTime    *string `json:"out_time,omitempty"`
	Reason     string  `json:"reason"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	var inTime, outTime time.Time
	var hasIn, hasOut bool

	if r.InTime != nil && *r.InTime != "" {
		t, err := time.Parse("15:04:05", *r.InTime)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "in_time",
				Message: "in_time must be in HH:MM:SS format",
			})
		} else {
			inTime, hasIn = t, true
		}
	}

	if r.OutTime != nil && *r.OutTime != "" {
		t, err := time.Parse("15:04:05", *r.OutTime)
		if err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "out_time",
				Message: "out_time must be in HH:MM:SS format",
			})
		} else {
			outTime, hasOut = t, true
		}
	}

	// When both edges are set, in must be strictly before out.
	if hasIn && hasOut && !inTime.Before(outTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "in_time",
			Message: "in_time must be before out_time",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	InTime        *string `json:"in_time,omitempty"`
	OutTime       *string `json:"out_time,omitempty"`
	Reason        string  `json:"reason"`
	WorkflowState string  `json:"workflow_state"`
	Submitted     bool    `json:"submitted"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	RejectionNote *string `json:"rejection_note,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type RequestFilter struct {
	EmployeeID    *string `json:"employee_id,omitempty"`
	WorkflowState *string `json:"workflow_state,omitempty"`
	StartDate     *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate       *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *RequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.WorkflowState != nil {
		validStates := []string{StateDraft, StatePendingHR, StateApprovedByHR, StateRejectedByHR}
		if !validator.IsInSlice(strings.ToLower(*f.WorkflowState), validStates) {
			errs = append(errs, validator.ValidationError{
				Field:   "workflow_state",
				Message: "workflow_state must be one of: draft, pending_hr, approved_by_hr, rejected_by_hr",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Requests   []RequestResponse `json:"requests"`
}

type ApproveRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"approver_id"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectRequest struct {
	ID         string `json:"-"`
	ApproverID string `json:"approver_id"`
	Reason     string `json:"reason"`
}

func (r *RejectRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ApproverID) {
		errs = append(errs, validator.ValidationError{
			Field:   "approver_id",
			Message: "approver_id is required",
		})
	}

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
