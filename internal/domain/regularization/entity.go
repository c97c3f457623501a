package regularization

import (
	"time"
)

// Workflow states for a regularization request. State transitions are driven
// by the approve/reject operations; approved and rejected requests are
// terminal and read-only.
const (
	StateDraft        = "draft"
	StatePendingHR    = "pending_hr"
	StateApprovedByHR = "approved_by_hr"
	StateRejectedByHR = "rejected_by_hr"
)

// Settings is the process-wide regularization configuration. It is owned by
// an external settings store; this package only reads it.
type Settings struct {
	Enabled             bool
	MaxRequestsPerMonth int
}

type Request struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	InTime        *time.Time
	OutTime       *time.Time
	Reason        string
	WorkflowState string
	Submitted     bool
	ApprovedBy    *string
	ApprovedAt    *time.Time
	RejectionNote *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}

// Outcome is the result of an eligibility evaluation.
type Outcome string

const (
	// OutcomeAllowed permits creating a new request.
	OutcomeAllowed Outcome = "allowed"
	// OutcomeDenied blocks request creation because the monthly cap is reached.
	OutcomeDenied Outcome = "denied"
	// OutcomeIndeterminate means employee or date was absent and no count
	// query must be attempted. It is never conflated with a denial.
	OutcomeIndeterminate Outcome = "indeterminate"
)

// Decision is the user-facing result of an eligibility check.
type Decision struct {
	Outcome       Outcome `json:"outcome"`
	Reason        string  `json:"reason"`
	ApprovedCount int     `json:"approved_count"`
	Limit         int     `json:"limit"`
}

func (d Decision) Allowed() bool {
	return d.Outcome == OutcomeAllowed
}
