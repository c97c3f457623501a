package regularization

import (
	"context"
	"time"
)

// Service defines business logic for regularization requests
type Service interface {
	// CheckEligibility runs the reactive eligibility check for an employee and
	// date. It never fails closed: dependency errors degrade to Allowed.
	CheckEligibility(ctx context.Context, employeeID string, date time.Time) (Decision, error)

	// Create creates a new request after re-running the eligibility check with
	// a fresh approved count (the authoritative commit-time check)
	Create(ctx context.Context, req CreateRequest) (RequestResponse, error)

	// Approve moves a pending request to approved_by_hr and materializes the
	// missing check-in events and the derived attendance row
	Approve(ctx context.Context, req ApproveRequest) (RequestResponse, error)

	// Reject moves a pending request to rejected_by_hr with a reason
	Reject(ctx context.Context, req RejectRequest) (RequestResponse, error)

	// Get retrieves a single request by ID
	Get(ctx context.Context, id string) (RequestResponse, error)

	// List retrieves requests with filters
	List(ctx context.Context, filter RequestFilter) (ListResponse, error)
}
