package regularization

import "errors"

// Regularization domain errors
var (
	ErrRequestNotFound         = errors.New("regularization request not found")
	ErrRequestAlreadyProcessed = errors.New("regularization request has already been approved or rejected")
	ErrMissingTimes            = errors.New("in time and out time are required before approval")
)

// DeniedError wraps a Denied decision when request creation is blocked by the
// monthly cap. The denial is a policy outcome, not a system failure; it maps
// to a conflict at the HTTP layer.
type DeniedError struct {
	Decision Decision
}

func (e *DeniedError) Error() string {
	return e.Decision.Reason
}
