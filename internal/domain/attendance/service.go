package attendance

import (
	"context"
	"time"
)

// Service defines business logic for attendance reconstruction
type Service interface {
	// DeriveDay reconstructs one employee's attendance for one day from raw
	// check-in events and persists the derived row
	DeriveDay(ctx context.Context, employeeID string, date time.Time) (DerivedResponse, error)

	// ReconstructAll reconstructs attendance for every active employee on the
	// given day
	ReconstructAll(ctx context.Context, date time.Time) (ReconstructResult, error)

	// GetDerived retrieves the stored derived attendance for one employee and
	// day without recomputing it
	GetDerived(ctx context.Context, employeeID string, date time.Time) (DerivedResponse, error)

	// MissingCheckins lists active employees with no check-in events on the
	// given day
	MissingCheckins(ctx context.Context, date time.Time) ([]MissingCheckinRow, error)
}
