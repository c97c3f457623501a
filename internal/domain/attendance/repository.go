package attendance

import (
	"context"
	"time"
)

// DerivedRepository defines data access methods for derived attendance rows.
type DerivedRepository interface {
	// Upsert inserts or replaces the derived attendance for the row's
	// employee and date
	Upsert(ctx context.Context, derived Derived) error

	// GetByEmployeeAndDate retrieves the derived attendance for one employee
	// on one calendar day
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Derived, error)
}
