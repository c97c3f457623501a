package employee

import (
	"context"
	"time"
)

// EmployeeRepository defines data access methods for employees.
type EmployeeRepository interface {
	// GetByID retrieves an employee by canonical id
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByDeviceID resolves a device-local identifier to an employee.
	// Returns ErrDeviceIDNotFound when no active employee carries the id.
	GetByDeviceID(ctx context.Context, deviceID string) (Employee, error)

	// ListActive retrieves all active employees
	ListActive(ctx context.Context) ([]Employee, error)

	// ListActiveMissingCheckins retrieves active employees with no check-in
	// events recorded on the given calendar day
	ListActiveMissingCheckins(ctx context.Context, date time.Time) ([]Employee, error)
}
