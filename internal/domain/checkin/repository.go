package checkin

import (
	"context"
	"time"
)

// EventRepository defines data access methods for check-in events.
type EventRepository interface {
	// Create inserts a new check-in event
	Create(ctx context.Context, event Event) (Event, error)

	// Exists reports whether an event for the employee at the exact timestamp
	// is already recorded. Used to deduplicate device feeds and imports.
	Exists(ctx context.Context, employeeID string, t time.Time) (bool, error)

	// ExistsForDate reports whether an event of the given log type is already
	// recorded for the employee on the given calendar day
	ExistsForDate(ctx context.Context, employeeID string, date time.Time, logType string) (bool, error)

	// ListByEmployeeAndDate retrieves all events for one employee on one
	// calendar day, ordered by time ascending
	ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Event, error)
}
