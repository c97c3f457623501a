package attendance

import (
	"time"
)

// Coarse attendance statuses derived from check-in data.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusPartial = "partial"
)

// Derived is the attendance reconstructed from raw check-in events for one
// employee and one calendar day. In and out carry the full timestamps; the
// time-of-day component is what callers usually present.
type Derived struct {
	EmployeeID string
	Date       time.Time
	InTime     *time.Time
	OutTime    *time.Time
	Status     string
	UpdatedAt  time.Time
}
