package checkin

import (
	"time"
)

// Log types of a check-in event. The log type comes from the device feed and
// is unreliable; attendance reconstruction never depends on it.
const (
	LogTypeIn  = "IN"
	LogTypeOut = "OUT"
)

// Event is a single biometric punch record. Immutable once recorded.
type Event struct {
	ID         string
	EmployeeID string
	Time       time.Time
	LogType    string
	DeviceID   *string
	CreatedAt  time.Time
}
