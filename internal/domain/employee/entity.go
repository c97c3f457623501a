package employee

import (
	"time"
)

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Employee struct {
	ID        string
	FullName  string
	DeviceID  *string // identifier on the biometric device, distinct from ID
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
