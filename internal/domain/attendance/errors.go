package attendance

import "errors"

// Attendance domain errors
var (
	ErrDerivedNotFound = errors.New("no derived attendance found for the given employee and date")
)
