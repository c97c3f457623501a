package checkin

import "errors"

// Checkin domain errors
var (
	ErrDuplicateEvent = errors.New("check-in event already recorded for this employee and time")
)
