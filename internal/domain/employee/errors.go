package employee

import "errors"

// Employee domain errors
var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrDeviceIDNotFound = errors.New("no employee registered for this device id")
)
