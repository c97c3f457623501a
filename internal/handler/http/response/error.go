package response

import (
	"errors"
	"net/http"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/employee"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/validator"
	"github.com/biotrackhr/biotrack-backend-go/internal/service/checkinimport"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A denied eligibility decision carries its own reason text
	var denied *regularization.DeniedError
	if errors.As(err, &denied) {
		Conflict(w, denied.Error())
		return
	}

	// A structural import failure means the whole file is unusable
	var structural *checkinimport.StructuralError
	if errors.As(err, &structural) {
		BadRequest(w, structural.Error(), nil)
		return
	}

	switch {
	// Regularization domain errors
	case errors.Is(err, regularization.ErrRequestNotFound):
		NotFound(w, "Regularization request not found")
	case errors.Is(err, regularization.ErrRequestAlreadyProcessed):
		Conflict(w, "Regularization request already processed")
	case errors.Is(err, regularization.ErrMissingTimes):
		BadRequest(w, "In time and out time are required before approval", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDeviceIDNotFound):
		NotFound(w, "No employee registered for device ID")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrDerivedNotFound):
		NotFound(w, "No derived attendance for employee and date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
