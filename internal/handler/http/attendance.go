package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetDerived(w http.ResponseWriter, r *http.Request)
	Reconstruct(w http.ResponseWriter, r *http.Request)
	MissingCheckins(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.Service
}

// GetDerived implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetDerived(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id query parameter is required", nil)
		return
	}

	date, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	derived, err := h.attendanceService.GetDerived(r.Context(), employeeID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, derived)
}

type reconstructRequest struct {
	Date       string `json:"date"`
	EmployeeID string `json:"employee_id,omitempty"`
}

// Reconstruct implements AttendanceHandler. With an employee_id it rebuilds a
// single day for that employee, otherwise it rebuilds the day for every
// active employee.
func (h *AttendanceHandlerImpl) Reconstruct(w http.ResponseWriter, r *http.Request) {
	var req reconstructRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reconstruct decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.Date == "" {
		response.BadRequest(w, "date is required", nil)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		response.BadRequest(w, "date must be in YYYY-MM-DD format", nil)
		return
	}

	if req.EmployeeID != "" {
		derived, err := h.attendanceService.DeriveDay(r.Context(), req.EmployeeID, date)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Attendance reconstructed successfully", derived)
		return
	}

	result, err := h.attendanceService.ReconstructAll(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance reconstructed successfully", result)
}

// MissingCheckins implements AttendanceHandler.
func (h *AttendanceHandlerImpl) MissingCheckins(w http.ResponseWriter, r *http.Request) {
	date, ok := parseDateParam(w, r, "date")
	if !ok {
		return
	}

	rows, err := h.attendanceService.MissingCheckins(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rows)
}

func parseDateParam(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		response.BadRequest(w, name+" query parameter is required", nil)
		return time.Time{}, false
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.BadRequest(w, name+" must be in YYYY-MM-DD format", nil)
		return time.Time{}, false
	}

	return date, true
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}
