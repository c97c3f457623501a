package attendance

import (
	"strings"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/validator"
)

// Reconstruct derives the attendance for one employee and one day from the
// raw events. The earliest event becomes the in time and the latest the out
// time; a single event yields in == out. This is deliberately not a
// punch-pairing algorithm: log types are too unreliable to classify events,
// so only min/max matter, and the input order does not.
func Reconstruct(employeeID string, date time.Time, events []checkin.Event) attendance.Derived {
	derived := attendance.Derived{
		EmployeeID: employeeID,
		Date:       date,
	}

	if len(events) == 0 {
		derived.Status = attendance.StatusAbsent
		return derived
	}

	earliest := events[0].Time
	latest := events[0].Time
	for _, e := range events[1:] {
		if e.Time.Before(earliest) {
			earliest = e.Time
		}
		if e.Time.After(latest) {
			latest = e.Time
		}
	}

	derived.InTime = &earliest
	derived.OutTime = &latest
	derived.Status = DeriveStatus(derived.InTime, derived.OutTime)
	return derived
}

// DeriveStatus maps an in/out pair to a coarse status: both set is present,
// neither is absent, exactly one is partial.
func DeriveStatus(inTime, outTime *time.Time) string {
	switch {
	case inTime != nil && outTime != nil:
		return attendance.StatusPresent
	case inTime == nil && outTime == nil:
		return attendance.StatusAbsent
	default:
		return attendance.StatusPartial
	}
}

// TimeOfDay reduces a raw timestamp string to HH:MM:SS. Device exports use
// either "2006-01-02 15:04:05" or the ISO form with a literal T; both may
// carry a sub-second fraction, which is discarded.
func TimeOfDay(raw string) (string, error) {
	s := strings.TrimSpace(raw)

	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	} {
		// Parse with the fraction stripped so both encodings reduce the
		// same way.
		candidate := s
		if i := strings.IndexByte(candidate, '.'); i >= 0 {
			candidate = candidate[:i]
		}
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.Format("15:04:05"), nil
		}
	}

	return "", validator.ValidationErrors{{
		Field:   "time",
		Message: "unrecognized timestamp format: " + raw,
	}}
}

// ValidateWindow rejects an edit where both edges are set and the in time is
// not strictly before the out time.
func ValidateWindow(inTime, outTime *time.Time) error {
	if inTime == nil || outTime == nil {
		return nil
	}
	if !inTime.Before(*outTime) {
		return validator.ValidationErrors{{
			Field:   "in_time",
			Message: "in_time must be before out_time",
		}}
	}
	return nil
}
