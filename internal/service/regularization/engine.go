package regularization

import (
	"fmt"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
)

// MonthBounds returns the first and last calendar day of the month containing
// date. The cap window is the calendar month, never a rolling 30 days.
func MonthBounds(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	end := start.AddDate(0, 1, -1)
	return start, end
}

// Evaluate decides whether a new regularization request may be created for
// the month containing date. It is pure: the caller supplies the count of
// submitted, HR-approved requests already in that month, fetched as fresh as
// the call site requires (reactive UI checks vs. the commit-time check).
func Evaluate(employeeID string, date time.Time, settings regularization.Settings, approvedCountForMonth int) regularization.Decision {
	if employeeID == "" || date.IsZero() {
		return regularization.Decision{
			Outcome: regularization.OutcomeIndeterminate,
			Reason:  "employee and date are required to evaluate eligibility",
		}
	}

	if !settings.Enabled {
		return regularization.Decision{
			Outcome: regularization.OutcomeAllowed,
			Reason:  "regularization limit disabled",
		}
	}

	if approvedCountForMonth >= settings.MaxRequestsPerMonth {
		return regularization.Decision{
			Outcome: regularization.OutcomeDenied,
			Reason: fmt.Sprintf("%d of %d approved regularizations already used for %s",
				approvedCountForMonth, settings.MaxRequestsPerMonth, date.Month().String()),
			ApprovedCount: approvedCountForMonth,
			Limit:         settings.MaxRequestsPerMonth,
		}
	}

	return regularization.Decision{
		Outcome:       regularization.OutcomeAllowed,
		Reason:        "within monthly regularization limit",
		ApprovedCount: approvedCountForMonth,
		Limit:         settings.MaxRequestsPerMonth,
	}
}
