package regularization

import (
	"testing"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
	"github.com/stretchr/testify/assert"
)

func TestMonthBounds(t *testing.T) {
	start, end := MonthBounds(time.Date(2025, time.November, 14, 9, 30, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthBounds_February(t *testing.T) {
	start, end := MonthBounds(time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), end)

	// Leap year
	start, end = MonthBounds(time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthBounds_AdjacentMonthsDoNotOverlap(t *testing.T) {
	_, janEnd := MonthBounds(time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC))
	febStart, _ := MonthBounds(time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, janEnd.Before(febStart))
}

func TestEvaluate_DisabledAllowsAnyCount(t *testing.T) {
	settings := regularization.Settings{Enabled: false, MaxRequestsPerMonth: 2}
	date := time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)

	for _, count := range []int{0, 2, 100} {
		decision := Evaluate("emp-1", date, settings, count)
		assert.Equal(t, regularization.OutcomeAllowed, decision.Outcome, "count=%d", count)
	}
}

func TestEvaluate_UnderLimit(t *testing.T) {
	settings := regularization.Settings{Enabled: true, MaxRequestsPerMonth: 3}
	date := time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)

	decision := Evaluate("emp-1", date, settings, 2)

	assert.Equal(t, regularization.OutcomeAllowed, decision.Outcome)
	assert.True(t, decision.Allowed())
	assert.Equal(t, 2, decision.ApprovedCount)
	assert.Equal(t, 3, decision.Limit)
}

func TestEvaluate_AtLimit(t *testing.T) {
	settings := regularization.Settings{Enabled: true, MaxRequestsPerMonth: 3}
	date := time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)

	decision := Evaluate("emp-1", date, settings, 3)

	assert.Equal(t, regularization.OutcomeDenied, decision.Outcome)
	assert.False(t, decision.Allowed())
	assert.Contains(t, decision.Reason, "November")
	assert.Contains(t, decision.Reason, "3 of 3")
}

func TestEvaluate_OverLimit(t *testing.T) {
	settings := regularization.Settings{Enabled: true, MaxRequestsPerMonth: 2}
	date := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	decision := Evaluate("emp-1", date, settings, 5)

	assert.Equal(t, regularization.OutcomeDenied, decision.Outcome)
	assert.Equal(t, 5, decision.ApprovedCount)
	assert.Equal(t, 2, decision.Limit)
}

func TestEvaluate_MissingEmployee(t *testing.T) {
	settings := regularization.Settings{Enabled: true, MaxRequestsPerMonth: 3}
	date := time.Date(2025, time.November, 14, 0, 0, 0, 0, time.UTC)

	decision := Evaluate("", date, settings, 0)

	assert.Equal(t, regularization.OutcomeIndeterminate, decision.Outcome)
	assert.False(t, decision.Allowed())
}

func TestEvaluate_MissingDate(t *testing.T) {
	settings := regularization.Settings{Enabled: true, MaxRequestsPerMonth: 3}

	decision := Evaluate("emp-1", time.Time{}, settings, 0)

	assert.Equal(t, regularization.OutcomeIndeterminate, decision.Outcome)
}
