package attendance

import (
	"testing"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconstruct_NoEvents(t *testing.T) {
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)

	derived := Reconstruct("emp-1", date, nil)

	assert.Equal(t, "emp-1", derived.EmployeeID)
	assert.Equal(t, attendance.StatusAbsent, derived.Status)
	assert.Nil(t, derived.InTime)
	assert.Nil(t, derived.OutTime)
}

func TestReconstruct_SingleEvent(t *testing.T) {
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	at := time.Date(2025, time.November, 5, 9, 3, 12, 0, time.UTC)

	derived := Reconstruct("emp-1", date, []checkin.Event{
		{EmployeeID: "emp-1", Time: at, LogType: checkin.LogTypeIn},
	})

	require.NotNil(t, derived.InTime)
	require.NotNil(t, derived.OutTime)
	assert.Equal(t, at, *derived.InTime)
	assert.Equal(t, at, *derived.OutTime)
	assert.Equal(t, attendance.StatusPresent, derived.Status)
}

func TestReconstruct_MinMaxIgnoresInputOrder(t *testing.T) {
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	morning := time.Date(2025, time.November, 5, 9, 0, 0, 0, time.UTC)
	noon := time.Date(2025, time.November, 5, 12, 30, 0, 0, time.UTC)
	evening := time.Date(2025, time.November, 5, 18, 15, 0, 0, time.UTC)

	sorted := []checkin.Event{
		{Time: morning, LogType: checkin.LogTypeIn},
		{Time: noon, LogType: checkin.LogTypeOut},
		{Time: evening, LogType: checkin.LogTypeOut},
	}
	shuffled := []checkin.Event{
		{Time: evening, LogType: checkin.LogTypeOut},
		{Time: morning, LogType: checkin.LogTypeIn},
		{Time: noon, LogType: checkin.LogTypeOut},
	}

	a := Reconstruct("emp-1", date, sorted)
	b := Reconstruct("emp-1", date, shuffled)

	require.NotNil(t, a.InTime)
	require.NotNil(t, a.OutTime)
	assert.Equal(t, morning, *a.InTime)
	assert.Equal(t, evening, *a.OutTime)
	assert.Equal(t, *a.InTime, *b.InTime)
	assert.Equal(t, *a.OutTime, *b.OutTime)
	assert.Equal(t, a.Status, b.Status)
}

func TestDeriveStatus(t *testing.T) {
	at := time.Date(2025, time.November, 5, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, attendance.StatusPresent, DeriveStatus(&at, &at))
	assert.Equal(t, attendance.StatusAbsent, DeriveStatus(nil, nil))
	assert.Equal(t, attendance.StatusPartial, DeriveStatus(&at, nil))
	assert.Equal(t, attendance.StatusPartial, DeriveStatus(nil, &at))
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "space separated", raw: "2025-11-05 09:03:12", want: "09:03:12"},
		{name: "iso with T", raw: "2025-11-05T09:03:12", want: "09:03:12"},
		{name: "fraction discarded", raw: "2025-11-05 09:03:12.500000", want: "09:03:12"},
		{name: "iso with fraction", raw: "2025-11-05T09:03:12.123", want: "09:03:12"},
		{name: "leading whitespace", raw: "  2025-11-05 09:03:12  ", want: "09:03:12"},
		{name: "garbage", raw: "not a timestamp", wantErr: true},
		{name: "date only", raw: "2025-11-05", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeOfDay(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateWindow(t *testing.T) {
	in := time.Date(2025, time.November, 5, 9, 0, 0, 0, time.UTC)
	out := time.Date(2025, time.November, 5, 18, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateWindow(&in, &out))
	assert.NoError(t, ValidateWindow(nil, &out))
	assert.NoError(t, ValidateWindow(&in, nil))
	assert.NoError(t, ValidateWindow(nil, nil))

	// Reversed window is a hard rejection
	assert.Error(t, ValidateWindow(&out, &in))

	// Equal edges are rejected too: in must be strictly before out
	assert.Error(t, ValidateWindow(&in, &in))
}
