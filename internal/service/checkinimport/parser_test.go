package checkinimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMapping() PunchMapping {
	return NewPunchMapping([]int{255})
}

func TestParser_SingleRow(t *testing.T) {
	raw := "No,Date,Time,Employee ID,Punch State\n" +
		"1,05-11-2025,09:03:12,E100,255\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "E100", row.DeviceEmployeeID)
	assert.Equal(t, "2025-11-05 09:03:12", row.Timestamp)
	assert.Equal(t, DirectionIn, row.Direction)

	_, ok = parser.Next()
	assert.False(t, ok)
	assert.Empty(t, parser.Errors())
}

func TestParser_SkipsPreambleBeforeHeader(t *testing.T) {
	raw := "Device Export Report\n" +
		"Generated: 2025-11-06\n" +
		"\n" +
		"No,Date,Time,Employee ID,Punch State\n" +
		"1,05-11-2025,09:03:12,E100,1\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "E100", row.DeviceEmployeeID)
	assert.Equal(t, DirectionOut, row.Direction)
}

func TestParser_FullTimestampInTimeColumn(t *testing.T) {
	raw := "No,Date,Time,Employee ID,Punch State\n" +
		"1,05-11-2025,2025-11-05 09:03:12,E100,255\n" +
		"2,05-11-2025,2025-11-05T17:45:01.500000,E100,1\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "2025-11-05 09:03:12", row.Timestamp)

	row, ok = parser.Next()
	require.True(t, ok)
	assert.Equal(t, "2025-11-05 17:45:01", row.Timestamp)

	_, ok = parser.Next()
	assert.False(t, ok)
	assert.Empty(t, parser.Errors())
}

func TestParser_MissingHeader(t *testing.T) {
	raw := "Device Export Report\n" +
		"1,05-11-2025,09:03:12,E100,255\n"

	_, err := NewParser(raw, defaultMapping())

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.Empty(t, structural.Missing)
}

func TestParser_MissingColumns(t *testing.T) {
	raw := "No,Date,Employee ID\n" +
		"1,05-11-2025,E100\n"

	_, err := NewParser(raw, defaultMapping())

	var structural *StructuralError
	require.ErrorAs(t, err, &structural)
	assert.ElementsMatch(t, []string{"Time", "Punch State"}, structural.Missing)
	assert.Contains(t, structural.Error(), "Time")
	assert.Contains(t, structural.Error(), "Punch State")
}

func TestParser_ColumnsOrderIndependent(t *testing.T) {
	raw := "No,Punch State,Employee ID,Time,Date\n" +
		"1,255,E100,09:03:12,05-11-2025\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "E100", row.DeviceEmployeeID)
	assert.Equal(t, "2025-11-05 09:03:12", row.Timestamp)
	assert.Equal(t, DirectionIn, row.Direction)
}

func TestParser_MixedDelimiters(t *testing.T) {
	raw := "No\tDate\tTime\tEmployee ID\tPunch State\n" +
		"1\t05-11-2025,09:03:12\tE100\t255\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "E100", row.DeviceEmployeeID)
	assert.Equal(t, "2025-11-05 09:03:12", row.Timestamp)
}

func TestParser_EmptyEmployeeIDSkippedSilently(t *testing.T) {
	raw := "No\tDate\tTime\tEmployee ID\tPunch State\n" +
		"1\t05-11-2025\t09:03:12\t\t255\n" +
		"2\t05-11-2025\t09:04:00\tE101\t255\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "E101", row.DeviceEmployeeID)

	_, ok = parser.Next()
	assert.False(t, ok)
	assert.Empty(t, parser.Errors())
}

func TestParser_InvalidDateRecordsRowError(t *testing.T) {
	raw := "No,Date,Time,Employee ID,Punch State\n" +
		"1,2025-11-05,09:03:12,E100,255\n" +
		"2,32-13-2025,09:03:12,E100,255\n" +
		"3,06-11-2025,09:05:00,E101,255\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	row, ok := parser.Next()
	require.True(t, ok)
	assert.Equal(t, "E101", row.DeviceEmployeeID)
	assert.Equal(t, "2025-11-06 09:05:00", row.Timestamp)

	_, ok = parser.Next()
	assert.False(t, ok)

	errs := parser.Errors()
	require.Len(t, errs, 2)
	assert.Equal(t, 2, errs[0].Line)
	assert.Equal(t, 3, errs[1].Line)
	assert.Contains(t, errs[0].Reason, "invalid date")
}

func TestParser_InvalidTimeRecordsRowError(t *testing.T) {
	raw := "No,Date,Time,Employee ID,Punch State\n" +
		"1,05-11-2025,9:03,E100,255\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	_, ok := parser.Next()
	assert.False(t, ok)

	errs := parser.Errors()
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Reason, "invalid time")
}

func TestParser_BlankLinesIgnored(t *testing.T) {
	raw := "No,Date,Time,Employee ID,Punch State\n" +
		"\n" +
		"1,05-11-2025,09:03:12,E100,255\n" +
		"\n"

	parser, err := NewParser(raw, defaultMapping())
	require.NoError(t, err)

	_, ok := parser.Next()
	assert.True(t, ok)
	_, ok = parser.Next()
	assert.False(t, ok)
}

func TestPunchMapping_Direction(t *testing.T) {
	m := NewPunchMapping([]int{0, 4})

	assert.Equal(t, DirectionIn, m.Direction("0"))
	assert.Equal(t, DirectionIn, m.Direction("4"))
	assert.Equal(t, DirectionOut, m.Direction("255"))
	assert.Equal(t, DirectionOut, m.Direction("1"))
	assert.Equal(t, DirectionOut, m.Direction("garbage"))
	assert.Equal(t, DirectionIn, m.Direction(" 0 "))
}

func TestRewriteDate(t *testing.T) {
	got, ok := rewriteDate("05-11-2025")
	require.True(t, ok)
	assert.Equal(t, "2025-11-05", got)

	for _, raw := range []string{"2025-11-05", "32-01-2025", "01-13-2025", "00-05-2025", "5-11-2025", ""} {
		_, ok := rewriteDate(raw)
		assert.False(t, ok, "raw=%q", raw)
	}
}
