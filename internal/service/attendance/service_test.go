package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/biotrackhr/biotrack-backend-go/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
	missing   []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByDeviceID(ctx context.Context, deviceID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrDeviceIDNotFound
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) ListActiveMissingCheckins(ctx context.Context, date time.Time) ([]employee.Employee, error) {
	return f.missing, nil
}

type fakeEventRepo struct {
	byEmployee map[string][]checkin.Event
	listErr    map[string]error
}

func (f *fakeEventRepo) Create(ctx context.Context, event checkin.Event) (checkin.Event, error) {
	return event, nil
}

func (f *fakeEventRepo) Exists(ctx context.Context, employeeID string, t time.Time) (bool, error) {
	return false, nil
}

func (f *fakeEventRepo) ExistsForDate(ctx context.Context, employeeID string, date time.Time, logType string) (bool, error) {
	return false, nil
}

func (f *fakeEventRepo) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]checkin.Event, error) {
	if err := f.listErr[employeeID]; err != nil {
		return nil, err
	}
	return f.byEmployee[employeeID], nil
}

type fakeDerivedRepo struct {
	rows map[string]attendance.Derived
}

func newFakeDerivedRepo() *fakeDerivedRepo {
	return &fakeDerivedRepo{rows: make(map[string]attendance.Derived)}
}

func (f *fakeDerivedRepo) Upsert(ctx context.Context, derived attendance.Derived) error {
	f.rows[derived.EmployeeID+derived.Date.Format("2006-01-02")] = derived
	return nil
}

func (f *fakeDerivedRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Derived, error) {
	d, ok := f.rows[employeeID+date.Format("2006-01-02")]
	if !ok {
		return attendance.Derived{}, attendance.ErrDerivedNotFound
	}
	return d, nil
}

func TestAttendanceService_DeriveDay(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{ID: "emp-1", FullName: "Alice", Status: employee.StatusActive}}}
	events := &fakeEventRepo{byEmployee: map[string][]checkin.Event{
		"emp-1": {
			{EmployeeID: "emp-1", Time: date.Add(9 * time.Hour), LogType: checkin.LogTypeIn},
			{EmployeeID: "emp-1", Time: date.Add(18 * time.Hour), LogType: checkin.LogTypeOut},
		},
	}}
	derived := newFakeDerivedRepo()
	svc := NewService(events, employees, derived)

	resp, err := svc.DeriveDay(ctx, "emp-1", date)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	require.NotNil(t, resp.InTime)
	assert.Equal(t, "09:00:00", *resp.InTime)
	require.NotNil(t, resp.OutTime)
	assert.Equal(t, "18:00:00", *resp.OutTime)

	stored, err := derived.GetByEmployeeAndDate(ctx, "emp-1", date)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, stored.Status)
}

func TestAttendanceService_DeriveDay_NoEvents(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{ID: "emp-1", Status: employee.StatusActive}}}
	svc := NewService(&fakeEventRepo{}, employees, newFakeDerivedRepo())

	resp, err := svc.DeriveDay(ctx, "emp-1", date)

	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, resp.Status)
	assert.Nil(t, resp.InTime)
	assert.Nil(t, resp.OutTime)
}

func TestAttendanceService_DeriveDay_EmployeeNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeEventRepo{}, &fakeEmployeeRepo{}, newFakeDerivedRepo())

	_, err := svc.DeriveDay(ctx, "missing", time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAttendanceService_ReconstructAll_SkipsFailingEmployee(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", Status: employee.StatusActive},
		{ID: "emp-2", Status: employee.StatusActive},
		{ID: "emp-3", Status: employee.StatusActive},
	}}
	events := &fakeEventRepo{
		byEmployee: map[string][]checkin.Event{
			"emp-1": {{EmployeeID: "emp-1", Time: date.Add(9 * time.Hour)}},
		},
		listErr: map[string]error{"emp-2": errors.New("query timeout")},
	}
	derived := newFakeDerivedRepo()
	svc := NewService(events, employees, derived)

	result, err := svc.ReconstructAll(ctx, date)

	require.NoError(t, err)
	assert.Equal(t, "2025-11-05", result.Date)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.WithEvents)

	// emp-3 had no events and was still materialized as absent
	stored, err := derived.GetByEmployeeAndDate(ctx, "emp-3", date)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, stored.Status)
}

func TestAttendanceService_GetDerived_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeEventRepo{}, &fakeEmployeeRepo{}, newFakeDerivedRepo())

	_, err := svc.GetDerived(ctx, "emp-1", time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC))

	assert.ErrorIs(t, err, attendance.ErrDerivedNotFound)
}

func TestAttendanceService_MissingCheckins(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, time.November, 5, 0, 0, 0, 0, time.UTC)
	employees := &fakeEmployeeRepo{missing: []employee.Employee{
		{ID: "emp-1", FullName: "Alice", Status: employee.StatusActive},
	}}
	svc := NewService(&fakeEventRepo{}, employees, newFakeDerivedRepo())

	rows, err := svc.MissingCheckins(ctx, date)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "emp-1", rows[0].EmployeeID)
	assert.Equal(t, "Alice", rows[0].EmployeeName)
	assert.Equal(t, "2025-11-05", rows[0].Date)
}
