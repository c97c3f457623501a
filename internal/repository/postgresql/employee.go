package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/employee"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

// GetByID implements employee.EmployeeRepository.
func (a *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, full_name, device_id, status, created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&e.ID, &e.FullName, &e.DeviceID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

// GetByDeviceID implements employee.EmployeeRepository.
func (a *employeeRepository) GetByDeviceID(ctx context.Context, deviceID string) (employee.Employee, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, full_name, device_id, status, created_at, updated_at
		FROM employees
		WHERE device_id = $1
		  AND status = $2
	`

	var e employee.Employee
	err := q.QueryRow(ctx, query, deviceID, employee.StatusActive).Scan(
		&e.ID, &e.FullName, &e.DeviceID, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrDeviceIDNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by device id: %w", err)
	}

	return e, nil
}

// ListActive implements employee.EmployeeRepository.
func (a *employeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, full_name, device_id, status, created_at, updated_at
		FROM employees
		WHERE status = $1
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, employee.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

// ListActiveMissingCheckins implements employee.EmployeeRepository.
func (a *employeeRepository) ListActiveMissingCheckins(ctx context.Context, date time.Time) ([]employee.Employee, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT e.id, e.full_name, e.device_id, e.status, e.created_at, e.updated_at
		FROM employees e
		LEFT JOIN checkin_events c
		  ON c.employee_id = e.id AND c.time::date = $2::date
		WHERE e.status = $1
		  AND c.id IS NULL
		ORDER BY e.full_name ASC
	`

	rows, err := q.Query(ctx, query, employee.StatusActive, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees missing check-ins: %w", err)
	}
	defer rows.Close()

	return scanEmployees(rows)
}

func scanEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.DeviceID, &e.Status, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}
