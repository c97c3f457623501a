package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/attendance"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.DerivedRepository {
	return &attendanceRepository{db: db}
}

// Upsert implements attendance.DerivedRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, derived attendance.Derived) error {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO derived_attendance (employee_id, date, in_time, out_time, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (employee_id, date) DO UPDATE
		SET in_time = EXCLUDED.in_time,
			out_time = EXCLUDED.out_time,
			status = EXCLUDED.status,
			updated_at = NOW()
	`

	_, err := q.Exec(ctx, query,
		derived.EmployeeID,
		derived.Date,
		derived.InTime,
		derived.OutTime,
		derived.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert derived attendance: %w", err)
	}

	return nil
}

// GetByEmployeeAndDate implements attendance.DerivedRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Derived, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT employee_id, date, in_time, out_time, status, updated_at
		FROM derived_attendance
		WHERE employee_id = $1
		  AND date = $2
	`

	var d attendance.Derived
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&d.EmployeeID, &d.Date, &d.InTime, &d.OutTime, &d.Status, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Derived{}, attendance.ErrDerivedNotFound
		}
		return attendance.Derived{}, fmt.Errorf("failed to get derived attendance: %w", err)
	}

	return d, nil
}
