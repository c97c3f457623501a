package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/checkin"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type checkinRepository struct {
	db *database.DB
}

func NewCheckinRepository(db *database.DB) checkin.EventRepository {
	return &checkinRepository{db: db}
}

// Create implements checkin.EventRepository.
func (a *checkinRepository) Create(ctx context.Context, event checkin.Event) (checkin.Event, error) {
	q := GetQuerier(ctx, a.db)

	event.ID = uuid.NewString()

	query := `
		INSERT INTO checkin_events (id, employee_id, time, log_type, device_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`

	err := q.QueryRow(ctx, query,
		event.ID,
		event.EmployeeID,
		event.Time,
		event.LogType,
		event.DeviceID,
	).Scan(&event.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return checkin.Event{}, checkin.ErrDuplicateEvent
		}
		return checkin.Event{}, fmt.Errorf("failed to create check-in event: %w", err)
	}

	return event, nil
}

// Exists implements checkin.EventRepository.
func (a *checkinRepository) Exists(ctx context.Context, employeeID string, t time.Time) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM checkin_events
			WHERE employee_id = $1 AND time = $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, t).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for existing event: %w", err)
	}

	return exists, nil
}

// ExistsForDate implements checkin.EventRepository.
func (a *checkinRepository) ExistsForDate(ctx context.Context, employeeID string, date time.Time, logType string) (bool, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM checkin_events
			WHERE employee_id = $1
			  AND time::date = $2::date
			  AND log_type = $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date, logType).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check for existing %s event: %w", logType, err)
	}

	return exists, nil
}

// ListByEmployeeAndDate implements checkin.EventRepository.
func (a *checkinRepository) ListByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]checkin.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, time, log_type, device_id, created_at
		FROM checkin_events
		WHERE employee_id = $1
		  AND time::date = $2::date
		ORDER BY time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list check-in events: %w", err)
	}
	defer rows.Close()

	var events []checkin.Event
	for rows.Next() {
		var e checkin.Event
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Time, &e.LogType, &e.DeviceID, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan check-in event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
