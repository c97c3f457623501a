package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type regularizationRepository struct {
	db *database.DB
}

func NewRegularizationRepository(db *database.DB) regularization.RequestRepository {
	return &regularizationRepository{db: db}
}

const requestColumns = `
	r.id, r.employee_id, r.date, r.in_time, r.out_time, r.reason,
	r.workflow_state, r.submitted, r.approved_by, r.approved_at,
	r.rejection_note, r.created_at, r.updated_at, e.full_name
`

func scanRequest(row pgx.Row) (regularization.Request, error) {
	var r regularization.Request
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.InTime, &r.OutTime, &r.Reason,
		&r.WorkflowState, &r.Submitted, &r.ApprovedBy, &r.ApprovedAt,
		&r.RejectionNote, &r.CreatedAt, &r.UpdatedAt, &r.EmployeeName,
	)
	return r, err
}

// Create implements regularization.RequestRepository.
func (a *regularizationRepository) Create(ctx context.Context, req regularization.Request) (regularization.Request, error) {
	q := GetQuerier(ctx, a.db)

	req.ID = uuid.NewString()

	query := `
		INSERT INTO regularization_requests (
			id, employee_id, date, in_time, out_time, reason,
			workflow_state, submitted
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		req.ID,
		req.EmployeeID,
		req.Date,
		req.InTime,
		req.OutTime,
		req.Reason,
		req.WorkflowState,
		req.Submitted,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return regularization.Request{}, fmt.Errorf("failed to create regularization request: %w", err)
	}

	return req, nil
}

// GetByID implements regularization.RequestRepository.
func (a *regularizationRepository) GetByID(ctx context.Context, id string) (regularization.Request, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + requestColumns + `
		FROM regularization_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	r, err := scanRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return regularization.Request{}, regularization.ErrRequestNotFound
		}
		return regularization.Request{}, fmt.Errorf("failed to get regularization request: %w", err)
	}

	return r, nil
}

// Update implements regularization.RequestRepository.
func (a *regularizationRepository) Update(ctx context.Context, req regularization.Request) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE regularization_requests
		SET in_time = $2, out_time = $3, reason = $4, workflow_state = $5,
			submitted = $6, approved_by = $7, approved_at = $8,
			rejection_note = $9, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		req.ID,
		req.InTime,
		req.OutTime,
		req.Reason,
		req.WorkflowState,
		req.Submitted,
		req.ApprovedBy,
		req.ApprovedAt,
		req.RejectionNote,
	)
	if err != nil {
		return fmt.Errorf("failed to update regularization request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return regularization.ErrRequestNotFound
	}

	return nil
}

// List implements regularization.RequestRepository.
func (a *regularizationRepository) List(ctx context.Context, filter regularization.RequestFilter) ([]regularization.Request, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("r.employee_id = $%d", argPos))
		args = append(args, *filter.EmployeeID)
		argPos++
	}
	if filter.WorkflowState != nil && *filter.WorkflowState != "" {
		conditions = append(conditions, fmt.Sprintf("r.workflow_state = $%d", argPos))
		args = append(args, *filter.WorkflowState)
		argPos++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("r.date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("r.date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM regularization_requests r
		WHERE ` + where

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count regularization requests: %w", err)
	}

	listQuery := `
		SELECT ` + requestColumns + `
		FROM regularization_requests r
		JOIN employees e ON e.id = r.employee_id
		WHERE ` + where + `
		ORDER BY r.date DESC, r.created_at DESC
		LIMIT $` + fmt.Sprint(argPos) + ` OFFSET $` + fmt.Sprint(argPos+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list regularization requests: %w", err)
	}
	defer rows.Close()

	var requests []regularization.Request
	for rows.Next() {
		r, err := scanRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan regularization request: %w", err)
		}
		requests = append(requests, r)
	}

	return requests, total, rows.Err()
}

// CountApprovedInRange implements regularization.RequestRepository.
func (a *regularizationRepository) CountApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM regularization_requests
		WHERE employee_id = $1
		  AND workflow_state = $2
		  AND submitted = TRUE
		  AND date BETWEEN $3 AND $4
	`

	var count int
	err := q.QueryRow(ctx, query, employeeID, regularization.StateApprovedByHR, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count approved regularization requests: %w", err)
	}

	return count, nil
}
