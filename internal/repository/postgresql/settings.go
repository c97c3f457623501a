package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/biotrackhr/biotrack-backend-go/internal/domain/regularization"
	"github.com/biotrackhr/biotrack-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type settingsRepository struct {
	db       *database.DB
	defaults regularization.Settings
}

// NewSettingsRepository reads the single regularization settings row. When no
// row exists yet the configured defaults apply; a query failure is returned
// to the caller, which fails open.
func NewSettingsRepository(db *database.DB, defaults regularization.Settings) regularization.SettingsRepository {
	return &settingsRepository{db: db, defaults: defaults}
}

// Get implements regularization.SettingsRepository.
func (r *settingsRepository) Get(ctx context.Context) (regularization.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT enabled, max_requests_per_month
		FROM regularization_settings
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var s regularization.Settings
	err := q.QueryRow(ctx, query).Scan(&s.Enabled, &s.MaxRequestsPerMonth)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.defaults, nil
		}
		return regularization.Settings{}, fmt.Errorf("failed to get regularization settings: %w", err)
	}

	if s.MaxRequestsPerMonth < 1 {
		s.MaxRequestsPerMonth = r.defaults.MaxRequestsPerMonth
	}

	return s, nil
}
