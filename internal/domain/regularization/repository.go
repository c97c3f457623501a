package regularization

import (
	"context"
	"time"
)

// RequestRepository defines data access methods for regularization requests.
type RequestRepository interface {
	// Create creates a new regularization request
	Create(ctx context.Context, req Request) (Request, error)

	// GetByID retrieves a request by ID
	GetByID(ctx context.Context, id string) (Request, error)

	// Update updates an existing request
	Update(ctx context.Context, req Request) error

	// List retrieves requests with filters and pagination
	List(ctx context.Context, filter RequestFilter) ([]Request, int64, error)

	// CountApprovedInRange counts submitted, HR-approved requests for an
	// employee whose date falls within [from, to] inclusive. Used for the
	// monthly cap.
	CountApprovedInRange(ctx context.Context, employeeID string, from, to time.Time) (int, error)
}

// SettingsRepository reads the regularization settings owned by the external
// settings store.
type SettingsRepository interface {
	Get(ctx context.Context) (Settings, error)
}

// TxRunner executes fn so that repository calls made with the context it
// receives share one transaction.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}
