package catalog

import (
	"context"

	"tripdesk/models"
)

// Service hands product document snapshots to the pricing layer. Lookups go
// cache, then store, then upstream; a stale hit is served as-is and refreshed
// in the background.
type Service interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	RefreshProduct(ctx context.Context, id string) (*models.Product, error)
}

// RefreshEnqueuer schedules a background re-fetch of a product document.
// Implemented by the asynq-backed worker queue.
type RefreshEnqueuer interface {
	EnqueueProductRefresh(productID string) error
}
