package processor

import (
	"context"

	"github.com/tiags/rfd-radar/internal/models"
)

// DealStore abstracts the durable dedup store.
type DealStore interface {
	SeenTitles(ctx context.Context) (map[string]struct{}, error)
	InsertIfAbsent(ctx context.Context, deal models.Deal) (bool, error)
	Count(ctx context.Context) (int, error)
	EvictOldest(ctx context.Context, n int) (int, error)
	DealsByRatio(ctx context.Context) ([]models.Deal, error)
}

// DealNotifier abstracts the alert channel.
type DealNotifier interface {
	Notify(ctx context.Context, deal models.Deal) error
}
