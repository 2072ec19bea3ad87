package stats

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ErlanBelekov/bookstore-catalog/internal/metrics"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
	"github.com/robfig/cron/v3"
)

// Refresher recomputes the catalog size gauges on a cron schedule.
type Refresher struct {
	store  repository.Store
	logger *slog.Logger
	spec   string
}

func NewRefresher(store repository.Store, logger *slog.Logger, spec string) *Refresher {
	return &Refresher{
		store:  store,
		logger: logger.With("component", "stats_refresher"),
		spec:   spec,
	}
}

// Start refreshes once, then on every tick of spec until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) error {
	c := cron.New()
	if _, err := c.AddFunc(r.spec, func() { r.refreshAndLog(ctx) }); err != nil {
		return fmt.Errorf("invalid stats cron %q: %w", r.spec, err)
	}

	r.refreshAndLog(ctx)
	c.Start()
	r.logger.Info("stats refresher started", "spec", r.spec)

	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("stats refresher shut down")
	return nil
}

func (r *Refresher) Refresh(ctx context.Context) error {
	sellers, err := r.store.Sellers().Count(ctx)
	if err != nil {
		return err
	}
	books, err := r.store.Books().Count(ctx)
	if err != nil {
		return err
	}

	metrics.Sellers.Set(float64(sellers))
	metrics.Books.Set(float64(books))
	return nil
}

func (r *Refresher) refreshAndLog(ctx context.Context) {
	if err := r.Refresh(ctx); err != nil {
		r.logger.ErrorContext(ctx, "refresh catalog stats", "error", err)
	}
}
