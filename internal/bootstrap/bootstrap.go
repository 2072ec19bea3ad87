// Package bootstrap holds process wiring shared by the binaries under cmd/.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/ErlanBelekov/bookstore-catalog/internal/infrastructure/memory"
	"github.com/ErlanBelekov/bookstore-catalog/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/bookstore-catalog/internal/log"
	"github.com/ErlanBelekov/bookstore-catalog/internal/repository"
	"github.com/lmittmann/tint"
)

const (
	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

// NewLogger returns a tint handler for local runs and JSON elsewhere, wrapped
// so request-scoped attributes land on every record.
func NewLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}

// StoreOptions selects and configures the catalog store.
type StoreOptions struct {
	Kind        string
	DatabaseURL string
	AutoMigrate bool
}

// OpenStore returns the configured store and a func releasing its resources.
func OpenStore(ctx context.Context, opts StoreOptions, logger *slog.Logger) (repository.Store, func(), error) {
	switch opts.Kind {
	case StoreMemory:
		s, err := memory.NewStore()
		if err != nil {
			return nil, nil, err
		}
		logger.Warn("using in-memory store, data is lost on exit")
		return s, func() {}, nil

	case StorePostgres:
		if opts.AutoMigrate {
			if err := postgres.MigrateUp(opts.DatabaseURL); err != nil {
				return nil, nil, err
			}
			logger.Info("migrations applied")
		}
		pool, err := postgres.NewPool(ctx, opts.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown store %q", opts.Kind)
	}
}
