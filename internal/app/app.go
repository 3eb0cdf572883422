// Package app assembles the store, event publisher and ledger from a Config.
// Both the server and the admin CLI start here.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/htn0810/Bill-Sharing/internal/config"
	"github.com/htn0810/Bill-Sharing/internal/events"
	"github.com/htn0810/Bill-Sharing/internal/format"
	"github.com/htn0810/Bill-Sharing/internal/ledger"
	"github.com/htn0810/Bill-Sharing/internal/storage"
	"github.com/htn0810/Bill-Sharing/internal/storage/memory"
	"github.com/htn0810/Bill-Sharing/internal/storage/sqlite"
)

type App struct {
	Config    *config.Config
	Store     storage.Store
	Publisher events.Publisher
	Ledger    *ledger.Ledger
	Formatter *format.Formatter
}

// New opens the configured store and broker connection. Close releases both.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	formatter, err := format.LoadFormatter(cfg.Timezone)
	if err != nil {
		return nil, err
	}

	store, err := OpenStore(cfg)
	if err != nil {
		return nil, err
	}

	publisher := NewPublisher(ctx, cfg)

	return &App{
		Config:    cfg,
		Store:     store,
		Publisher: publisher,
		Ledger:    ledger.New(store, publisher),
		Formatter: formatter,
	}, nil
}

// OpenStore returns the storage backend named by cfg.Store.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		slog.Info("Storage initialized", "store", cfg.Store)
		return memory.New(), nil
	case config.StoreSQLite:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "store", cfg.Store, "database", cfg.DBPath)
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

// NewPublisher connects to the broker when one is configured. Events are
// best-effort, so a broker that cannot be reached degrades to logging.
func NewPublisher(ctx context.Context, cfg *config.Config) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.LogPublisher{}
	}

	p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		slog.WarnContext(ctx, "AMQP unavailable, logging events instead", "error", err)
		return events.LogPublisher{}
	}
	slog.InfoContext(ctx, "AMQP publisher ready", "exchange", cfg.AMQPExchange)
	return p
}

func (a *App) Close() error {
	return errors.Join(a.Publisher.Close(), a.Store.Close())
}
