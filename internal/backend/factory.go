package backend

import (
	"context"
	"fmt"
	"log/slog"

	"gastobot/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new store factory.
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

// CreateStore implements Factory.CreateStore.
func (f *DefaultFactory) CreateStore(_ context.Context, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		store, err := storage.NewSQLiteStore(config.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		f.logger.Info("Initialized SQLite backend", "db_path", config.SQLiteDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case BoltBackend:
		store, err := storage.NewBoltStore(config.BoltDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize bolt store: %w", err)
		}
		f.logger.Info("Initialized Bolt backend", "db_path", config.BoltDBPath)
		return &Result{Store: store, Cleanup: store.Close}, nil

	case MemoryBackend:
		store := storage.NewMemoryStore()
		f.logger.Info("Initialized memory backend")
		return &Result{Store: store, Cleanup: store.Close}, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}
