package backend

import (
	"context"

	"gastobot/internal/storage"
)

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the document store and its cleanup function.
type Result struct {
	Store   storage.DocumentStore
	Cleanup CleanupFunc
}

// Factory creates document stores based on configuration.
type Factory interface {
	CreateStore(ctx context.Context, config Config) (*Result, error)
}

// Type identifies a storage backend.
type Type string

const (
	SQLiteBackend Type = "sqlite"
	BoltBackend   Type = "bolt"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid
func (t Type) IsValid() bool {
	switch t {
	case SQLiteBackend, BoltBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
