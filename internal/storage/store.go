// Package storage persists the financial document. The document is handled
// as one unit: callers load it, modify it in memory and save it back. Every
// implementation serializes writes internally so concurrent chats cannot
// interleave a read-modify-write (the core itself adds a writer lock on top,
// see services.Assistant).
package storage

import (
	"context"

	"gastobot/internal/core"
)

// DocumentStore is the whole-document load/save collaborator.
type DocumentStore interface {
	// Load returns the current document. An empty backend yields an
	// initialized empty document, not an error.
	Load(ctx context.Context) (*core.Document, error)

	// Save replaces the persisted document atomically.
	Save(ctx context.Context, doc *core.Document) error

	Close() error
}
