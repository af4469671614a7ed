package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gastobot/internal/core"
)

// MemoryStore keeps the document in process memory. Used by tests and as the
// default backend when no persistence is configured.
type MemoryStore struct {
	mu  sync.Mutex
	doc *core.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{doc: core.NewDocument()}
}

func (s *MemoryStore) Load(_ context.Context) (*core.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneDocument(s.doc)
}

func (s *MemoryStore) Save(_ context.Context, doc *core.Document) error {
	clone, err := cloneDocument(doc)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = clone
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// cloneDocument deep-copies via JSON so callers cannot alias the stored
// document's slices and maps.
func cloneDocument(doc *core.Document) (*core.Document, error) {
	if doc == nil {
		return core.NewDocument(), nil
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("clone document: %w", err)
	}
	out := core.NewDocument()
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("clone document: %w", err)
	}
	if out.Budget == nil {
		out.Budget = make(map[string]string)
	}
	return out, nil
}
