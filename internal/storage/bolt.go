package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"gastobot/internal/core"
)

const (
	documentBucket = "document"
	documentKey    = "current"
)

// BoltStore persists the document as a single JSON blob in a bbolt bucket.
// bbolt runs one write transaction at a time, which gives Save the required
// single-writer semantics for free.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(documentBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create document bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Load(_ context.Context) (*core.Document, error) {
	doc := core.NewDocument()
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket([]byte(documentBucket)).Get([]byte(documentKey))
		if data == nil {
			return nil
		}
		return json.Unmarshal(data, doc)
	})
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}
	if doc.Budget == nil {
		doc.Budget = make(map[string]string)
	}
	return doc, nil
}

func (s *BoltStore) Save(_ context.Context, doc *core.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	err = s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(documentBucket)).Put([]byte(documentKey), data)
	})
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
