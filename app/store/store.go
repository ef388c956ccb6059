// Package store provides the durable key/value state behind the questionnaire
// and a typed adapter that never lets a storage failure escape.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// Keys of the persisted state layout.
const (
	KeyQuestions = "questions"
	KeyUIOptions = "ui-options"
	KeyBehavior  = "behavior-flags"
	KeyMode      = "mode"
	KeyHistory   = "history"
)

var (
	// ErrNotFound is returned by Get for a key that was never written.
	ErrNotFound = errors.New("key not found")
	// ErrUnavailable wraps any failure of the underlying medium.
	ErrUnavailable = errors.New("storage unavailable")
)

// Store is a flat key/value store of JSON documents.
type Store interface {
	// Get returns the raw value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// PutAll replaces several keys at once. Either every key is written or
	// none is.
	PutAll(ctx context.Context, values map[string][]byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open creates the store selected by backend inside dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case "", BackendFile:
		s, err := NewFileStore(filepath.Join(dir, stateFileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLite(filepath.Join(dir, "totonoe.db"))
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", backend)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
