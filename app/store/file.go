package store

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"sync"
)

// stateFileName is the name of the file the file backend keeps all keys in.
const stateFileName = "state.json"

// FileStore keeps every key in one indented JSON object on disk.
// Each Put rewrites the whole file.
type FileStore struct {
	path string
	mu   sync.RWMutex
	data map[string]json.RawMessage
}

// NewFileStore loads path, creating its directory when needed. A missing file
// is an empty store; an unreadable or corrupt one is ErrUnavailable.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, unavailable("create state directory", err)
	}

	s := &FileStore{path: path, data: make(map[string]json.RawMessage)}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, unavailable(fmt.Sprintf("read %s", path), err)
	}
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		return nil, unavailable(fmt.Sprintf("parse %s (file might be corrupt)", path), err)
	}
	if s.data == nil {
		s.data = make(map[string]json.RawMessage)
	}
	return s, nil
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	return s.PutAll(ctx, map[string][]byte{key: value})
}

// PutAll updates the keys in memory and rewrites the file once. On a failed
// write the in-memory map is restored, so memory and disk keep agreeing.
func (s *FileStore) PutAll(_ context.Context, values map[string][]byte) error {
	for key, value := range values {
		if !json.Valid(value) {
			return fmt.Errorf("value for %q is not JSON", key)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := maps.Clone(s.data)
	for key, value := range values {
		s.data[key] = append(json.RawMessage(nil), value...)
	}
	if err := s.save(); err != nil {
		s.data = prev
		return err
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.save(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// save writes the map through a temp file so a failed write never truncates
// the previous state. Caller holds mu.
func (s *FileStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o640); err != nil {
		return unavailable(fmt.Sprintf("write %s", tmp), err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return unavailable(fmt.Sprintf("replace %s", s.path), err)
	}
	return nil
}
