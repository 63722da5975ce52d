package telemetry

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// FileRepository stores one record collection as a JSON array in a single
// file. One parameterized implementation serves both collections; the
// record type is the only thing that varies.
type FileRepository[T any] struct {
	path string
	mu   sync.Mutex
}

// NewFileRepository ensures the parent directory exists and touches the
// file so later loads see an empty collection instead of a missing path.
func NewFileRepository[T any](path string) (*FileRepository[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("touch file: %w", err)
	}
	_ = f.Close()
	return &FileRepository[T]{path: path}, nil
}

// Load reads the persisted collection. An empty or malformed file yields an
// empty collection; a fresh install must start clean rather than fail.
func (r *FileRepository[T]) Load() ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	var records []T
	dec := json.NewDecoder(f)
	if err := dec.Decode(&records); err != nil {
		if err == io.EOF {
			return []T{}, nil
		}
		// malformed -> start fresh
		return []T{}, nil
	}
	return records, nil
}

// Save replaces the persisted collection with the given sequence.
func (r *FileRepository[T]) Save(records []T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, err := os.OpenFile(r.path, os.O_TRUNC|os.O_WRONLY|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open write: %w", err)
	}
	defer func(f *os.File) {
		_ = f.Close()
	}(f)
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
