// Package store persists ordered collections as single JSON files.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// JSONFile is the durable persistence layer for one collection. Every save
// rewrites the whole file; callers serialize their own read-modify-write
// cycles.
type JSONFile[T any] struct {
	path string
	log  *slog.Logger
}

// NewJSONFile binds a store to a file path, creating the parent directory
// so a fresh deployment works without provisioning steps.
func NewJSONFile[T any](path string) (*JSONFile[T], error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return &JSONFile[T]{path: path, log: slog.Default()}, nil
}

// Path returns the backing file path.
func (f *JSONFile[T]) Path() string { return f.path }

// Load reads the whole collection. A missing file means a fresh start; an
// unreadable or malformed file is discarded the same way so the service
// stays available on corrupt state. Load never fails the caller.
func (f *JSONFile[T]) Load() []T {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			f.discard("read", err)
		}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		f.discard("decode", err)
		return nil
	}
	return items
}

// Save rewrites the file with the full collection. Write failures propagate;
// a failed save must not look like success to the caller.
func (f *JSONFile[T]) Save(items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", f.path, err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f.path, err)
	}
	return nil
}

// discard is the single swallow-and-log policy for recoverable load
// failures: the stored collection is abandoned and the caller starts empty.
func (f *JSONFile[T]) discard(op string, err error) {
	f.log.Error("discarding stored collection",
		slog.String("file", f.path),
		slog.String("op", op),
		slog.String("error", err.Error()))
}
