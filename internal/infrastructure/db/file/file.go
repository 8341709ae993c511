// Package file persists the document as a JSON file on local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/smarttodo/tasks-api/internal/infrastructure/docstore"
)

const DefaultPath = "data/db.json"

// Backend writes to a sibling temp file and renames it over the target, so a
// reader sees either the old file or the new one.
type Backend struct {
	path string
}

func NewBackend(path string) *Backend {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}
	return &Backend{path: path}
}

func (b *Backend) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, docstore.ErrNoSnapshot
		}
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	return data, nil
}

func (b *Backend) Write(_ context.Context, data []byte) error {
	dir := filepath.Dir(b.path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// Ping verifies the target directory exists or can be created.
func (b *Backend) Ping(_ context.Context) error {
	dir := filepath.Dir(b.path)
	info, err := os.Stat(dir)
	if errors.Is(err, os.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func (b *Backend) Name() string { return "file" }
