package repo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/agu27/EuroPlan/internal/domain"
)

// fileKV stores each key as one file inside a data directory.
type fileKV struct {
	dir string
}

// NewFileKV constructs a KVStore rooted at dir, creating the directory if needed.
// Keys are path-escaped so any key maps to a single file name.
func NewFileKV(dir string) (KVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("repo.NewFileKV: create data dir: %w", err)
	}
	return &fileKV{dir: dir}, nil
}

func (f *fileKV) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Get reads the file for key.
func (f *fileKV) Get(ctx context.Context, key string) ([]byte, error) {
	_ = ctx
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("repo.fileKV.Get: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("repo.fileKV.Get: %w", err)
	}
	return data, nil
}

// Set writes value to a temp file and renames it over the old one, so a
// crash mid-write never leaves a truncated value behind.
func (f *fileKV) Set(ctx context.Context, key string, value []byte) error {
	_ = ctx
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return fmt.Errorf("repo.fileKV.Set: write temp file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("repo.fileKV.Set: replace file: %w", err)
	}
	return nil
}

// Delete removes the file for key.
func (f *fileKV) Delete(ctx context.Context, key string) error {
	_ = ctx
	if err := os.Remove(f.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("repo.fileKV.Delete: %w", err)
	}
	return nil
}
