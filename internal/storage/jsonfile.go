package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jeopsu/internal/core"
)

// FileRepository persists the whole receipt collection as one JSON array in
// a single file. Human-readable and portable; the file is rewritten in full
// on every save, matching the write-through contract.
type FileRepository struct {
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &FileRepository{path: path}, nil
}

// Load reads the stored collection. A missing file is not an error: the
// register starts empty on first run.
func (r *FileRepository) Load(ctx context.Context) ([]core.ReceiptItem, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []core.ReceiptItem{}, nil
		}
		return nil, fmt.Errorf("read receipts file: %w", err)
	}

	var items []core.ReceiptItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("decode receipts file: %w", err)
	}

	slog.InfoContext(ctx, "Loaded receipts from file", "path", r.path, "count", len(items))
	return items, nil
}

// Save writes the full collection atomically: marshal to a temp file in the
// same directory, then rename over the target.
func (r *FileRepository) Save(ctx context.Context, items []core.ReceiptItem) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode receipts: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), "receipts-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace receipts file: %w", err)
	}

	slog.DebugContext(ctx, "Saved receipts to file", "path", r.path, "count", len(items))
	return nil
}
