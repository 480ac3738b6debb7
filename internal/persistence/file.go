package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"inventory-manager/internal/core"
)

// FileExtension is appended to save targets that lack it.
const FileExtension = ".inv"

// NormalizeTarget appends FileExtension unless path already ends with it
// (compared case-insensitively). Blank paths are returned unchanged.
func NormalizeTarget(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return path
	}
	if strings.HasSuffix(strings.ToLower(path), FileExtension) {
		return path
	}
	return path + FileExtension
}

// FileBackend stores snapshots as JSON arrays of {name, quantity, price}.
type FileBackend struct{}

func NewFileBackend() *FileBackend {
	return &FileBackend{}
}

// Save writes items to a temporary file next to path and renames it into
// place, so a failed save never truncates an existing snapshot.
func (b *FileBackend) Save(_ context.Context, path string, items []core.Item) (err error) {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("%w: empty path", ErrWrite)
	}

	data, err := json.MarshalIndent(toRecords(items), "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Load reads and validates a snapshot written by Save.
func (b *FileBackend) Load(_ context.Context, path string) ([]core.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return decode(data)
}

func decode(data []byte) ([]core.Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var records []record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after item list", ErrDeserialization)
	}
	return toItems(records)
}
