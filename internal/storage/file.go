// Package storage provides file persistence helpers shared by the learning
// and lexicon logs.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic replaces the file at path with data. The data is written
// to a temporary file in the same directory and renamed over the original,
// so a crash mid-write never leaves a partially written file.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("os.CreateTemp(%s) > %w", dir, err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Write(%s) > %w", tmp.Name(), err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("tmp.Sync(%s) > %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tmp.Close(%s) > %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("os.Rename(%s, %s) > %w", tmp.Name(), path, err)
	}
	return nil
}

// WriteJSONAtomic marshals data with indentation and writes it atomically.
func WriteJSONAtomic(path string, data any) error {
	encoded, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent() > %w", err)
	}
	return WriteFileAtomic(path, encoded)
}
