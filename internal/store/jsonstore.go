// Package store keeps raw JSON documents (the league dataset, archived draft
// ledgers) under a root directory.
package store

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type JSONStore struct {
	Root string // e.g. "data/raw"
}

func NewJSONStore(root string) *JSONStore {
	return &JSONStore{Root: root}
}

func (s *JSONStore) Path(rel string) string {
	return filepath.Join(s.Root, filepath.FromSlash(rel))
}

func (s *JSONStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// WriteRaw stores body at rel, re-indenting it when pretty is set and the
// body is valid JSON. Invalid JSON is written as-is.
func (s *JSONStore) WriteRaw(rel string, body []byte, pretty bool) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	if pretty {
		buf := &bytes.Buffer{}
		if err := json.Indent(buf, body, "", "  "); err == nil {
			buf.WriteByte('\n')
			body = buf.Bytes()
		}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// WriteJSON marshals v with indentation and stores it at rel.
func (s *JSONStore) WriteJSON(rel string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", rel, err)
	}
	b = append(b, '\n')
	return s.WriteRaw(rel, b, false)
}

// ReadRaw returns the stored bytes; a missing file yields an error
// satisfying errors.Is(err, os.ErrNotExist).
func (s *JSONStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}
