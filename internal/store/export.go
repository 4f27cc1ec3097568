package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ExportOutput describes a completed session export.
type ExportOutput struct {
	Path  string `json:"path"`
	Count int    `json:"count"`
}

// ImportOutput describes a completed session import.
type ImportOutput struct {
	Count int `json:"count"`
}

// Export writes every snapshot to a single JSON file mapping key to raw
// snapshot value. If path is empty, a timestamped file under baseDir/backups
// is used.
func Export(b Backend, baseDir, path string) (*ExportOutput, error) {
	if path == "" {
		name := fmt.Sprintf("session-%s.json", time.Now().UTC().Format("20060102-150405"))
		path = filepath.Join(baseDir, "backups", name)
	}

	keys, err := b.Keys()
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	dump := make(map[string]json.RawMessage, len(keys))
	for _, k := range keys {
		raw, ok, err := b.Get(k)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", k, err)
		}
		if !ok {
			continue
		}
		dump[k] = json.RawMessage(raw)
	}

	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	return &ExportOutput{Path: path, Count: len(dump)}, nil
}

// Import restores snapshots from a file produced by Export. Existing
// snapshots under the same keys are replaced; keys absent from the file are
// left untouched.
func Import(b Backend, path string) (*ImportOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	var dump map[string]json.RawMessage
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("import: malformed backup: %w", err)
	}

	count := 0
	for k, raw := range dump {
		if err := b.Put(k, string(raw)); err != nil {
			return nil, fmt.Errorf("import %s: %w", k, err)
		}
		count++
	}

	return &ImportOutput{Count: count}, nil
}
