// Package localstore persists the snapshot to a local JSON file. The file is
// the fallback source when the remote store is unreachable at startup.
package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"stockledger/pkg/models"
)

type FileStore struct {
	path string
}

func New(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the most recent locally persisted snapshot. The second return
// value is false when no snapshot has ever been saved.
func (s *FileStore) Load() (models.Snapshot, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Snapshot{}, false, nil
		}
		return models.Snapshot{}, false, fmt.Errorf("read local snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return models.Snapshot{}, false, fmt.Errorf("decode local snapshot: %w", err)
	}

	return snapshot, true, nil
}

// Save writes the snapshot atomically via a temp file and rename, so a crash
// mid-write never leaves a truncated snapshot behind.
func (s *FileStore) Save(snapshot models.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode local snapshot: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace local snapshot: %w", err)
	}

	return nil
}
