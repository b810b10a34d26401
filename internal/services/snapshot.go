package services

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"flight-deals-service/internal/domain"
)

// WriteSnapshot overwrites the JSON snapshot at path with the result
// set, creating parent directories as needed. The write goes through a
// temp file and rename so a crashed run never leaves a torn snapshot.
func WriteSnapshot(path string, rs *domain.ResultSet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("write snapshot: create %q: %w", dir, err)
	}

	data, err := json.MarshalIndent(rs, "", "  ")
	if err != nil {
		return fmt.Errorf("write snapshot: marshal: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".live_deals-*.json")
	if err != nil {
		return fmt.Errorf("write snapshot: temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: close temp: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: rename into place: %w", err)
	}

	return nil
}

// ReadSnapshotItems loads the items of a previously written snapshot
// for the delivery stage.
func ReadSnapshotItems(path string) ([]domain.DeliveryItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot struct {
		Meta  domain.Meta           `json:"meta"`
		Items []domain.DeliveryItem `json:"items"`
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("read snapshot: parse %q: %w", path, err)
	}

	return snapshot.Items, nil
}
