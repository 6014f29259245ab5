// Package store holds the per-IIN cache of assembled household profiles.
// Entries are serialized copies; a cached profile can never be mutated by a
// reader.
package store

import (
	"encoding/json"
	"fmt"

	"famcard/internal/family/models"
)

func encode(f *models.Family) ([]byte, error) {
	raw, err := json.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("encode family: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (*models.Family, error) {
	var f models.Family
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode cached family: %w", err)
	}
	return &f, nil
}
