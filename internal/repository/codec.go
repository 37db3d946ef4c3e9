package repository

import (
	"encoding/json"
	"fmt"

	"equipment-rental-manager/internal/domain"
	"equipment-rental-manager/internal/inventory"
)

// Encode renders the reconciled snapshot as the pretty-printed document.
func Encode(db domain.Database) ([]byte, error) {
	data, err := json.MarshalIndent(inventory.Reconcile(db.Normalize()), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode database: %w", err)
	}
	return data, nil
}

// Decode parses a document, fills missing defaults and reconciles it.
func Decode(data []byte) (domain.Database, error) {
	var db domain.Database
	if err := json.Unmarshal(data, &db); err != nil {
		return domain.Database{}, fmt.Errorf("failed to parse database document: %w", err)
	}
	return inventory.Reconcile(db.Normalize()), nil
}
