package storage

import (
	"encoding/json"
	"fmt"

	"github.com/kristykoh/krispyledger-web/internal/models"
)

// Encode serializes a document to its persisted JSON form.
func Encode(doc *models.LedgerDocument) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger: %w", err)
	}
	return data, nil
}

// Decode parses a persisted document and repairs missing fields.
func Decode(data []byte) (*models.LedgerDocument, error) {
	var doc models.LedgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode ledger: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}
