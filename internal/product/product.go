// Package product loads the product metadata that seeds the coach's system
// prompt and the on-topic guardrail.
package product

import (
	"encoding/json"
	"fmt"
	"os"
)

// Metadata describes the product the coach speaks for.
type Metadata struct {
	ProductName string   `json:"productName"`
	Description string   `json:"description"`
	Features    []string `json:"features"`
}

// Load reads metadata from the JSON file at path.
func Load(path string) (*Metadata, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read product metadata: %w", err)
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("parse product metadata: %w", err)
	}
	return &meta, nil
}
