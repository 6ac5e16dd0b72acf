package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Product is a single entry in the store catalog.
type Product struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// embeddingText builds the text that represents the product in the
// vector index. Name and description carry most of the signal.
func (p Product) embeddingText() string {
	parts := make([]string, 0, 3)
	if p.Name != "" {
		parts = append(parts, p.Name)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.Category != "" {
		parts = append(parts, "category: "+p.Category)
	}
	return strings.Join(parts, ". ")
}

// LoadFile reads a catalog from a JSON file containing an array of
// products. Products without an ID get one assigned so they can be
// indexed.
func LoadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("parse catalog file %s: %w", path, err)
	}

	for i := range products {
		if products[i].Name == "" {
			return nil, fmt.Errorf("catalog entry %d has no name", i)
		}
		if products[i].ID == "" {
			products[i].ID = uuid.New().String()
		}
	}

	return products, nil
}
