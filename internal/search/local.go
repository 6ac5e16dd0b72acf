package search

import (
	"context"
	"fmt"

	"github.com/voxshop/shopbot/internal/catalog"
)

// LocalService answers queries from the local catalog vector index.
// Hits come back as structured results under SourceCatalog, so no
// text scanning is involved downstream.
type LocalService struct {
	index *catalog.Index
}

// NewLocalService wraps the given index as a search backend.
func NewLocalService(ix *catalog.Index) *LocalService {
	return &LocalService{index: ix}
}

func (s *LocalService) Query(ctx context.Context, text string, count int) (*Response, error) {
	hits, err := s.index.Query(ctx, text, count)
	if err != nil {
		return nil, fmt.Errorf("catalog query: %w", err)
	}

	results := make([]Result, len(hits))
	for i, h := range hits {
		score := float64(h.Similarity)
		results[i] = Result{
			Score: &score,
			Metadata: map[string]any{
				"name":  h.Product.Name,
				"url":   h.Product.URL,
				"image": h.Product.ImageURL,
			},
		}
	}

	return &Response{
		MatchingResults: len(results),
		Results:         results,
	}, nil
}
