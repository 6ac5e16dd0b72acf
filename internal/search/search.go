// Package search turns free-text product queries into displayable
// results. Backends return raw, source-specific documents; the
// extraction and formatting layers reduce them to a uniform product
// list plus a rendered chat reply.
package search

import (
	"context"
)

const (
	defaultQueryCount = 10
	defaultKeepCount  = 5
)

// Data sources a backend can be fed with. The source selects the
// extraction strategy applied to raw results.
const (
	SourceAmazon   = "amazon"
	SourceIBMStore = "ibm_store"
	SourceCatalog  = "catalog"
)

// Result is one raw entry returned by a search backend. All fields are
// optional; which ones carry data depends on the source.
type Result struct {
	Score    *float64       `json:"score,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Metadata map[string]any `json:"extracted_metadata,omitempty"`
}

// Response is the raw answer to one backend query.
type Response struct {
	MatchingResults int      `json:"matching_results"`
	Results         []Result `json:"results"`
}

// Product is one formatted, displayable hit. Ordinal is the 1-based
// position in the current display list and is what users reference when
// they say "add item 2".
type Product struct {
	Ordinal  int    `json:"ordinal"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	ImageURL string `json:"image_url"`
}

// Service is a raw search backend.
type Service interface {
	Query(ctx context.Context, text string, count int) (*Response, error)
}

// ProductSearcher answers a free-text query with formatted products and
// a rendered reply. The product list may be empty even when the reply
// text is not.
type ProductSearcher interface {
	Search(ctx context.Context, text string) ([]Product, string, error)
}

// Options configure how a Searcher queries and formats.
type Options struct {
	// Source selects the extraction strategy for raw results.
	Source string
	// QueryCount is how many results to request from the backend.
	QueryCount int
	// KeepCount caps how many results are shown after filtering.
	KeepCount int
	// ScoreFilter drops results scoring at or below it; 0 disables.
	ScoreFilter float64
}

// Searcher couples a backend with result formatting. Every surface that
// searches (bot, CLI, HTTP API, MCP tools) goes through one.
type Searcher struct {
	svc  Service
	opts Options
}

// NewSearcher creates a Searcher over the given backend.
func NewSearcher(svc Service, opts Options) *Searcher {
	if opts.QueryCount <= 0 {
		opts.QueryCount = defaultQueryCount
	}
	if opts.KeepCount <= 0 {
		opts.KeepCount = defaultKeepCount
	}
	return &Searcher{svc: svc, opts: opts}
}

// Search runs one query and returns the formatted products together
// with the text rendering for the chat reply.
func (s *Searcher) Search(ctx context.Context, text string) ([]Product, string, error) {
	resp, err := s.svc.Query(ctx, text, s.opts.QueryCount)
	if err != nil {
		return nil, "", err
	}
	products, rendered := Format(resp, s.opts.Source, s.opts.ScoreFilter, s.opts.KeepCount)
	return products, rendered, nil
}
