package search

import (
	"fmt"
	"log"
	"strings"
)

// Format reduces a raw backend response to the formatted product list
// and the text rendering sent back to the chat. Results scoring at or
// below scoreFilter are dropped first (0 disables filtering), then the
// list is truncated to keepCount. An empty or missing result list is not
// an error; it yields an empty list and empty text.
func Format(resp *Response, source string, scoreFilter float64, keepCount int) ([]Product, string) {
	if resp == nil || len(resp.Results) == 0 {
		return []Product{}, ""
	}

	results := resp.Results
	if scoreFilter > 0 {
		kept := make([]Result, 0, len(results))
		for _, r := range results {
			if r.Score != nil && *r.Score > scoreFilter {
				kept = append(kept, r)
			}
		}
		log.Printf("search: score filter %g kept %d of %d results", scoreFilter, len(kept), len(results))
		results = kept
	}

	if keepCount <= 0 {
		keepCount = defaultKeepCount
	}
	if len(results) > keepCount {
		results = results[:keepCount]
	}

	products := make([]Product, 0, len(results))
	var sb strings.Builder
	for i, r := range results {
		name, url, image := Extract(r, source)
		p := Product{
			Ordinal:  i + 1,
			Name:     name,
			URL:      url,
			ImageURL: image,
		}
		products = append(products, p)
		sb.WriteString(fmt.Sprintf("\n%d) %s\n%s", p.Ordinal, p.Name, p.ImageURL))
	}

	return products, sb.String()
}
