package search

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the search API on the router. searcher may be
// nil when no backend is configured; the endpoint then reports 503.
func RegisterRoutes(r chi.Router, searcher ProductSearcher) {
	r.Get("/api/search", handleSearch(searcher))
}

func handleSearch(searcher ProductSearcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if searcher == nil {
			http.Error(w, `{"error": "no search backend configured"}`, http.StatusServiceUnavailable)
			return
		}

		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, `{"error": "missing query parameter q"}`, http.StatusBadRequest)
			return
		}

		products, text, err := searcher.Search(r.Context(), query)
		if err != nil {
			log.Printf("search: query %q failed: %v", query, err)
			http.Error(w, `{"error": "search failed"}`, http.StatusBadGateway)
			return
		}

		if products == nil {
			products = []Product{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"products": products,
			"text":     text,
		})
	}
}
