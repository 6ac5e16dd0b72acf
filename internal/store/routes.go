package store

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the customer and cart API routes.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/customers/{email}", func(r chi.Router) {
		r.Get("/", handleGetCustomer(store))
		r.Get("/cart", handleListCart(store))
		r.Post("/cart", handleAddCartItem(store))
		r.Delete("/cart/{ordinal}", handleDeleteCartItem(store))
	})
}

func handleGetCustomer(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		c, err := store.FindCustomer(r.Context(), email)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if c == nil {
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(c)
	}
}

func handleListCart(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		items, err := store.ListCart(r.Context(), email)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if items == nil {
			items = []string{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string][]string{"items": items})
	}
}

type addCartItemRequest struct {
	Item string `json:"item"`
}

func handleAddCartItem(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		var req addCartItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Item == "" {
			http.Error(w, `{"error":"item is required"}`, http.StatusBadRequest)
			return
		}

		if err := store.AddCartItem(r.Context(), email, req.Item); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"status": "added"})
	}
}

// handleDeleteCartItem resolves a 1-based ordinal against the stored
// cart. Unlike the bot's silent no-op, the HTTP surface reports an
// out-of-range ordinal as 404 so callers get feedback.
func handleDeleteCartItem(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := chi.URLParam(r, "email")
		ordinal, err := strconv.Atoi(chi.URLParam(r, "ordinal"))
		if err != nil || ordinal < 1 {
			http.Error(w, `{"error":"ordinal must be a positive integer"}`, http.StatusBadRequest)
			return
		}

		items, err := store.ListCart(r.Context(), email)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		if ordinal > len(items) {
			http.Error(w, `{"error":"no such item"}`, http.StatusNotFound)
			return
		}

		if err := store.DeleteCartItem(r.Context(), email, items[ordinal-1]); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
