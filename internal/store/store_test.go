package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/voxshop/shopbot/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestAddAndFindCustomer(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	c := &Customer{
		Email:     "fred@example.com",
		FirstName: "Fred",
		LastName:  "Flintstone",
	}
	if err := store.AddCustomer(ctx, c); err != nil {
		t.Fatalf("AddCustomer: %v", err)
	}

	fetched, err := store.FindCustomer(ctx, "fred@example.com")
	if err != nil {
		t.Fatalf("FindCustomer: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected customer, got nil")
	}
	if fetched.FirstName != "Fred" || fetched.LastName != "Flintstone" {
		t.Errorf("unexpected customer: %+v", fetched)
	}
	if fetched.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestFindCustomerMissing(t *testing.T) {
	store := setupTestStore(t)

	c, err := store.FindCustomer(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("FindCustomer: %v", err)
	}
	if c != nil {
		t.Errorf("expected nil for unknown customer, got %+v", c)
	}
}

func TestCartAddListDelete(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.AddCustomer(ctx, &Customer{Email: "w@example.com"}); err != nil {
		t.Fatalf("AddCustomer: %v", err)
	}

	items, err := store.ListCart(ctx, "w@example.com")
	if err != nil {
		t.Fatalf("ListCart: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}

	for _, item := range []string{"Red Mug: http://shop/1\n", "Blue Shirt: http://shop/2\n"} {
		if err := store.AddCartItem(ctx, "w@example.com", item); err != nil {
			t.Fatalf("AddCartItem: %v", err)
		}
	}

	items, err = store.ListCart(ctx, "w@example.com")
	if err != nil {
		t.Fatalf("ListCart: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0] != "Red Mug: http://shop/1\n" {
		t.Errorf("insertion order not preserved: got %q first", items[0])
	}

	if err := store.DeleteCartItem(ctx, "w@example.com", items[0]); err != nil {
		t.Fatalf("DeleteCartItem: %v", err)
	}

	items, _ = store.ListCart(ctx, "w@example.com")
	if len(items) != 1 {
		t.Fatalf("expected 1 item after delete, got %d", len(items))
	}
	if items[0] != "Blue Shirt: http://shop/2\n" {
		t.Errorf("wrong item deleted, remaining: %q", items[0])
	}
}

func TestDeleteCartItemOneOfDuplicates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.AddCustomer(ctx, &Customer{Email: "d@example.com"}); err != nil {
		t.Fatalf("AddCustomer: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := store.AddCartItem(ctx, "d@example.com", "Mug: http://shop/1\n"); err != nil {
			t.Fatalf("AddCartItem: %v", err)
		}
	}

	if err := store.DeleteCartItem(ctx, "d@example.com", "Mug: http://shop/1\n"); err != nil {
		t.Fatalf("DeleteCartItem: %v", err)
	}

	items, _ := store.ListCart(ctx, "d@example.com")
	if len(items) != 1 {
		t.Errorf("expected one duplicate to survive, got %d items", len(items))
	}
}

func TestDeleteCartItemMissingIsNoError(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.AddCustomer(ctx, &Customer{Email: "e@example.com"}); err != nil {
		t.Fatalf("AddCustomer: %v", err)
	}
	if err := store.DeleteCartItem(ctx, "e@example.com", "not in cart"); err != nil {
		t.Errorf("deleting a missing item should not error, got %v", err)
	}
}

// --- Route tests ---

func setupTestRouter(t *testing.T) (chi.Router, *Store) {
	t.Helper()
	store := setupTestStore(t)
	r := chi.NewRouter()
	RegisterRoutes(r, store)
	return r, store
}

func TestGetCustomerRoute(t *testing.T) {
	r, store := setupTestRouter(t)
	ctx := context.Background()

	if err := store.AddCustomer(ctx, &Customer{Email: "amy@example.com", FirstName: "Amy"}); err != nil {
		t.Fatalf("AddCustomer: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/customers/amy@example.com/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var c Customer
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if c.FirstName != "Amy" {
		t.Errorf("expected Amy, got %q", c.FirstName)
	}

	req = httptest.NewRequest("GET", "/api/customers/nobody@example.com/", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown customer, got %d", w.Code)
	}
}

func TestCartRoutes(t *testing.T) {
	r, store := setupTestRouter(t)
	ctx := context.Background()

	if err := store.AddCustomer(ctx, &Customer{Email: "bob@example.com"}); err != nil {
		t.Fatalf("AddCustomer: %v", err)
	}

	// Add an item.
	body := strings.NewReader(`{"item":"Travel Mug: http://shop/9\n"}`)
	req := httptest.NewRequest("POST", "/api/customers/bob@example.com/cart", body)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// List it back.
	req = httptest.NewRequest("GET", "/api/customers/bob@example.com/cart", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var listResp map[string][]string
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(listResp["items"]) != 1 {
		t.Fatalf("expected 1 item, got %d", len(listResp["items"]))
	}

	// Delete by ordinal.
	req = httptest.NewRequest("DELETE", "/api/customers/bob@example.com/cart/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}

	// Out-of-range delete reports not found.
	req = httptest.NewRequest("DELETE", "/api/customers/bob@example.com/cart/3", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for out-of-range ordinal, got %d", w.Code)
	}

	// Non-numeric ordinal is a bad request.
	req = httptest.NewRequest("DELETE", "/api/customers/bob@example.com/cart/two", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric ordinal, got %d", w.Code)
	}
}
