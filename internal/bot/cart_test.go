package bot

import (
	"context"
	"testing"

	"github.com/voxshop/shopbot/internal/search"
	"github.com/voxshop/shopbot/internal/store"
)

func cartBot(t *testing.T) (*Bot, *store.Store) {
	t.Helper()
	b, st := setupBot(t, &fakeChannel{}, &scriptedDialogue{}, nil)
	customer := &store.Customer{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}
	if err := st.AddCustomer(context.Background(), customer); err != nil {
		t.Fatalf("adding customer: %v", err)
	}
	b.session.Customer = customer
	return b, st
}

func TestListCart(t *testing.T) {
	b, st := cartBot(t)
	ctx := context.Background()
	if err := st.AddCartItem(ctx, "jane@example.com", "Red Mug: http://x/mug\n"); err != nil {
		t.Fatalf("adding item: %v", err)
	}
	if err := st.AddCartItem(ctx, "jane@example.com", "Wool Scarf: http://x/scarf\n"); err != nil {
		t.Fatalf("adding item: %v", err)
	}
	b.session.Context["shopping_cart"] = "list"
	b.session.Context["cart_item"] = "2"

	b.listCart(ctx)

	want := "1) Red Mug: http://x/mug\n\n2) Wool Scarf: http://x/scarf\n\n"
	if got := b.session.Context["shopping_cart"]; got != want {
		t.Errorf("shopping_cart: got %q, want %q", got, want)
	}
	if b.session.Context["cart_item"] != "2" {
		t.Error("listing must leave cart_item in place for a follow-up delete")
	}
}

func TestListCartEmpty(t *testing.T) {
	b, _ := cartBot(t)
	b.session.Context["shopping_cart"] = "list"

	b.listCart(context.Background())

	if got := b.session.Context["shopping_cart"]; got != "" {
		t.Errorf("empty cart should render as empty string, got %q", got)
	}
}

func TestListCartAnonymous(t *testing.T) {
	b, _ := setupBot(t, &fakeChannel{}, &scriptedDialogue{}, nil)
	b.session.Context["shopping_cart"] = "list"

	b.listCart(context.Background())

	if got := b.session.Context["shopping_cart"]; got != "" {
		t.Errorf("anonymous session should render an empty cart, got %q", got)
	}
}

func TestAddToCart(t *testing.T) {
	b, st := cartBot(t)
	b.session.LastResults = []search.Product{
		{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug"},
		{Ordinal: 2, Name: "Wool Scarf", URL: "http://x/scarf"},
		{Ordinal: 3, Name: "Lantern", URL: "http://x/lantern"},
	}
	b.session.Context["shopping_cart"] = "add"
	b.session.Context["cart_item"] = "2"

	b.addToCart(context.Background())

	items, err := st.ListCart(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("listing cart: %v", err)
	}
	if len(items) != 1 || items[0] != "Wool Scarf: http://x/scarf\n" {
		t.Fatalf("cart items: got %q", items)
	}
	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("cart fields should be cleared after an add")
	}
}

func TestAddToCartNumericOrdinal(t *testing.T) {
	b, st := cartBot(t)
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug"}}
	b.session.Context["cart_item"] = float64(1)

	b.addToCart(context.Background())

	items, _ := st.ListCart(context.Background(), "jane@example.com")
	if len(items) != 1 {
		t.Fatalf("cart items: got %q", items)
	}
}

func TestAddToCartOutOfRange(t *testing.T) {
	b, st := cartBot(t)
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug"}}
	b.session.Context["shopping_cart"] = "add"
	b.session.Context["cart_item"] = "9"

	b.addToCart(context.Background())

	items, _ := st.ListCart(context.Background(), "jane@example.com")
	if len(items) != 0 {
		t.Errorf("nothing should be stored, got %q", items)
	}
	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("cart fields should still be cleared after an out-of-range pick")
	}
}

func TestAddToCartNonNumeric(t *testing.T) {
	b, st := cartBot(t)
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug"}}
	b.session.Context["shopping_cart"] = "add"
	b.session.Context["cart_item"] = "the mug"

	b.addToCart(context.Background())

	items, _ := st.ListCart(context.Background(), "jane@example.com")
	if len(items) != 0 {
		t.Errorf("nothing should be stored, got %q", items)
	}
	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("a bad ordinal must still clear the pending action")
	}
}

func TestAddToCartAnonymous(t *testing.T) {
	b, _ := setupBot(t, &fakeChannel{}, &scriptedDialogue{}, nil)
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug"}}
	b.session.Context["shopping_cart"] = "add"
	b.session.Context["cart_item"] = "1"

	b.addToCart(context.Background())

	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("cart fields should be cleared even without a signed-in customer")
	}
}

func TestDeleteFromCart(t *testing.T) {
	b, st := cartBot(t)
	ctx := context.Background()
	st.AddCartItem(ctx, "jane@example.com", "Red Mug: http://x/mug\n")
	st.AddCartItem(ctx, "jane@example.com", "Wool Scarf: http://x/scarf\n")
	b.session.Context["shopping_cart"] = "delete"
	b.session.Context["cart_item"] = "1"

	b.deleteFromCart(ctx)

	items, err := st.ListCart(ctx, "jane@example.com")
	if err != nil {
		t.Fatalf("listing cart: %v", err)
	}
	if len(items) != 1 || items[0] != "Wool Scarf: http://x/scarf\n" {
		t.Fatalf("cart items: got %q", items)
	}
	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("cart fields should be cleared after a delete")
	}
}

func TestDeleteFromCartOutOfRange(t *testing.T) {
	b, st := cartBot(t)
	ctx := context.Background()
	st.AddCartItem(ctx, "jane@example.com", "Red Mug: http://x/mug\n")
	b.session.Context["shopping_cart"] = "delete"
	b.session.Context["cart_item"] = "3"

	b.deleteFromCart(ctx)

	items, _ := st.ListCart(ctx, "jane@example.com")
	if len(items) != 1 {
		t.Errorf("cart should be unchanged, got %q", items)
	}
	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("cart fields should still be cleared")
	}
}

func TestDeleteFromCartDuplicates(t *testing.T) {
	b, st := cartBot(t)
	ctx := context.Background()
	st.AddCartItem(ctx, "jane@example.com", "Red Mug: http://x/mug\n")
	st.AddCartItem(ctx, "jane@example.com", "Red Mug: http://x/mug\n")
	b.session.Context["cart_item"] = "2"

	b.deleteFromCart(ctx)

	items, _ := st.ListCart(ctx, "jane@example.com")
	if len(items) != 1 {
		t.Errorf("exactly one copy should be removed, got %q", items)
	}
}

func TestDeleteFromCartNonNumeric(t *testing.T) {
	b, st := cartBot(t)
	ctx := context.Background()
	st.AddCartItem(ctx, "jane@example.com", "Red Mug: http://x/mug\n")
	b.session.Context["shopping_cart"] = "delete"
	b.session.Context["cart_item"] = "the mug"

	b.deleteFromCart(ctx)

	items, _ := st.ListCart(ctx, "jane@example.com")
	if len(items) != 1 {
		t.Errorf("cart should be unchanged, got %q", items)
	}
	if b.session.Context["shopping_cart"] != "" || b.session.Context["cart_item"] != "" {
		t.Error("a bad ordinal must still clear the pending action")
	}
}
