package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// listCart renders the stored cart as numbered lines and writes the
// rendering into the context, replacing the "list" trigger value so the
// action does not repeat. The cart_item field is left alone.
func (b *Bot) listCart(ctx context.Context) {
	rendered := ""
	if b.session.Customer != nil {
		items, err := b.store.ListCart(ctx, b.session.Customer.Email)
		if err != nil {
			log.Printf("bot: list cart: %v", err)
		}
		var sb strings.Builder
		for i, item := range items {
			sb.WriteString(fmt.Sprintf("%d) %s\n", i+1, item))
		}
		rendered = sb.String()
	}
	b.session.Context["shopping_cart"] = rendered
}

// addToCart resolves the pending ordinal against the last formatted
// search results and stores the chosen item as "<name>: <url>\n".
// An out-of-range ordinal, a missing result list and a missing customer
// all fail quietly; a non-numeric ordinal is logged. The pending action
// is cleared in every case so it cannot fire again on the next turn.
func (b *Bot) addToCart(ctx context.Context) {
	defer b.clearCartContext()

	ordinal, err := ordinalFrom(b.session.Context["cart_item"])
	if err != nil {
		log.Printf("bot: cart_item must be a number: %v", err)
		return
	}

	if b.session.Customer != nil {
		for i, p := range b.session.LastResults {
			if i+1 == ordinal {
				item := fmt.Sprintf("%s: %s\n", p.Name, p.URL)
				if err := b.store.AddCartItem(ctx, b.session.Customer.Email, item); err != nil {
					log.Printf("bot: add cart item: %v", err)
				}
			}
		}
	}
}

// deleteFromCart resolves the pending ordinal against the stored cart
// and deletes that item by value. Same quiet-failure and clearing rules
// as add.
func (b *Bot) deleteFromCart(ctx context.Context) {
	defer b.clearCartContext()

	ordinal, err := ordinalFrom(b.session.Context["cart_item"])
	if err != nil {
		log.Printf("bot: cart_item must be a number: %v", err)
		return
	}

	if b.session.Customer != nil {
		items, err := b.store.ListCart(ctx, b.session.Customer.Email)
		if err != nil {
			log.Printf("bot: list cart: %v", err)
		}
		for i, item := range items {
			if i+1 == ordinal {
				if err := b.store.DeleteCartItem(ctx, b.session.Customer.Email, item); err != nil {
					log.Printf("bot: delete cart item: %v", err)
				}
			}
		}
	}
}

// clearCartContext clears the pending cart action so it is not repeated
// on the next turn.
func (b *Bot) clearCartContext() {
	b.session.Context["shopping_cart"] = ""
	b.session.Context["cart_item"] = ""
}
