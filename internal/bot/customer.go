package bot

import (
	"context"
	"log"

	"github.com/voxshop/shopbot/internal/store"
)

// initCustomer resolves the customer behind a channel user id on first
// contact: profile lookup, then find-or-create by email, then merge the
// identity into the context so the dialogue service can personalize.
// Any failure leaves the session customer-less; cart actions no-op
// until a later message resolves it.
func (b *Bot) initCustomer(ctx context.Context, userID string) {
	profile, err := b.channel.Profile(userID)
	if err != nil {
		log.Printf("bot: profile lookup for %s: %v", userID, err)
		return
	}
	if profile.Email == "" {
		log.Printf("bot: no email on profile for %s, session stays anonymous", userID)
		return
	}

	customer, err := b.store.FindCustomer(ctx, profile.Email)
	if err != nil {
		log.Printf("bot: find customer %s: %v", profile.Email, err)
		return
	}
	if customer == nil {
		customer = &store.Customer{
			Email:     profile.Email,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		}
		// Keep the session customer even if persisting fails; the
		// conversation can continue and cart writes report their own
		// errors.
		if err := b.store.AddCustomer(ctx, customer); err != nil {
			log.Printf("bot: add customer %s: %v", customer.Email, err)
		} else {
			log.Printf("bot: created customer %s", customer.Email)
		}
	}

	b.session.Customer = customer
	b.session.Context = MergeContext(b.session.Context, map[string]any{
		"type":       "customer",
		"email":      customer.Email,
		"first_name": customer.FirstName,
		"last_name":  customer.LastName,
	})
}
