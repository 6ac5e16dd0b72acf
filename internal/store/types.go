package store

import "time"

// Customer is one shopper known to the assistant, keyed by email.
// The cart is stored separately, one row per item, and surfaces here
// only through the cart operations.
type Customer struct {
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}
