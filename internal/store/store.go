package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/voxshop/shopbot/internal/db"
)

// Store manages persistence of customers and their shopping carts.
type Store struct {
	db *db.DB
}

// NewStore creates a new customer store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// FindCustomer retrieves a customer by email. Returns (nil, nil) when
// the customer does not exist.
func (s *Store) FindCustomer(ctx context.Context, email string) (*Customer, error) {
	var c Customer
	err := s.db.QueryRowContext(ctx,
		`SELECT email, first_name, last_name, created_at FROM customers WHERE email = ?`, email,
	).Scan(&c.Email, &c.FirstName, &c.LastName, &c.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("finding customer: %w", err)
	}
	return &c, nil
}

// AddCustomer persists a new customer.
func (s *Store) AddCustomer(ctx context.Context, c *Customer) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO customers (email, first_name, last_name, created_at) VALUES (?, ?, ?, ?)`,
		c.Email, c.FirstName, c.LastName, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting customer: %w", err)
	}
	return nil
}

// ListCart returns the customer's cart items in insertion order.
func (s *Store) ListCart(ctx context.Context, email string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT item FROM cart_items WHERE email = ? ORDER BY created_at ASC, id ASC`, email,
	)
	if err != nil {
		return nil, fmt.Errorf("listing cart: %w", err)
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, fmt.Errorf("scanning cart item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// AddCartItem appends an item to the customer's cart.
func (s *Store) AddCartItem(ctx context.Context, email, item string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_items (id, email, item, created_at) VALUES (?, ?, ?, ?)`,
		uuid.New().String(), email, item, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("adding cart item: %w", err)
	}
	return nil
}

// DeleteCartItem removes one occurrence of the item from the
// customer's cart, oldest first, so duplicates survive a single delete.
// Deleting an item that is not in the cart is not an error.
func (s *Store) DeleteCartItem(ctx context.Context, email, item string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE id IN (
			SELECT id FROM cart_items WHERE email = ? AND item = ?
			ORDER BY created_at ASC, id ASC LIMIT 1
		)`,
		email, item,
	)
	if err != nil {
		return fmt.Errorf("deleting cart item: %w", err)
	}
	return nil
}
