package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/voxshop/shopbot/internal/search"
)

const defaultSearchLimit = 5

// handleSearchProducts runs a product search and renders the hits.
func (s *Server) handleSearchProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	if s.searcher == nil {
		return mcp.NewToolResultError("no search backend configured"), nil
	}

	limit := request.GetInt("limit", defaultSearchLimit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	products, text, err := s.searcher.Search(ctx, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(products) > limit {
		products = products[:limit]
	}

	if len(products) == 0 {
		// Canned backends return rendered text without product records.
		if text != "" {
			return mcp.NewToolResultText(text), nil
		}
		return mcp.NewToolResultText("No products found."), nil
	}

	return mcp.NewToolResultText(formatProducts(products)), nil
}

// handleListCart renders a customer's cart as a numbered list.
func (s *Server) handleListCart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: email"), nil
	}

	items, err := s.store.ListCart(ctx, email)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing cart: %v", err)), nil
	}
	if len(items) == 0 {
		return mcp.NewToolResultText("The cart is empty."), nil
	}

	var sb strings.Builder
	for i, item := range items {
		sb.WriteString(fmt.Sprintf("%d) %s\n", i+1, strings.TrimRight(item, "\n")))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleAddCartItem stores an item in an existing customer's cart.
func (s *Server) handleAddCartItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: email"), nil
	}
	item, err := request.RequireString("item")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: item"), nil
	}

	customer, err := s.store.FindCustomer(ctx, email)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("finding customer: %v", err)), nil
	}
	if customer == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no customer with email %q", email)), nil
	}

	if err := s.store.AddCartItem(ctx, email, item); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("adding item: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Added %q to the cart.", strings.TrimRight(item, "\n"))), nil
}

// handleRemoveCartItem deletes the item at the given list position.
func (s *Server) handleRemoveCartItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := request.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: email"), nil
	}
	ordinal := request.GetInt("ordinal", 0)
	if ordinal <= 0 {
		return mcp.NewToolResultError("ordinal must be a positive number"), nil
	}

	items, err := s.store.ListCart(ctx, email)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing cart: %v", err)), nil
	}
	if ordinal > len(items) {
		return mcp.NewToolResultError(fmt.Sprintf("no item %d in the cart", ordinal)), nil
	}

	item := items[ordinal-1]
	if err := s.store.DeleteCartItem(ctx, email, item); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("removing item: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Removed %q from the cart.", strings.TrimRight(item, "\n"))), nil
}

// formatProducts converts search hits into a numbered text listing.
func formatProducts(products []search.Product) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d product(s):\n", len(products)))

	for _, p := range products {
		sb.WriteString(fmt.Sprintf("\n%d) %s\n", p.Ordinal, p.Name))
		if p.URL != "" {
			sb.WriteString(fmt.Sprintf("URL: %s\n", p.URL))
		}
		if p.ImageURL != "" {
			sb.WriteString(fmt.Sprintf("Image: %s\n", p.ImageURL))
		}
	}

	return sb.String()
}
