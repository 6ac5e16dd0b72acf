package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/voxshop/shopbot/internal/search"
	"github.com/voxshop/shopbot/internal/store"
)

// Version is set via ldflags at build time.
var Version = "dev"

// CartStore is the slice of the customer store the cart tools need.
type CartStore interface {
	FindCustomer(ctx context.Context, email string) (*store.Customer, error)
	ListCart(ctx context.Context, email string) ([]string, error)
	AddCartItem(ctx context.Context, email, item string) error
	DeleteCartItem(ctx context.Context, email, item string) error
}

// Server wraps an MCP server that exposes product search and shopping
// cart tools.
type Server struct {
	store    CartStore
	searcher search.ProductSearcher
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies. A nil
// searcher leaves search_products registered but answering with an error.
func NewServer(cartStore CartStore, searcher search.ProductSearcher) *Server {
	s := &Server{
		store:    cartStore,
		searcher: searcher,
	}

	s.mcp = server.NewMCPServer(
		"shopbot",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchProductsTool, s.handleSearchProducts)
	s.mcp.AddTool(listCartTool, s.handleListCart)
	s.mcp.AddTool(addCartItemTool, s.handleAddCartItem)
	s.mcp.AddTool(removeCartItemTool, s.handleRemoveCartItem)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
