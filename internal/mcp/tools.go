package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchProductsTool defines the search_products MCP tool.
var searchProductsTool = mcp.NewTool("search_products",
	mcp.WithDescription("Search the product catalog. Returns matching products with store links and images."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language description of the product"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of products to return (default 5)"),
	),
)

// listCartTool defines the list_cart MCP tool.
var listCartTool = mcp.NewTool("list_cart",
	mcp.WithDescription("List the items in a customer's shopping cart in the order they were added."),
	mcp.WithString("email",
		mcp.Required(),
		mcp.Description("Customer email address"),
	),
)

// addCartItemTool defines the add_cart_item MCP tool.
var addCartItemTool = mcp.NewTool("add_cart_item",
	mcp.WithDescription("Add an item to a customer's shopping cart."),
	mcp.WithString("email",
		mcp.Required(),
		mcp.Description("Customer email address"),
	),
	mcp.WithString("item",
		mcp.Required(),
		mcp.Description("Item description, usually \"name: url\""),
	),
)

// removeCartItemTool defines the remove_cart_item MCP tool.
var removeCartItemTool = mcp.NewTool("remove_cart_item",
	mcp.WithDescription("Remove an item from a customer's shopping cart by its position."),
	mcp.WithString("email",
		mcp.Required(),
		mcp.Description("Customer email address"),
	),
	mcp.WithNumber("ordinal",
		mcp.Required(),
		mcp.Description("1-based position of the item as shown by list_cart"),
	),
)
