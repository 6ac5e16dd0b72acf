package bot

// Action is what the router decided to do after a dialogue exchange.
type Action int

const (
	// ActionAwaitInput stops the turn chain and waits for the user.
	ActionAwaitInput Action = iota
	ActionSearch
	ActionListCart
	ActionAddToCart
	ActionDeleteFromCart
	// ActionContinue chains another automatic turn without side effects.
	ActionContinue
)

// route picks the next action from the merged context. The priority
// order is a contract: discovery resolves before cart actions because a
// search can populate fields consumed by cart logic on a later turn. A
// single dialogue response may set several fields at once; only the
// highest-priority one acts on this turn.
func (b *Bot) route(ctx map[string]any) Action {
	if contextString(ctx, "discovery_string") != "" && b.searcher != nil {
		return ActionSearch
	}

	switch contextString(ctx, "shopping_cart") {
	case "list":
		return ActionListCart
	case "add":
		if contextNonEmpty(ctx, "cart_item") {
			return ActionAddToCart
		}
	case "delete":
		if contextNonEmpty(ctx, "cart_item") {
			return ActionDeleteFromCart
		}
	}

	if contextString(ctx, "get_input") == "no" {
		return ActionContinue
	}

	return ActionAwaitInput
}
