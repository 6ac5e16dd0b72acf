// Package bot runs the conversation: it polls the channel, exchanges
// each message with the dialogue service, and performs the side effects
// the returned context asks for. All action intent travels through the
// context; the bot never parses user text itself.
package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/voxshop/shopbot/internal/search"
	"github.com/voxshop/shopbot/internal/store"
)

// Session is the state of the single active conversation: the shared
// context the dialogue service reads and writes, the resolved customer,
// and the last formatted search results for ordinal resolution.
type Session struct {
	Context     map[string]any
	Customer    *store.Customer
	LastResults []search.Product
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{Context: map[string]any{}}
}

// MergeContext combines two context maps into a new one. Every key in
// update overrides the base value; keys absent from update persist.
// Right-biased, not commutative.
func MergeContext(base, update map[string]any) map[string]any {
	merged := make(map[string]any, len(base)+len(update))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range update {
		merged[k] = v
	}
	return merged
}

// contextString reads a context field as a string. Missing keys and
// non-string values read as empty.
func contextString(ctx map[string]any, key string) string {
	v, _ := ctx[key].(string)
	return v
}

// contextNonEmpty reports whether a context field is present and, for
// strings, non-empty. The dialogue service may send numbers for fields
// like cart_item.
func contextNonEmpty(ctx map[string]any, key string) bool {
	v, ok := ctx[key]
	if !ok {
		return false
	}
	s, isString := v.(string)
	return !isString || s != ""
}

// ordinalFrom parses a context value as a 1-based ordinal. JSON decodes
// numbers as float64, so both forms are accepted.
func ordinalFrom(v any) (int, error) {
	switch n := v.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
