package search

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
)

// defaultCannedReplies keeps the dialogue flow demoable when no search
// backend is configured at all.
var defaultCannedReplies = []string{
	"\n1) Stainless Steel Travel Mug\nhttp://store.example.com/images/travel-mug.jpg" +
		"\n2) Ceramic Espresso Cup Set\nhttp://store.example.com/images/espresso-set.jpg",
	"\n1) Canvas Weekend Bag\nhttp://store.example.com/images/weekend-bag.jpg" +
		"\n2) Leather Passport Holder\nhttp://store.example.com/images/passport-holder.jpg" +
		"\n3) Packable Rain Jacket\nhttp://store.example.com/images/rain-jacket.jpg",
	"\n1) Wireless Earbuds\nhttp://store.example.com/images/earbuds.jpg",
}

// Stub returns a pseudo-randomly chosen canned reply instead of calling
// a real backend. It yields rendered text but no product list, so a
// later add-by-ordinal is a no-op.
type Stub struct {
	replies []string
}

// NewStub creates a stub over the given canned replies, falling back to
// the built-in set when none are supplied.
func NewStub(replies []string) *Stub {
	if len(replies) == 0 {
		replies = defaultCannedReplies
	}
	return &Stub{replies: replies}
}

// LoadStub reads canned replies from a JSON file holding an array of
// strings.
func LoadStub(path string) (*Stub, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures file: %w", err)
	}

	var replies []string
	if err := json.Unmarshal(data, &replies); err != nil {
		return nil, fmt.Errorf("parse fixtures file %s: %w", path, err)
	}

	return NewStub(replies), nil
}

func (s *Stub) Search(_ context.Context, _ string) ([]Product, string, error) {
	return nil, s.replies[rand.Intn(len(s.replies))], nil
}
