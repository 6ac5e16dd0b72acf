package bot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/voxshop/shopbot/internal/assistant"
	"github.com/voxshop/shopbot/internal/channel"
	"github.com/voxshop/shopbot/internal/db"
	"github.com/voxshop/shopbot/internal/search"
	"github.com/voxshop/shopbot/internal/store"
)

type fakeChannel struct {
	inbox      []*channel.Message
	sent       []string
	sentTo     []string
	profile    *channel.UserProfile
	profileErr error
	recvErr    error
}

func (f *fakeChannel) Receive() (*channel.Message, error) {
	if len(f.inbox) > 0 {
		msg := f.inbox[0]
		f.inbox = f.inbox[1:]
		return msg, nil
	}
	if f.recvErr != nil {
		return nil, f.recvErr
	}
	return nil, nil
}

func (f *fakeChannel) Send(ch, text string) error {
	f.sentTo = append(f.sentTo, ch)
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeChannel) Profile(string) (*channel.UserProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	if f.profile != nil {
		return f.profile, nil
	}
	return &channel.UserProfile{Email: "jane@example.com", FirstName: "Jane", LastName: "Doe"}, nil
}

type dialogueCall struct {
	text    string
	context map[string]any
}

// scriptedDialogue replays a fixed list of responses and records what it
// was asked. Once the script runs out it echoes the context back, which
// leaves the bot waiting for input.
type scriptedDialogue struct {
	responses []*assistant.Response
	calls     []dialogueCall
}

func (d *scriptedDialogue) Message(_ context.Context, text string, convContext map[string]any) (*assistant.Response, error) {
	recorded := make(map[string]any, len(convContext))
	for k, v := range convContext {
		recorded[k] = v
	}
	d.calls = append(d.calls, dialogueCall{text: text, context: recorded})
	if len(d.calls) <= len(d.responses) {
		return d.responses[len(d.calls)-1], nil
	}
	return &assistant.Response{Context: convContext}, nil
}

type loopingDialogue struct{ calls int }

func (d *loopingDialogue) Message(context.Context, string, map[string]any) (*assistant.Response, error) {
	d.calls++
	return &assistant.Response{Context: map[string]any{"get_input": "no"}, Output: []string{"still working"}}, nil
}

type failingDialogue struct{ err error }

func (d *failingDialogue) Message(context.Context, string, map[string]any) (*assistant.Response, error) {
	return nil, d.err
}

type fakeSearcher struct {
	products []search.Product
	text     string
	err      error
	queries  []string
}

func (f *fakeSearcher) Search(_ context.Context, text string) ([]search.Product, string, error) {
	f.queries = append(f.queries, text)
	if f.err != nil {
		return nil, "", f.err
	}
	return f.products, f.text, nil
}

func setupBot(t *testing.T, ch channel.Channel, dialogue assistant.Service, searcher search.ProductSearcher) (*Bot, *store.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	st := store.NewStore(database)
	return New(ch, dialogue, st, searcher, Options{PollInterval: time.Millisecond}), st
}

func TestHandleMessageSearchFlow(t *testing.T) {
	ch := &fakeChannel{}
	searcher := &fakeSearcher{
		products: []search.Product{{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug", ImageURL: "http://x/mug.jpg"}},
		text:     "\n1) Red Mug\nhttp://x/mug.jpg",
	}
	dialogue := &scriptedDialogue{responses: []*assistant.Response{
		{Context: map[string]any{"discovery_string": "mugs"}, Output: []string{"Let me check."}},
		{Context: map[string]any{"get_input": "yes"}, Output: []string{"Here is what I found."}},
	}}
	b, _ := setupBot(t, ch, dialogue, searcher)

	b.handleMessage(context.Background(), &channel.Message{Text: "find mugs", Channel: "D99", User: "U77"})

	if len(dialogue.calls) != 2 {
		t.Fatalf("dialogue calls: got %d, want 2", len(dialogue.calls))
	}
	if dialogue.calls[1].text != "find mugs" {
		t.Errorf("automatic turn should re-send the user's text, got %q", dialogue.calls[1].text)
	}
	if got := dialogue.calls[1].context["discovery_result"]; got != searcher.text {
		t.Errorf("discovery_result: got %v, want the rendered results", got)
	}
	if len(searcher.queries) != 1 || searcher.queries[0] != "mugs" {
		t.Errorf("search queries: got %q", searcher.queries)
	}
	if len(b.session.LastResults) != 1 || b.session.LastResults[0].Name != "Red Mug" {
		t.Errorf("last results: got %+v", b.session.LastResults)
	}
	if len(ch.sent) != 2 || ch.sent[0] != "Let me check.\n" || ch.sent[1] != "Here is what I found.\n" {
		t.Errorf("sent replies: got %q", ch.sent)
	}
}

func TestHandleMessageSearchBeforeList(t *testing.T) {
	ch := &fakeChannel{}
	searcher := &fakeSearcher{products: []search.Product{}, text: ""}
	dialogue := &scriptedDialogue{responses: []*assistant.Response{
		{Context: map[string]any{"discovery_string": "mugs", "shopping_cart": "list"}},
		{Context: map[string]any{"shopping_cart": "list"}},
	}}
	b, _ := setupBot(t, ch, dialogue, searcher)

	b.handleMessage(context.Background(), &channel.Message{Text: "mugs, and show my cart", Channel: "D99", User: "U77"})

	if len(searcher.queries) != 1 {
		t.Fatalf("search queries: got %q, want exactly one", searcher.queries)
	}
	// The first automatic turn must carry the untouched list request:
	// search ran first and left the cart command for the next pass.
	if got := dialogue.calls[1].context["shopping_cart"]; got != "list" {
		t.Errorf("turn 2 shopping_cart: got %v, want the deferred list command", got)
	}
	if _, ok := dialogue.calls[1].context["discovery_result"]; !ok {
		t.Error("turn 2 should carry the search outcome")
	}
	// After the second turn the list ran and replaced the command with
	// the rendered cart.
	if got := b.session.Context["shopping_cart"]; got != "" {
		t.Errorf("final shopping_cart: got %q, want rendered empty cart", got)
	}
}

func TestHandleMessageAutoTurnLimit(t *testing.T) {
	dialogue := &loopingDialogue{}
	b, _ := setupBot(t, &fakeChannel{}, dialogue, nil)

	b.handleMessage(context.Background(), &channel.Message{Text: "loop", Channel: "D99", User: "U77"})

	if dialogue.calls != maxAutoTurns {
		t.Errorf("dialogue calls: got %d, want the loop capped at %d", dialogue.calls, maxAutoTurns)
	}
}

func TestHandleMessageDialogueError(t *testing.T) {
	ch := &fakeChannel{}
	b, _ := setupBot(t, ch, &failingDialogue{err: errors.New("service down")}, nil)

	b.handleMessage(context.Background(), &channel.Message{Text: "hello", Channel: "D99", User: "U77"})

	if len(ch.sent) != 0 {
		t.Errorf("nothing should be sent on a dialogue failure, got %q", ch.sent)
	}
}

func TestRunSearchError(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("discovery unavailable")}
	b, _ := setupBot(t, &fakeChannel{}, &scriptedDialogue{}, searcher)
	b.session.Context["discovery_string"] = "mugs"
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Old Hit"}}

	b.runSearch(context.Background())

	if got := b.session.Context["discovery_result"]; got != "discovery unavailable" {
		t.Errorf("discovery_result: got %v, want the error text", got)
	}
	if len(b.session.LastResults) != 1 {
		t.Error("previous results should survive a failed search")
	}
}

func TestRunSearchCannedReplyKeepsResults(t *testing.T) {
	searcher := &fakeSearcher{products: nil, text: "\n1) Canned Mug\nhttp://x/canned.jpg"}
	b, _ := setupBot(t, &fakeChannel{}, &scriptedDialogue{}, searcher)
	b.session.Context["discovery_string"] = "mugs"
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Old Hit"}}

	b.runSearch(context.Background())

	if got := b.session.Context["discovery_result"]; got != searcher.text {
		t.Errorf("discovery_result: got %v", got)
	}
	if len(b.session.LastResults) != 1 || b.session.LastResults[0].Name != "Old Hit" {
		t.Error("a canned reply carries no products and should not touch the results")
	}
}

func TestRunSearchEmptyClearsResults(t *testing.T) {
	searcher := &fakeSearcher{products: []search.Product{}, text: ""}
	b, _ := setupBot(t, &fakeChannel{}, &scriptedDialogue{}, searcher)
	b.session.Context["discovery_string"] = "mugs"
	b.session.LastResults = []search.Product{{Ordinal: 1, Name: "Old Hit"}}

	b.runSearch(context.Background())

	if len(b.session.LastResults) != 0 {
		t.Error("a real search with no matches should clear stale results")
	}
}

func TestRunProcessesMessage(t *testing.T) {
	ch := &fakeChannel{
		inbox:   []*channel.Message{{Text: "hello", Channel: "D99", User: "U77"}},
		profile: &channel.UserProfile{Email: "jane@example.com", FirstName: "Jane"},
	}
	dialogue := &scriptedDialogue{responses: []*assistant.Response{
		{Context: map[string]any{"get_input": "yes"}, Output: []string{"Hi Jane!"}},
	}}
	b, st := setupBot(t, ch, dialogue, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := b.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ch.sent) != 1 || ch.sent[0] != "Hi Jane!\n" {
		t.Errorf("sent replies: got %q", ch.sent)
	}
	if len(ch.sentTo) != 1 || ch.sentTo[0] != "D99" {
		t.Errorf("reply channel: got %q", ch.sentTo)
	}
	saved, err := st.FindCustomer(context.Background(), "jane@example.com")
	if err != nil || saved == nil {
		t.Fatalf("customer should be created on first contact: %v", err)
	}
	if len(dialogue.calls) == 0 {
		t.Fatal("dialogue should have been called")
	}
	if dialogue.calls[0].context["email"] != "jane@example.com" {
		t.Error("customer identity should be in the context before the first exchange")
	}
}

func TestRunChannelError(t *testing.T) {
	ch := &fakeChannel{recvErr: errors.New("connection reset")}
	b, _ := setupBot(t, ch, &scriptedDialogue{}, nil)

	if err := b.Run(context.Background()); err == nil {
		t.Error("expected an error when the channel dies")
	}
}

func TestConversationSearchThenAdd(t *testing.T) {
	searcher := &fakeSearcher{
		products: []search.Product{
			{Ordinal: 1, Name: "Red Mug", URL: "http://x/mug"},
			{Ordinal: 2, Name: "Wool Scarf", URL: "http://x/scarf"},
			{Ordinal: 3, Name: "Lantern", URL: "http://x/lantern"},
		},
		text: "\n1) Red Mug\nimg1\n2) Wool Scarf\nimg2\n3) Lantern\nimg3",
	}
	dialogue := &scriptedDialogue{responses: []*assistant.Response{
		{Context: map[string]any{"discovery_string": "gifts"}, Output: []string{"Searching."}},
		{Context: map[string]any{}, Output: []string{"Pick an item."}},
		{Context: map[string]any{"shopping_cart": "add", "cart_item": "2"}, Output: []string{"Adding."}},
		{Context: map[string]any{}, Output: []string{"Done."}},
	}}
	b, st := setupBot(t, &fakeChannel{}, dialogue, searcher)
	customer := &store.Customer{Email: "jane@example.com", FirstName: "Jane"}
	if err := st.AddCustomer(context.Background(), customer); err != nil {
		t.Fatalf("seeding customer: %v", err)
	}
	b.session.Customer = customer

	b.handleMessage(context.Background(), &channel.Message{Text: "find gifts", Channel: "D99", User: "U77"})
	b.handleMessage(context.Background(), &channel.Message{Text: "the second one", Channel: "D99", User: "U77"})

	items, err := st.ListCart(context.Background(), "jane@example.com")
	if err != nil {
		t.Fatalf("listing cart: %v", err)
	}
	if len(items) != 1 || items[0] != "Wool Scarf: http://x/scarf\n" {
		t.Fatalf("cart items: got %q", items)
	}
	if len(dialogue.calls) != 4 {
		t.Errorf("dialogue calls: got %d, want 4", len(dialogue.calls))
	}
}
