package bot

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/voxshop/shopbot/internal/assistant"
	"github.com/voxshop/shopbot/internal/channel"
	"github.com/voxshop/shopbot/internal/search"
	"github.com/voxshop/shopbot/internal/store"
)

// maxAutoTurns bounds the chain of automatic turns a single user
// message can trigger, in case the dialogue tree never asks for input.
const maxAutoTurns = 10

const defaultPollInterval = 500 * time.Millisecond

// CustomerStore is the persistence the bot needs for customers and
// carts.
type CustomerStore interface {
	FindCustomer(ctx context.Context, email string) (*store.Customer, error)
	AddCustomer(ctx context.Context, c *store.Customer) error
	ListCart(ctx context.Context, email string) ([]string, error)
	AddCartItem(ctx context.Context, email, item string) error
	DeleteCartItem(ctx context.Context, email, item string) error
}

// Options configure the bot loop.
type Options struct {
	PollInterval time.Duration
	Verbose      bool
}

// Bot owns the single active conversation. It is not safe for
// concurrent use; one loop drives everything.
type Bot struct {
	channel  channel.Channel
	dialogue assistant.Service
	store    CustomerStore
	// searcher is nil when no search backend is configured; the router
	// then skips discovery actions entirely.
	searcher search.ProductSearcher
	session  *Session
	poll     time.Duration
	verbose  bool
}

// New assembles a bot from its collaborators.
func New(ch channel.Channel, dialogue assistant.Service, cs CustomerStore, searcher search.ProductSearcher, opts Options) *Bot {
	poll := opts.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Bot{
		channel:  ch,
		dialogue: dialogue,
		store:    cs,
		searcher: searcher,
		session:  NewSession(),
		poll:     poll,
		verbose:  opts.Verbose,
	}
}

// Run polls the channel until ctx is cancelled (clean exit) or the
// channel connection dies (error). One message is processed to
// completion, including its chained automatic turns, before the next
// poll.
func (b *Bot) Run(ctx context.Context) error {
	log.Printf("bot: connected and running")

	for {
		msg, err := b.channel.Receive()
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}

		if msg != nil {
			if b.verbose {
				log.Printf("bot: message from %s in %s: %q", msg.User, msg.Channel, msg.Text)
			}
			if b.session.Customer == nil {
				b.initCustomer(ctx, msg.User)
			}
			b.handleMessage(ctx, msg)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(b.poll):
		}
	}
}

// handleMessage runs one user message through the dialogue service and
// dispatches context actions until the dialogue asks for fresh input.
func (b *Bot) handleMessage(ctx context.Context, msg *channel.Message) {
	for turn := 0; turn < maxAutoTurns; turn++ {
		needInput, err := b.turn(ctx, msg)
		if err != nil {
			log.Printf("bot: dialogue turn: %v", err)
			return
		}
		if needInput {
			return
		}
	}
	log.Printf("bot: automatic turn limit reached, waiting for input")
}

// turn sends the message text with the current context, relays the
// reply lines, then performs the action the returned context asks for.
// Automatic turns re-send the same user text; only the context changes
// between them. Returns true when the dialogue wants user input.
func (b *Bot) turn(ctx context.Context, msg *channel.Message) (bool, error) {
	resp, err := b.dialogue.Message(ctx, msg.Text, b.session.Context)
	if err != nil {
		return false, err
	}

	// The dialogue service owns the context: its response replaces the
	// session context wholesale. Merges only happen for data this side
	// injects afterwards.
	if resp.Context != nil {
		b.session.Context = resp.Context
	}
	if b.verbose {
		log.Printf("bot: context after exchange: %v", b.session.Context)
	}

	// Reply before dispatching, so the user sees the dialogue's answer
	// ahead of any result a side effect produces for the next turn.
	if reply := joinReply(resp.Output); reply != "" {
		if err := b.channel.Send(msg.Channel, reply); err != nil {
			log.Printf("bot: send reply: %v", err)
		}
	}

	switch b.route(b.session.Context) {
	case ActionSearch:
		b.runSearch(ctx)
	case ActionListCart:
		b.listCart(ctx)
	case ActionAddToCart:
		b.addToCart(ctx)
	case ActionDeleteFromCart:
		b.deleteFromCart(ctx)
	case ActionContinue:
	default:
		return true, nil
	}
	return false, nil
}

// runSearch performs the discovery the context asked for and merges the
// outcome back under discovery_result. Failure degrades: the error text
// itself becomes the result so the dialogue tree can surface it.
func (b *Bot) runSearch(ctx context.Context) {
	query := contextString(b.session.Context, "discovery_string")

	products, text, err := b.searcher.Search(ctx, query)
	if err != nil {
		log.Printf("bot: search %q: %v", query, err)
		b.session.Context = MergeContext(b.session.Context, map[string]any{
			"discovery_result": err.Error(),
		})
		return
	}

	// A nil product list (canned stub reply) keeps the previous results;
	// an empty one (real search, nothing found) clears them.
	if products != nil {
		b.session.LastResults = products
	}
	b.session.Context = MergeContext(b.session.Context, map[string]any{
		"discovery_result": text,
	})
}

// joinReply joins dialogue output lines, one per line.
func joinReply(lines []string) string {
	var sb strings.Builder
	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
