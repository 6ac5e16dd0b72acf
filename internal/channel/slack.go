package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gorilla/websocket"
)

const defaultSlackAPIURL = "https://slack.com/api"

// SlackOptions configure a SlackChannel.
type SlackOptions struct {
	BotToken string
	// APIURL overrides the Slack Web API base, mainly for tests.
	APIURL string
	// AllowChannels restricts which channel ids the bot listens to,
	// matched as doublestar glob patterns. Empty means all channels.
	AllowChannels []string
}

// SlackChannel connects to Slack over the RTM websocket and polls
// message events addressed to the bot.
type SlackChannel struct {
	opts       SlackOptions
	botID      string
	atBot      string
	conn       *websocket.Conn
	events     chan rtmEvent
	httpClient *http.Client
}

// rtmEvent is the subset of an RTM stream event the bot cares about.
type rtmEvent struct {
	Type    string `json:"type"`
	Subtype string `json:"subtype"`
	Text    string `json:"text"`
	Channel string `json:"channel"`
	User    string `json:"user"`
}

// NewSlackChannel creates an unconnected Slack channel.
func NewSlackChannel(opts SlackOptions) *SlackChannel {
	if opts.APIURL == "" {
		opts.APIURL = defaultSlackAPIURL
	}
	opts.APIURL = strings.TrimSuffix(opts.APIURL, "/")
	return &SlackChannel{
		opts:       opts,
		events:     make(chan rtmEvent, 64),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Connect authenticates against the Web API, dials the RTM websocket
// and starts the read pump. Failure here is the unrecoverable startup
// condition: the bot loop must not start without a connection.
func (c *SlackChannel) Connect(ctx context.Context) error {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
		URL   string `json:"url"`
		Self  struct {
			ID string `json:"id"`
		} `json:"self"`
	}
	if err := c.apiCall(ctx, "rtm.connect", url.Values{}, &resp); err != nil {
		return fmt.Errorf("rtm.connect: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("rtm.connect refused: %s", resp.Error)
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, resp.URL, nil)
	if err != nil {
		return fmt.Errorf("dial rtm websocket: %w", err)
	}

	c.conn = conn
	c.botID = resp.Self.ID
	c.atBot = "<@" + c.botID + ">"
	go c.readPump()

	log.Printf("channel: slack connected as %s", c.botID)
	return nil
}

// readPump feeds the event channel until the websocket dies, then
// closes it so Receive reports the lost connection.
func (c *SlackChannel) readPump() {
	defer close(c.events)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("channel: slack read: %v", err)
			}
			return
		}

		var ev rtmEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			continue
		}
		c.events <- ev
	}
}

// Receive drains pending events until one matches a message addressed
// to the bot. Returns (nil, nil) when nothing matching is pending.
func (c *SlackChannel) Receive() (*Message, error) {
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				return nil, fmt.Errorf("slack connection closed")
			}
			if msg := c.match(ev); msg != nil {
				return msg, nil
			}
		default:
			return nil, nil
		}
	}
}

// match decides whether an event is addressed to the bot: either a
// mention anywhere in the text or a direct message. Everything else is
// discarded.
func (c *SlackChannel) match(ev rtmEvent) *Message {
	if ev.Type != "message" || ev.Subtype != "" || ev.User == "" || ev.Text == "" {
		return nil
	}
	if !c.channelAllowed(ev.Channel) {
		return nil
	}

	if strings.Contains(ev.Text, c.atBot) {
		text := strings.ReplaceAll(ev.Text, c.atBot, "")
		return &Message{
			Text:    strings.ToLower(strings.TrimSpace(text)),
			Channel: ev.Channel,
			User:    ev.User,
		}
	}

	// Direct message channels start with D.
	if strings.HasPrefix(ev.Channel, "D") && ev.User != c.botID {
		return &Message{
			Text:    strings.ToLower(strings.TrimSpace(ev.Text)),
			Channel: ev.Channel,
			User:    ev.User,
		}
	}

	return nil
}

func (c *SlackChannel) channelAllowed(id string) bool {
	if len(c.opts.AllowChannels) == 0 {
		return true
	}
	for _, pattern := range c.opts.AllowChannels {
		if ok, _ := doublestar.Match(pattern, id); ok {
			return true
		}
	}
	return false
}

// Send posts text to a channel as the bot user.
func (c *SlackChannel) Send(channel, text string) error {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
	}
	params := url.Values{}
	params.Set("channel", channel)
	params.Set("text", text)
	params.Set("as_user", "true")
	if err := c.apiCall(context.Background(), "chat.postMessage", params, &resp); err != nil {
		return fmt.Errorf("chat.postMessage: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("chat.postMessage refused: %s", resp.Error)
	}
	return nil
}

// Profile fetches the authenticated user profile behind a user id.
func (c *SlackChannel) Profile(userID string) (*UserProfile, error) {
	var resp struct {
		OK    bool   `json:"ok"`
		Error string `json:"error"`
		User  struct {
			Profile struct {
				Email     string `json:"email"`
				FirstName string `json:"first_name"`
				LastName  string `json:"last_name"`
			} `json:"profile"`
		} `json:"user"`
	}
	params := url.Values{}
	params.Set("user", userID)
	if err := c.apiCall(context.Background(), "users.info", params, &resp); err != nil {
		return nil, fmt.Errorf("users.info: %w", err)
	}
	if !resp.OK {
		return nil, fmt.Errorf("users.info refused: %s", resp.Error)
	}

	return &UserProfile{
		Email:     resp.User.Profile.Email,
		FirstName: resp.User.Profile.FirstName,
		LastName:  resp.User.Profile.LastName,
	}, nil
}

// apiCall posts one form-encoded Web API method and decodes the JSON
// response.
func (c *SlackChannel) apiCall(ctx context.Context, method string, params url.Values, out any) error {
	params.Set("token", c.opts.BotToken)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.opts.APIURL+"/"+method, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
