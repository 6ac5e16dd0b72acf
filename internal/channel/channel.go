// Package channel abstracts the chat transport the bot listens on. A
// channel is polled: the bot asks for the next message addressed to it,
// processes the turn to completion, then asks again.
package channel

// Message is one inbound chat message addressed to the bot, already
// normalized (mention stripped, trimmed, lowercased).
type Message struct {
	Text    string
	Channel string
	User    string
}

// UserProfile identifies the person behind a channel user id.
type UserProfile struct {
	Email     string
	FirstName string
	LastName  string
}

// Channel is a chat transport the bot can poll.
type Channel interface {
	// Receive returns the next message addressed to the bot, or
	// (nil, nil) when nothing is pending. A non-nil error means the
	// connection is gone and the loop must stop.
	Receive() (*Message, error)

	// Send posts text to the given channel id.
	Send(channel, text string) error

	// Profile fetches the identity behind a user id.
	Profile(userID string) (*UserProfile, error)
}
