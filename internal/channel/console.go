package channel

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConsoleID is the channel id console messages arrive on. It starts
// with D so the bot treats them as direct messages.
const ConsoleID = "Dconsole"

const consoleUserID = "local"

// ConsoleChannel runs the conversation on stdin/stdout so the full loop
// can be exercised without a Slack workspace.
type ConsoleChannel struct {
	profile UserProfile
	out     io.Writer
	lines   chan string
}

// NewConsoleChannel creates a console channel reading from in and
// writing to out. profile is the identity reported for the local user.
func NewConsoleChannel(in io.Reader, out io.Writer, profile UserProfile) *ConsoleChannel {
	c := &ConsoleChannel{
		profile: profile,
		out:     out,
		lines:   make(chan string, 4),
	}
	go c.readLoop(in)
	return c
}

func (c *ConsoleChannel) readLoop(in io.Reader) {
	defer close(c.lines)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		c.lines <- scanner.Text()
	}
}

func (c *ConsoleChannel) Receive() (*Message, error) {
	for {
		select {
		case line, ok := <-c.lines:
			if !ok {
				return nil, fmt.Errorf("console input closed")
			}
			text := strings.ToLower(strings.TrimSpace(line))
			if text == "" {
				continue
			}
			return &Message{
				Text:    text,
				Channel: ConsoleID,
				User:    consoleUserID,
			}, nil
		default:
			return nil, nil
		}
	}
}

func (c *ConsoleChannel) Send(_, text string) error {
	_, err := fmt.Fprintln(c.out, text)
	return err
}

func (c *ConsoleChannel) Profile(_ string) (*UserProfile, error) {
	p := c.profile
	return &p, nil
}
