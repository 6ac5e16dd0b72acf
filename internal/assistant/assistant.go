// Package assistant talks to the conversational-AI service that owns
// intent recognition. The service communicates intended actions back
// through the conversation context; this package never interprets them.
package assistant

import (
	"context"
	"fmt"
	"os"
)

// Response is one dialogue exchange result. Context replaces the session
// context wholesale; Output lines are sent to the user in order.
type Response struct {
	Context map[string]any
	Output  []string
}

// Service is a conversational dialogue backend.
type Service interface {
	Message(ctx context.Context, text string, convContext map[string]any) (*Response, error)
}

// Options select and configure a dialogue backend.
type Options struct {
	Backend       string
	URL           string
	Username      string
	Password      string
	WorkspaceID   string
	WorkspaceName string
	Model         string
	APIKey        string
}

// New creates the dialogue backend selected by opts.Backend. The watson
// backend resolves its workspace eagerly so a misconfigured workspace
// fails at startup, not mid-conversation.
func New(ctx context.Context, opts Options) (Service, error) {
	switch opts.Backend {
	case "watson":
		client := NewWatsonClient(WatsonOptions{
			URL:           opts.URL,
			Username:      opts.Username,
			Password:      opts.Password,
			WorkspaceID:   opts.WorkspaceID,
			WorkspaceName: opts.WorkspaceName,
		})
		if err := client.ResolveWorkspace(ctx); err != nil {
			return nil, err
		}
		return client, nil

	case "openai":
		apiKey := opts.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return nil, fmt.Errorf("openai assistant requires an API key (set assistant.api_key or OPENAI_API_KEY)")
		}
		return NewOpenAIAssistant(apiKey, opts.Model), nil

	default:
		return nil, fmt.Errorf("unsupported assistant backend: %s", opts.Backend)
	}
}
