package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

// dialogueSystemPrompt teaches the model the context protocol the rest
// of the application reads. The model plays the part of a dialogue tree:
// action intent travels only through the context fields.
const dialogueSystemPrompt = `You are the dialogue manager for an online store's shopping assistant.

Each request is a JSON object with the user's message ("input") and the current
conversation context ("context"). Respond ONLY with a JSON object of the form
{"reply": ["line", ...], "context": {...}} where "reply" holds the lines to show
the user and "context" is the full updated context.

Rules for the returned context:
- To search the store for products, set "discovery_string" to the search terms.
  When a "discovery_result" value appears in the incoming context, present it to
  the user, clear "discovery_string", and ask whether to add an item to the cart.
- To show the shopping cart, set "shopping_cart" to "list". A later turn
  replaces that value with the formatted cart contents for you to present.
- To add or remove a cart entry, set "shopping_cart" to "add" or "delete" and
  "cart_item" to the item number the user chose. Leave both empty otherwise.
- Set "get_input" to "no" only when you need another automatic turn without
  user input; otherwise set it to "yes".
- Preserve all other context fields (such as customer data) unchanged.`

// OpenAIAssistant drives the dialogue with a chat-completion model in
// JSON mode instead of a hosted workspace.
type OpenAIAssistant struct {
	client *openai.Client
	model  string
}

// NewOpenAIAssistant creates the model-backed dialogue service.
func NewOpenAIAssistant(apiKey, model string) *OpenAIAssistant {
	if model == "" {
		model = defaultModel
	}
	return &OpenAIAssistant{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (a *OpenAIAssistant) Message(ctx context.Context, text string, convContext map[string]any) (*Response, error) {
	if convContext == nil {
		convContext = map[string]any{}
	}

	payload, err := json.Marshal(map[string]any{
		"input":   text,
		"context": convContext,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal dialogue turn: %w", err)
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: dialogueSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: string(payload)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return parseDialogueReply(resp.Choices[0].Message.Content)
}

// parseDialogueReply decodes the model's JSON into a Response.
func parseDialogueReply(content string) (*Response, error) {
	var out struct {
		Reply   []string       `json:"reply"`
		Context map[string]any `json:"context"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("parse dialogue reply: %w", err)
	}
	if out.Context == nil {
		out.Context = map[string]any{}
	}

	return &Response{
		Context: out.Context,
		Output:  out.Reply,
	}, nil
}
