package embeddings

import (
	"context"
	"fmt"
)

// Embedder defines the interface for generating text embeddings used
// by the product catalog index.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// New selects an embedder by provider name. baseURL is only used by
// the ollama provider and may be empty for the default local instance.
func New(provider, model, apiKey, baseURL string) (Embedder, error) {
	switch provider {
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai embeddings require an API key (set OPENAI_API_KEY)")
		}
		return NewOpenAIEmbedder(apiKey, OpenAIModel(model)), nil
	case "ollama":
		return NewOllamaEmbedder(model, 0, baseURL), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q: must be one of openai, ollama", provider)
	}
}
