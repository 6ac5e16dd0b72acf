package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks for configuration when no --config
// flag is given.
const DefaultPath = ".shopbot.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SHOPBOT_*). A double underscore in
// an environment variable maps to a section separator, e.g.
// SHOPBOT_SLACK__BOT_TOKEN sets slack.bot_token.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables.
	if err := k.Load(env.Provider("SHOPBOT_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "SHOPBOT_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validChannels is the set of recognized channel values.
var validChannels = map[ChannelType]bool{
	ChannelSlack:   true,
	ChannelConsole: true,
}

// validAssistants is the set of recognized dialogue backend values.
var validAssistants = map[AssistantBackend]bool{
	AssistantWatson: true,
	AssistantOpenAI: true,
}

// validSearchBackends is the set of recognized search backend values.
// The empty value is allowed: it means search is not configured.
var validSearchBackends = map[SearchBackend]bool{
	"":              true,
	SearchDiscovery: true,
	SearchCatalog:   true,
	SearchStub:      true,
}

// validSources is the set of recognized extraction strategy values.
var validSources = map[DataSource]bool{
	SourceIBMStore: true,
	SourceAmazon:   true,
	SourceCatalog:  true,
}

// validEmbeddings is the set of recognized embedding provider values.
var validEmbeddings = map[EmbeddingProvider]bool{
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if !validChannels[c.Channel] {
		return fmt.Errorf("invalid channel %q: must be one of slack, console", c.Channel)
	}
	if c.Channel == ChannelSlack && c.Slack.BotToken == "" {
		return fmt.Errorf("slack.bot_token is required for the slack channel")
	}
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms must be positive")
	}

	if !validAssistants[c.Assistant.Backend] {
		return fmt.Errorf("invalid assistant.backend %q: must be one of watson, openai", c.Assistant.Backend)
	}
	if c.Assistant.Backend == AssistantWatson && c.Assistant.URL == "" {
		return fmt.Errorf("assistant.url is required for the watson backend")
	}
	if c.Assistant.Backend == AssistantOpenAI && c.Assistant.Model == "" {
		return fmt.Errorf("assistant.model is required for the openai backend")
	}

	if !validSearchBackends[c.Search.Backend] {
		return fmt.Errorf("invalid search.backend %q: must be one of discovery, catalog, stub", c.Search.Backend)
	}
	if c.Search.Backend == SearchDiscovery {
		if c.Search.URL == "" {
			return fmt.Errorf("search.url is required for the discovery backend")
		}
		if !validSources[c.Search.Source] {
			return fmt.Errorf("invalid search.source %q: must be one of ibm_store, amazon, catalog", c.Search.Source)
		}
	}
	if c.Search.QueryCount <= 0 {
		return fmt.Errorf("search.query_count must be positive")
	}
	if c.Search.KeepCount <= 0 {
		return fmt.Errorf("search.keep_count must be positive")
	}
	if c.Search.KeepCount > c.Search.QueryCount {
		return fmt.Errorf("search.keep_count must not exceed search.query_count")
	}
	if c.Search.ScoreFilter < 0 || c.Search.ScoreFilter > 1 {
		return fmt.Errorf("search.score_filter must be between 0.0 and 1.0")
	}

	if c.Search.Backend == SearchCatalog {
		if !validEmbeddings[c.Catalog.Embeddings.Provider] {
			return fmt.Errorf("invalid catalog.embeddings.provider %q: must be one of openai, ollama", c.Catalog.Embeddings.Provider)
		}
	}

	if c.Store.Path == "" {
		return fmt.Errorf("store.path is required")
	}

	return nil
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given assistant backend.
func APIKeyEnvVar(backend AssistantBackend) string {
	if backend == AssistantOpenAI {
		return "OPENAI_API_KEY"
	}
	return ""
}
