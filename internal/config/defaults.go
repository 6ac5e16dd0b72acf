package config

// Default search tuning. The query asks for more results than are shown
// so score filtering has candidates left to keep.
const (
	DefaultQueryCount  = 10
	DefaultKeepCount   = 5
	DefaultTruncate    = 500
	DefaultScoreFilter = 0.0
)

// DefaultWorkspaceName is the dialogue workspace looked up when no
// workspace id is configured.
const DefaultWorkspaceName = "shopbot"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Channel:        ChannelSlack,
		PollIntervalMS: 500,
		Slack: SlackConfig{
			APIURL: "https://slack.com/api",
		},
		Assistant: AssistantConfig{
			Backend:       AssistantWatson,
			WorkspaceName: DefaultWorkspaceName,
			Model:         "gpt-4o-mini",
		},
		Search: SearchConfig{
			Source:      SourceIBMStore,
			QueryCount:  DefaultQueryCount,
			KeepCount:   DefaultKeepCount,
			ScoreFilter: DefaultScoreFilter,
			Truncate:    DefaultTruncate,
		},
		Catalog: CatalogConfig{
			Path:     "products.json",
			IndexDir: ".shopbot/index",
			Embeddings: EmbeddingsConfig{
				Provider: EmbeddingOpenAI,
				Model:    "text-embedding-3-small",
			},
		},
		Store: StoreConfig{
			Path: "shopbot.db",
		},
		Server: ServerConfig{
			Host:           "127.0.0.1",
			Port:           8080,
			AllowedOrigins: []string{"*"},
		},
	}
}
