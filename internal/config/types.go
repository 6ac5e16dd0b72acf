package config

// ChannelType identifies a chat channel implementation.
type ChannelType string

const (
	ChannelSlack   ChannelType = "slack"
	ChannelConsole ChannelType = "console"
)

// AssistantBackend identifies a dialogue service implementation.
type AssistantBackend string

const (
	AssistantWatson AssistantBackend = "watson"
	AssistantOpenAI AssistantBackend = "openai"
)

// SearchBackend identifies a product search implementation. An empty
// value means no search backend is configured; the bot falls back to
// canned results so the dialogue flow stays demoable.
type SearchBackend string

const (
	SearchDiscovery SearchBackend = "discovery"
	SearchCatalog   SearchBackend = "catalog"
	SearchStub      SearchBackend = "stub"
)

// DataSource selects the extraction strategy applied to raw search
// results. Discovery collections were fed from differently shaped
// crawls, so the source decides how product fields are pulled out.
type DataSource string

const (
	SourceIBMStore DataSource = "ibm_store"
	SourceAmazon   DataSource = "amazon"
	SourceCatalog  DataSource = "catalog"
)

// EmbeddingProvider identifies an embedding backend for the local
// catalog index.
type EmbeddingProvider string

const (
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// Config is the top-level shopbot configuration, corresponding to .shopbot.yml.
type Config struct {
	Channel        ChannelType     `yaml:"channel" koanf:"channel"`
	PollIntervalMS int             `yaml:"poll_interval_ms" koanf:"poll_interval_ms"`
	Slack          SlackConfig     `yaml:"slack" koanf:"slack"`
	Assistant      AssistantConfig `yaml:"assistant" koanf:"assistant"`
	Search         SearchConfig    `yaml:"search" koanf:"search"`
	Catalog        CatalogConfig   `yaml:"catalog" koanf:"catalog"`
	Store          StoreConfig     `yaml:"store" koanf:"store"`
	Server         ServerConfig    `yaml:"server" koanf:"server"`
}

// SlackConfig holds Slack connection settings.
type SlackConfig struct {
	BotToken string `yaml:"bot_token" koanf:"bot_token"`
	// APIURL is overridable for tests; defaults to the public Slack API.
	APIURL string `yaml:"api_url" koanf:"api_url"`
	// AllowChannels restricts which channel ids the bot answers in.
	// Glob patterns; empty means all channels.
	AllowChannels []string `yaml:"allow_channels" koanf:"allow_channels"`
}

// AssistantConfig holds dialogue service settings.
type AssistantConfig struct {
	Backend AssistantBackend `yaml:"backend" koanf:"backend"`

	// Watson-style workspace backend.
	URL           string `yaml:"url" koanf:"url"`
	Username      string `yaml:"username" koanf:"username"`
	Password      string `yaml:"password" koanf:"password"`
	WorkspaceID   string `yaml:"workspace_id" koanf:"workspace_id"`
	WorkspaceName string `yaml:"workspace_name" koanf:"workspace_name"`

	// OpenAI backend.
	Model  string `yaml:"model" koanf:"model"`
	APIKey string `yaml:"api_key" koanf:"api_key"`
}

// SearchConfig holds product search settings.
type SearchConfig struct {
	Backend SearchBackend `yaml:"backend" koanf:"backend"`
	Source  DataSource    `yaml:"source" koanf:"source"`

	// Discovery-style backend.
	URL           string `yaml:"url" koanf:"url"`
	Username      string `yaml:"username" koanf:"username"`
	Password      string `yaml:"password" koanf:"password"`
	EnvironmentID string `yaml:"environment_id" koanf:"environment_id"`
	CollectionID  string `yaml:"collection_id" koanf:"collection_id"`

	// QueryCount is how many results to request; KeepCount is how many
	// to display. The gap gives the score filter headroom.
	QueryCount  int     `yaml:"query_count" koanf:"query_count"`
	KeepCount   int     `yaml:"keep_count" koanf:"keep_count"`
	ScoreFilter float64 `yaml:"score_filter" koanf:"score_filter"`
	// Truncate is reserved for clamping long text fields. Nothing reads
	// it yet.
	Truncate int `yaml:"truncate" koanf:"truncate"`

	// FixturesPath points the stub backend at a canned-results file.
	FixturesPath string `yaml:"fixtures_path" koanf:"fixtures_path"`
}

// CatalogConfig holds the local product catalog settings.
type CatalogConfig struct {
	Path       string           `yaml:"path" koanf:"path"`
	IndexDir   string           `yaml:"index_dir" koanf:"index_dir"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" koanf:"embeddings"`
}

// EmbeddingsConfig selects the embedder used to index the catalog.
type EmbeddingsConfig struct {
	Provider EmbeddingProvider `yaml:"provider" koanf:"provider"`
	Model    string            `yaml:"model" koanf:"model"`
	APIKey   string            `yaml:"api_key" koanf:"api_key"`
	URL      string            `yaml:"url" koanf:"url"`
}

// StoreConfig holds customer store settings.
type StoreConfig struct {
	Path string `yaml:"path" koanf:"path"`
}

// ServerConfig holds ops HTTP server settings.
type ServerConfig struct {
	Host           string   `yaml:"host" koanf:"host"`
	Port           int      `yaml:"port" koanf:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
}
