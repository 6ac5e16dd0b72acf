package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .shopbot.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to shopbot! Let's configure your store assistant.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Chat channel.
	channelPrompt := promptui.Select{
		Label: "Select chat channel",
		Items: []string{"slack", "console"},
	}
	_, channelStr, err := channelPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("channel selection: %w", err)
	}
	cfg.Channel = ChannelType(channelStr)

	if cfg.Channel == ChannelSlack {
		tokenPrompt := promptui.Prompt{
			Label: "Slack bot token (xoxb-...)",
			Mask:  '*',
		}
		token, err := tokenPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("slack token: %w", err)
		}
		cfg.Slack.BotToken = token
	}

	// 2. Dialogue backend.
	assistantPrompt := promptui.Select{
		Label: "Select dialogue backend",
		Items: []string{
			"watson — workspace-based dialogue service",
			"openai — chat model drives the dialogue",
		},
	}
	assistantIdx, _, err := assistantPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("assistant selection: %w", err)
	}
	backends := []AssistantBackend{AssistantWatson, AssistantOpenAI}
	cfg.Assistant.Backend = backends[assistantIdx]

	switch cfg.Assistant.Backend {
	case AssistantWatson:
		urlPrompt := promptui.Prompt{Label: "Dialogue service URL"}
		url, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("assistant url: %w", err)
		}
		cfg.Assistant.URL = url

		namePrompt := promptui.Prompt{
			Label:   "Workspace name",
			Default: DefaultWorkspaceName,
		}
		name, err := namePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("workspace name: %w", err)
		}
		cfg.Assistant.WorkspaceName = name
	case AssistantOpenAI:
		modelPrompt := promptui.Prompt{
			Label:   "Chat model",
			Default: cfg.Assistant.Model,
		}
		model, err := modelPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("assistant model: %w", err)
		}
		cfg.Assistant.Model = model
	}

	// 3. Search backend.
	searchPrompt := promptui.Select{
		Label: "Select product search backend",
		Items: []string{
			"discovery — hosted search service over a crawled collection",
			"catalog   — local product file with a semantic index",
			"stub      — canned results, no external service",
		},
	}
	searchIdx, _, err := searchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("search selection: %w", err)
	}
	searchBackends := []SearchBackend{SearchDiscovery, SearchCatalog, SearchStub}
	cfg.Search.Backend = searchBackends[searchIdx]

	switch cfg.Search.Backend {
	case SearchDiscovery:
		urlPrompt := promptui.Prompt{Label: "Search service URL"}
		url, err := urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("search url: %w", err)
		}
		cfg.Search.URL = url

		sourcePrompt := promptui.Select{
			Label: "Collection data source",
			Items: []string{"ibm_store", "amazon"},
		}
		_, sourceStr, err := sourcePrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("source selection: %w", err)
		}
		cfg.Search.Source = DataSource(sourceStr)
	case SearchCatalog:
		cfg.Search.Source = SourceCatalog

		pathPrompt := promptui.Prompt{
			Label:   "Product catalog file",
			Default: cfg.Catalog.Path,
		}
		path, err := pathPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("catalog path: %w", err)
		}
		cfg.Catalog.Path = path
	}

	// 4. Customer store.
	storePrompt := promptui.Prompt{
		Label:   "Customer database file",
		Default: cfg.Store.Path,
	}
	storePath, err := storePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("store path: %w", err)
	}
	cfg.Store.Path = strings.TrimSpace(storePath)

	// Check for API keys the chosen backends will need at run time.
	if envVar := APIKeyEnvVar(cfg.Assistant.Backend); envVar != "" {
		if os.Getenv(envVar) == "" && cfg.Assistant.APIKey == "" {
			fmt.Printf("\nNote: Set %s in your environment before running shopbot run.\n", envVar)
		}
	}

	// Save to .shopbot.yml.
	if err := cfg.Save(DefaultPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", DefaultPath)
	return cfg, nil
}
