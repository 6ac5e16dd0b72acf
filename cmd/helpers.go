package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/voxshop/shopbot/internal/catalog"
	"github.com/voxshop/shopbot/internal/config"
	"github.com/voxshop/shopbot/internal/embeddings"
	"github.com/voxshop/shopbot/internal/search"
)

// loadConfig loads the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `shopbot init` to create a config file", err)
	}
	return cfg, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder from the
// catalog settings. Shared by the index, search, serve and run commands.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	ec := cfg.Catalog.Embeddings
	apiKey := ec.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	return embeddings.New(string(ec.Provider), ec.Model, apiKey, ec.URL)
}

// createSearcherFromConfig builds the product search backend selected in
// the config. An unset backend falls back to canned replies so the
// dialogue flow stays demoable without a search service.
func createSearcherFromConfig(ctx context.Context, cfg *config.Config) (search.ProductSearcher, error) {
	opts := search.Options{
		Source:      string(cfg.Search.Source),
		QueryCount:  cfg.Search.QueryCount,
		KeepCount:   cfg.Search.KeepCount,
		ScoreFilter: cfg.Search.ScoreFilter,
	}

	switch cfg.Search.Backend {
	case config.SearchDiscovery:
		svc := search.NewDiscoveryClient(search.DiscoveryOptions{
			URL:           cfg.Search.URL,
			Username:      cfg.Search.Username,
			Password:      cfg.Search.Password,
			EnvironmentID: cfg.Search.EnvironmentID,
			CollectionID:  cfg.Search.CollectionID,
		})
		return search.NewSearcher(svc, opts), nil

	case config.SearchCatalog:
		embedder, err := createEmbedderFromConfig(cfg)
		if err != nil {
			return nil, fmt.Errorf("creating embedder: %w", err)
		}
		index, err := catalog.NewIndex(embedder)
		if err != nil {
			return nil, fmt.Errorf("creating catalog index: %w", err)
		}
		if err := index.Load(ctx, cfg.Catalog.IndexDir); err != nil {
			return nil, fmt.Errorf("loading catalog index from %s: %w\nRun `shopbot index` first to build it", cfg.Catalog.IndexDir, err)
		}
		opts.Source = search.SourceCatalog
		return search.NewSearcher(search.NewLocalService(index), opts), nil

	case config.SearchStub:
		if cfg.Search.FixturesPath != "" {
			return search.LoadStub(cfg.Search.FixturesPath)
		}
		return search.NewStub(nil), nil

	case "":
		return search.NewStub(nil), nil

	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.Search.Backend)
	}
}
