package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxshop/shopbot/internal/catalog"
	"github.com/voxshop/shopbot/internal/progress"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic index for the local product catalog",
	Long: `Reads the product catalog file, embeds every product, and persists
the index so the catalog search backend can answer queries.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().String("products", "", "product catalog file (overrides config)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	start := time.Now()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.Catalog.Path
	if p, _ := cmd.Flags().GetString("products"); p != "" {
		path = p
	}

	products, err := catalog.LoadFile(path)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	if len(products) == 0 {
		fmt.Println("No products found in the catalog file.")
		return nil
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded %d products from %s\n", len(products), path)
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}

	index, err := catalog.NewIndex(embedder)
	if err != nil {
		return fmt.Errorf("creating catalog index: %w", err)
	}

	reporter := progress.New("Indexing products")
	reporter.Start(len(products))
	for i, p := range products {
		if err := index.Add(ctx, []catalog.Product{p}); err != nil {
			reporter.Finish()
			return fmt.Errorf("indexing %q: %w", p.Name, err)
		}
		reporter.Update(i+1, p.Name)
	}
	reporter.Finish()

	if err := os.MkdirAll(cfg.Catalog.IndexDir, 0755); err != nil {
		return fmt.Errorf("creating index directory: %w", err)
	}
	if err := index.Persist(ctx, cfg.Catalog.IndexDir); err != nil {
		return fmt.Errorf("persisting index: %w", err)
	}

	fmt.Println()
	fmt.Println("Catalog indexing complete!")
	fmt.Printf("  Products indexed: %d\n", index.Count())
	fmt.Printf("  Embedding model:  %s\n", embedder.Name())
	fmt.Printf("  Duration:         %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Output:           %s\n", cfg.Catalog.IndexDir)

	return nil
}
