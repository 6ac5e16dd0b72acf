package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxshop/shopbot/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for products from the command line",
	Long:  `Runs one product search against the configured backend and prints the results.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearchCmd,
}

func init() {
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearchCmd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	searcher, err := createSearcherFromConfig(ctx, cfg)
	if err != nil {
		return err
	}

	products, text, err := searcher.Search(ctx, args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if jsonOutput {
		out := struct {
			Products []search.Product `json:"products"`
			Text     string           `json:"text"`
		}{Products: products, Text: text}
		if out.Products == nil {
			out.Products = []search.Product{}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(products) == 0 {
		// Canned reply backends render text without product records.
		if text != "" {
			fmt.Println(text)
			return nil
		}
		fmt.Println("No products found.")
		return nil
	}

	fmt.Printf("Found %d product(s):\n", len(products))
	for _, p := range products {
		fmt.Printf("  %d. %s\n", p.Ordinal, p.Name)
		if p.URL != "" {
			fmt.Printf("     %s\n", p.URL)
		}
	}
	return nil
}
