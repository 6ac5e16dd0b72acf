package catalog

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/voxshop/shopbot/internal/embeddings"
)

const (
	collectionName = "products"
	indexFileName  = "catalog.gob.gz"
)

// Hit pairs a product with its similarity to the query.
type Hit struct {
	Product    Product
	Similarity float32
}

// Index is a semantic product index backed by chromem-go. Products are
// embedded once at indexing time and queried by free-text similarity.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewIndex creates a new in-memory product index.
func NewIndex(embedder embeddings.Embedder) (*Index, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	return &Index{
		db:         db,
		collection: col,
		embedFunc:  ef,
	}, nil
}

// Add embeds and stores the given products. Re-adding a product with the
// same ID replaces the previous entry.
func (ix *Index) Add(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(products))
	for i, p := range products {
		docs[i] = chromem.Document{
			ID:       p.ID,
			Content:  p.embeddingText(),
			Metadata: productToMetadata(p),
		}
	}

	return ix.collection.AddDocuments(ctx, docs, 1)
}

// Query returns the products closest to the query text, best match first.
func (ix *Index) Query(ctx context.Context, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}

	// chromem-go requires nResults <= collection size.
	if count := ix.collection.Count(); limit > count && count > 0 {
		limit = count
	} else if count == 0 {
		return nil, nil
	}

	results, err := ix.collection.Query(ctx, query, limit, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	hits := make([]Hit, len(results))
	for i, r := range results {
		hits[i] = Hit{
			Product:    metadataToProduct(r.ID, r.Metadata),
			Similarity: r.Similarity,
		}
	}

	return hits, nil
}

// Persist saves the index to the given directory.
func (ix *Index) Persist(ctx context.Context, dir string) error {
	return ix.db.ExportToFile(dir+"/"+indexFileName, true, "")
}

// Load restores the index from the given directory.
func (ix *Index) Load(ctx context.Context, dir string) error {
	err := ix.db.ImportFromFile(dir+"/"+indexFileName, "")
	if err != nil {
		return fmt.Errorf("import from file: %w", err)
	}

	// Re-acquire collection reference after import.
	col := ix.db.GetCollection(collectionName, ix.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	ix.collection = col
	return nil
}

// Count returns the number of indexed products.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

// productToMetadata flattens a product into the map[string]string chromem
// stores alongside each document.
func productToMetadata(p Product) map[string]string {
	return map[string]string{
		"name":        p.Name,
		"url":         p.URL,
		"image_url":   p.ImageURL,
		"description": p.Description,
		"category":    p.Category,
	}
}

// metadataToProduct rebuilds a product from a stored document.
func metadataToProduct(id string, m map[string]string) Product {
	return Product{
		ID:          id,
		Name:        m["name"],
		URL:         m["url"],
		ImageURL:    m["image_url"],
		Description: m["description"],
		Category:    m["category"],
	}
}
