// Package catalog holds the read-only product catalog. Products are loaded
// once at startup from a structured document and never change afterwards;
// every accessor returns copies so callers cannot mutate the catalog.
package catalog

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/foodorder/storefront/core"
)

// CategoryAll is the pseudo-category matching every product
const CategoryAll = "All"

// Product is one catalog entry. Immutable for the process lifetime.
type Product struct {
	ID              int      `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Price           int64    `yaml:"price" json:"price"`
	Category        string   `yaml:"category" json:"category"`
	Description     string   `yaml:"description" json:"description"`
	Rating          float64  `yaml:"rating" json:"rating"`
	IsAvailable     bool     `yaml:"isAvailable" json:"isAvailable"`
	IsVegetarian    bool     `yaml:"isVegetarian" json:"isVegetarian"`
	PreparationTime string   `yaml:"preparationTime" json:"preparationTime"`
	Ingredients     []string `yaml:"ingredients" json:"ingredients"`
	Image           string   `yaml:"image" json:"image"`
}

// Document is the on-disk catalog shape: a single "foods" list
type Document struct {
	Foods []Product `yaml:"foods" json:"foods"`
}

// Catalog is the loaded product list with query helpers
type Catalog struct {
	products []Product
	logger   core.Logger
}

// New creates a catalog from an in-memory product list
func New(products []Product, logger core.Logger) (*Catalog, error) {
	if logger == nil {
		logger = &core.NoOpLogger{}
	}
	if err := validate(products); err != nil {
		return nil, err
	}

	c := &Catalog{
		products: append([]Product(nil), products...),
		logger:   logger,
	}
	logger.Info("Catalog loaded", map[string]interface{}{
		"products":   len(c.products),
		"categories": len(c.Categories()) - 1,
	})
	return c, nil
}

// Load reads and parses a catalog document from disk. The parser accepts
// YAML, and since YAML is a JSON superset it reads JSON documents too.
func Load(path string, logger core.Logger) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %q: %w", path, err)
	}
	return Parse(data, logger)
}

// Parse builds a catalog from raw document bytes
func Parse(data []byte, logger core.Logger) (*Catalog, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w: %v", core.ErrInvalidCatalog, err)
	}
	return New(doc.Foods, logger)
}

func validate(products []Product) error {
	seen := make(map[int]bool, len(products))
	for _, p := range products {
		if p.Name == "" {
			return fmt.Errorf("product %d has no name: %w", p.ID, core.ErrInvalidCatalog)
		}
		if p.Price < 0 {
			return fmt.Errorf("product %q has negative price: %w", p.Name, core.ErrInvalidCatalog)
		}
		// Ratings are half-star steps between 0 and 5
		if p.Rating < 0 || p.Rating > 5 || math.Mod(p.Rating*2, 1) != 0 {
			return fmt.Errorf("product %q has invalid rating %v: %w", p.Name, p.Rating, core.ErrInvalidCatalog)
		}
		if seen[p.ID] {
			return fmt.Errorf("duplicate product id %d: %w", p.ID, core.ErrInvalidCatalog)
		}
		seen[p.ID] = true
	}
	return nil
}

// Products returns all products in document order
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get returns the product with the given ID
func (c *Catalog) Get(id int) (Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %d: %w", id, core.ErrProductNotFound)
}

// ByCategory returns products in the given category, preserving document
// order. CategoryAll returns everything.
func (c *Catalog) ByCategory(category string) []Product {
	if category == CategoryAll {
		return c.Products()
	}
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Available returns only the products currently marked available
func (c *Catalog) Available() []Product {
	var out []Product
	for _, p := range c.products {
		if p.IsAvailable {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns CategoryAll followed by the distinct product categories
// in first-appearance order
func (c *Catalog) Categories() []string {
	out := []string{CategoryAll}
	seen := map[string]bool{}
	for _, p := range c.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}
