package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"rocketshop/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// ErrProductNotFound is returned when a product id is not in the catalog
var ErrProductNotFound = errors.New("product not found")

// Catalog is an immutable, ordered set of products
type Catalog struct {
	products []models.Product
	byID     map[int64]int
}

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

// Parse decodes a YAML catalog document
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(f.Products)
}

// Default returns the catalog embedded in the binary
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// New builds a catalog, rejecting duplicate ids and negative prices
func New(products []models.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]models.Product, len(products)),
		byID:     make(map[int64]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %d", p.ID)
		}
		if p.Price < 0 {
			return nil, fmt.Errorf("product %d has negative price", p.ID)
		}
		c.byID[p.ID] = i
	}

	return c, nil
}

// Products returns a copy of all products in catalog order
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products
func (c *Catalog) Len() int {
	return len(c.products)
}

// Get looks up a product by id
func (c *Catalog) Get(id int64) (models.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Product{}, fmt.Errorf("%w: %d", ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// Categories returns the category filter values, sentinel first
func (c *Catalog) Categories() []string {
	return distinct(AllCategories, c.products, func(p models.Product) string { return p.Category })
}

// Platforms returns the platform filter values, sentinel first
func (c *Catalog) Platforms() []string {
	return distinct(AllPlatforms, c.products, func(p models.Product) string { return p.Platform })
}

func distinct(sentinel string, products []models.Product, key func(models.Product) string) []string {
	seen := map[string]bool{sentinel: true}
	out := []string{sentinel}
	for _, p := range products {
		k := key(p)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
