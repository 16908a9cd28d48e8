package catalog

import (
	"sort"
	"strings"

	"rocketshop/internal/models"

	"golang.org/x/text/cases"
)

func matchesSearch(fold cases.Caser, p models.Product, needle string) bool {
	game := fold.String(p.Game)
	return strings.Contains(fold.String(p.Name), needle) ||
		strings.Contains(game, needle) ||
		initials(game) == needle
}

// initials returns the first rune of every word: "world of warcraft" -> "wow"
func initials(s string) string {
	words := strings.Fields(s)
	if len(words) < 2 {
		return ""
	}
	var b strings.Builder
	for _, w := range words {
		for _, r := range w {
			b.WriteRune(r)
			break
		}
	}
	return b.String()
}

// Filter sentinels that bypass the category and platform filters
const (
	AllCategories = "Все категории"
	AllPlatforms  = "all"
)

// Sort keys
const (
	SortPopular   = "popular"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
)

// EmptyResultMessage is shown when no product matches the filters
const EmptyResultMessage = "Ничего не найдено"

// Query holds the active catalog filters
type Query struct {
	Search   string `json:"q" form:"q"`
	Category string `json:"category" form:"category"`
	Platform string `json:"platform" form:"platform"`
	Sort     string `json:"sort" form:"sort"`
}

// DefaultQuery matches every product, popular first
func DefaultQuery() Query {
	return Query{
		Category: AllCategories,
		Platform: AllPlatforms,
		Sort:     SortPopular,
	}
}

// Normalize fills empty category and platform with their sentinels
func (q Query) Normalize() Query {
	if q.Category == "" {
		q.Category = AllCategories
	}
	if q.Platform == "" {
		q.Platform = AllPlatforms
	}
	return q
}

// Result is the ordered subset of products matching a query
type Result struct {
	Query    Query            `json:"query"`
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Empty    bool             `json:"empty"`
	Message  string           `json:"message,omitempty"`
}

// Find runs the query against the catalog
func (c *Catalog) Find(q Query) Result {
	q = q.Normalize()
	products := Filter(c.products, q)

	res := Result{
		Query:    q,
		Products: products,
		Total:    len(products),
	}
	if len(products) == 0 {
		res.Empty = true
		res.Message = EmptyResultMessage
	}
	return res
}

// Filter returns the products matching all filters of q, ordered by q.Sort.
// The input slice is not modified.
func Filter(products []models.Product, q Query) []models.Product {
	fold := cases.Fold()
	needle := fold.String(q.Search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && q.Category != AllCategories && p.Category != q.Category {
			continue
		}
		if q.Platform != "" && q.Platform != AllPlatforms && p.Platform != q.Platform {
			continue
		}
		if needle != "" && !matchesSearch(fold, p, needle) {
			continue
		}
		out = append(out, p)
	}

	switch q.Sort {
	case SortPopular:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Popular && !out[j].Popular
		})
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price < out[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Price > out[j].Price
		})
	}

	return out
}
