package catalog

import (
	"strings"

	"github.com/aaushop/storefront/internal/domain/shared"
	"github.com/aaushop/storefront/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Category is the fixed set of storefront categories
type Category string

const (
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home & Living"
	CategoryGadgets     Category = "Gadgets"
	CategoryWellness    Category = "Wellness"
)

// AllCategories returns every valid category in display order
func AllCategories() []Category {
	return []Category{
		CategoryElectronics,
		CategoryFashion,
		CategoryHome,
		CategoryGadgets,
		CategoryWellness,
	}
}

// IsValid reports whether the category is one of the fixed enumeration
func (c Category) IsValid() bool {
	switch c {
	case CategoryElectronics, CategoryFashion, CategoryHome, CategoryGadgets, CategoryWellness:
		return true
	}
	return false
}

// Product is a catalog entry. It is immutable from the cart engine's
// perspective: the engine only ever reads it, never changes it. The ID is
// the normalized identifier - backend storage ids are translated at the
// store client boundary before a Product reaches this package.
type Product struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Price       decimal.Decimal      `json:"price"`
	Currency    valueobject.Currency `json:"currency"`
	Category    Category             `json:"category"`
	Image       string               `json:"image"`
	Rating      float64              `json:"rating"`
	Tags        []string             `json:"tags"`
}

// Validate checks that the product is well-formed
func (p *Product) Validate() error {
	if p.ID == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product id cannot be empty")
	}
	if p.Name == "" {
		return shared.NewDomainError("INVALID_PRODUCT", "Product name cannot be empty")
	}
	if p.Price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if p.Currency == "" {
		return shared.NewDomainError("INVALID_CURRENCY", "Product currency cannot be empty")
	}
	if !p.Category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Unknown product category")
	}
	return nil
}

// PriceMoney returns the unit price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(p.Price, p.Currency)
	return m
}

// MatchesQuery reports whether the product matches a free-text search query.
// A product matches when the query is a case-insensitive substring of its
// name or of any tag.
func (p *Product) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter narrows a product list by category and search query. An empty
// category (or "All") keeps every category; an empty query keeps every
// product. Input order is preserved.
func Filter(products []Product, category, query string) []Product {
	result := make([]Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != "All" && string(p.Category) != category {
			continue
		}
		if !p.MatchesQuery(query) {
			continue
		}
		result = append(result, p)
	}
	return result
}
