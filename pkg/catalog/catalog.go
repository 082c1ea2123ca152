// Package catalog provides the read-only product catalog for the arenito
// sales agent.
package catalog

import "errors"

// ErrNotFound is returned by boundary layers when a weight is not part of the
// catalog. Store.Find itself never returns it.
var ErrNotFound = errors.New("product not found")

// Product is a single catalog row. WeightKg is the natural key.
type Product struct {
	WeightKg    int    `json:"weight_kg" jsonschema:"package weight in kilograms"`
	PriceCLP    int    `json:"price_clp" jsonschema:"price in Chilean pesos, VAT included"`
	Description string `json:"description" jsonschema:"bag combination for this format"`
}

// Store is an immutable, ordered list of products.
type Store struct {
	products []Product
}

// NewStore creates a Store over a private copy of products. The caller's slice
// is not retained.
func NewStore(products []Product) *Store {
	return &Store{
		products: append([]Product(nil), products...),
	}
}

// Default returns a Store holding the built-in price table.
func Default() *Store {
	return NewStore(defaultProducts)
}

// List returns every product in catalog order. The returned slice is a copy.
func (s *Store) List() []Product {
	return append([]Product(nil), s.products...)
}

// Find returns the product with the exact weight, or false when absent.
func (s *Store) Find(weightKg int) (Product, bool) {
	for _, p := range s.products {
		if p.WeightKg == weightKg {
			return p, true
		}
	}
	return Product{}, false
}

// Len returns the number of products in the catalog.
func (s *Store) Len() int {
	return len(s.products)
}
