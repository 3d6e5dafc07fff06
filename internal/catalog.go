package internal

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopfront/checkout/internal/model"
)

// Currency is the single currency the store charges in.
const Currency = "usd"

// LoadCatalog reads the product catalog once at startup. The result is
// treated as immutable for the lifetime of the process.
func LoadCatalog(path string) (map[int]model.Product, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var products []model.Product
	if err = json.Unmarshal(b, &products); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	catalog := make(map[int]model.Product, len(products))
	for _, p := range products {
		if p.Currency == "" {
			p.Currency = Currency
		}
		catalog[p.ID] = p
	}
	return catalog, nil
}
