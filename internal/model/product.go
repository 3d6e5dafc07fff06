package model

import "github.com/shopspring/decimal"

// Product is a static catalog entry. The catalog is loaded once at startup
// and never changes while the process runs.
type Product struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

type CartLine struct {
	ProductID int `json:"id"`
	Quantity  int `json:"quantity"`
}

type PricedLine struct {
	ProductID int             `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type PricedCart struct {
	Lines      []PricedLine `json:"lines"`
	TotalCents int64        `json:"totalCents"`
	Currency   string       `json:"currency"`
}
