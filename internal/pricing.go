package internal

import (
	"github.com/shopspring/decimal"

	"github.com/shopfront/checkout/internal/model"
)

var centsInUnit = decimal.NewFromInt(100)

// PriceCart recomputes the cart total from the catalog; amounts sent by the
// client are never trusted. The exact sum is accumulated in major units and
// converted to cents with a single half-away-from-zero rounding, so no
// per-line rounding error accumulates. Output lines keep the input order.
func PriceCart(catalog map[int]model.Product, lines []model.CartLine) (model.PricedCart, error) {
	if len(lines) == 0 {
		return model.PricedCart{}, ErrEmptyCart
	}

	priced := make([]model.PricedLine, 0, len(lines))
	sum := decimal.Zero
	for _, l := range lines {
		p, ok := catalog[l.ProductID]
		if !ok {
			return model.PricedCart{}, ErrUnknownProduct
		}
		if l.Quantity <= 0 {
			return model.PricedCart{}, ErrInvalidQuantity
		}

		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		sum = sum.Add(lineTotal)
		priced = append(priced, model.PricedLine{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  l.Quantity,
			LineTotal: lineTotal,
		})
	}

	return model.PricedCart{
		Lines:      priced,
		TotalCents: sum.Mul(centsInUnit).Round(0).IntPart(),
		Currency:   Currency,
	}, nil
}
