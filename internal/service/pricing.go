package service

import (
	"math"
	"saree-checkout/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// UnitPrice resolves the price a product sells for. An explicit price wins;
// otherwise it is round(mrp - mrp*discountPercent/100), never below zero.
// Missing or non-finite inputs count as zero.
func UnitPrice(p *model.Product) int64 {
	if p == nil {
		return 0
	}
	if p.Price != nil {
		return *p.Price
	}

	mrp := decimal.NewFromFloat(finite(p.MRP))
	discountPercent := decimal.NewFromFloat(finite(p.DiscountPercent))

	price := mrp.Sub(mrp.Mul(discountPercent).Div(hundred)).Round(0)
	if price.IsNegative() {
		return 0
	}
	return price.IntPart()
}

func finite(v *float64) float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return 0
	}
	return *v
}
