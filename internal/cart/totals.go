package cart

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Totals are the derived cart figures. They are recomputed from the items
// and coupon on every read and never persisted.
type Totals struct {
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// ItemCount sums quantities across all lines.
func (s State) ItemCount() int {
	count := 0
	for _, item := range s.Items {
		count += item.Quantity
	}
	return count
}

// Subtotal sums price times quantity across all lines.
func (s State) Subtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range s.Items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// Discount is zero without a coupon, and zero whenever the subtotal sits
// below the coupon minimum even though the coupon stays applied. The gate
// re-evaluates on every read, so a cart can drift in and out of eligibility.
func (s State) Discount() decimal.Decimal {
	if s.Coupon == nil {
		return decimal.Zero
	}
	subtotal := s.Subtotal()
	if subtotal.LessThan(s.Coupon.MinOrderAmount) {
		return decimal.Zero
	}
	return subtotal.Mul(s.Coupon.DiscountPercentage).Div(hundred).Round(2)
}

// Totals derives all figures at once. Total is subtotal minus discount and
// cannot go negative for discounts capped at 100 percent.
func (s State) Totals() Totals {
	subtotal := s.Subtotal()
	discount := s.Discount()
	return Totals{
		ItemCount: s.ItemCount(),
		Subtotal:  subtotal,
		Discount:  discount,
		Total:     subtotal.Sub(discount),
	}
}
