package view

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProductPlaceholderImage = "https://via.placeholder.com/300x200?text=Product"
	CartPlaceholderImage    = "https://via.placeholder.com/100"
	NoDescription           = "No description available"
)

// Money formats an amount with two decimals, e.g. $12.50.
func Money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// Subtotal is quantity * price rounded to cents.
func Subtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

func orString(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func formatDate(t *time.Time) (string, string) {
	if t == nil {
		return "", ""
	}
	lt := t.Local()
	return lt.Format("Jan 2, 2006"), lt.Format("3:04:05 PM")
}
