package view

import "github.com/Skotchmaster/storefront/internal/models"

type CartLine struct {
	ItemID       int
	Name         string
	ImageURL     string
	UnitPrice    string
	Quantity     int
	Subtotal     string
	DecrementQty int
	IncrementQty int
}

type CartView struct {
	Empty      bool
	Lines      []CartLine
	TotalItems int
	Subtotal   string
	Total      string
}

func productName(p *models.Product) string {
	if p == nil {
		return ""
	}
	return p.Name
}

func RenderCart(cart *models.Cart) CartView {
	if cart.Empty() {
		return CartView{Empty: true}
	}

	lines := make([]CartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		line := CartLine{
			ItemID:       it.ID,
			Name:         productName(it.Product),
			ImageURL:     CartPlaceholderImage,
			Quantity:     it.Quantity,
			DecrementQty: it.Quantity - 1,
			IncrementQty: it.Quantity + 1,
		}
		if it.Product != nil {
			line.ImageURL = orString(it.Product.ImageURL, CartPlaceholderImage)
			line.UnitPrice = Money(it.Product.Price)
			line.Subtotal = Money(Subtotal(it.Product.Price, it.Quantity))
		}
		lines = append(lines, line)
	}

	total := Money(cart.TotalPrice)
	return CartView{
		Lines:      lines,
		TotalItems: cart.TotalItems,
		Subtotal:   total,
		Total:      total,
	}
}

type SummaryLine struct {
	Label    string
	Subtotal string
}

type CheckoutSummary struct {
	Empty      bool
	Lines      []SummaryLine
	TotalItems int
	Subtotal   string
	Total      string
}

func RenderCheckoutSummary(cart *models.Cart) CheckoutSummary {
	cv := RenderCart(cart)
	if cv.Empty {
		return CheckoutSummary{Empty: true}
	}

	lines := make([]SummaryLine, 0, len(cv.Lines))
	for _, l := range cv.Lines {
		lines = append(lines, SummaryLine{
			Label:    l.Name + " x" + itoa(l.Quantity),
			Subtotal: l.Subtotal,
		})
	}
	return CheckoutSummary{
		Lines:      lines,
		TotalItems: cv.TotalItems,
		Subtotal:   cv.Subtotal,
		Total:      cv.Total,
	}
}
