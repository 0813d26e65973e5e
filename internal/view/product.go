package view

import (
	"strconv"

	"github.com/Skotchmaster/storefront/internal/models"
)

const LowStockThreshold = 10

type StockLevel string

const (
	StockOut     StockLevel = "out"
	StockLow     StockLevel = "low"
	StockInStock StockLevel = "in"
)

type StockBadge struct {
	Level StockLevel
	Label string
}

func (b StockBadge) CSSClass() string {
	switch b.Level {
	case StockOut:
		return "stock-out"
	case StockLow:
		return "stock-low"
	default:
		return ""
	}
}

func RenderStock(quantity int) StockBadge {
	switch {
	case quantity <= 0:
		return StockBadge{Level: StockOut, Label: "Out of Stock"}
	case quantity < LowStockThreshold:
		return StockBadge{Level: StockLow, Label: strconv.Itoa(quantity) + " in stock"}
	default:
		return StockBadge{Level: StockInStock, Label: strconv.Itoa(quantity) + " in stock"}
	}
}

type ProductCard struct {
	ID          int
	Name        string
	Category    string
	Description string
	ImageURL    string
	Price       string
	Stock       StockBadge
	CanAdd      bool
}

type ProductGrid struct {
	Empty bool
	Cards []ProductCard
}

func RenderProductGrid(products []models.Product) ProductGrid {
	if len(products) == 0 {
		return ProductGrid{Empty: true}
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		stock := RenderStock(p.StockQuantity)
		cards = append(cards, ProductCard{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Description: orString(p.Description, NoDescription),
			ImageURL:    orString(p.ImageURL, ProductPlaceholderImage),
			Price:       Money(p.Price),
			Stock:       stock,
			CanAdd:      stock.Level != StockOut,
		})
	}
	return ProductGrid{Cards: cards}
}

type CategoryOption struct {
	Value    string
	Selected bool
}

func RenderCategories(categories []string, selected string) []CategoryOption {
	out := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryOption{Value: c, Selected: c == selected})
	}
	return out
}
