package mockapi

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/logging"
)

func strPtr(s string) *string { return &s }

func demoProduct(name, description, price, category string, stock int, image string) Product {
	return Product{
		Name:          name,
		Description:   strPtr(description),
		Price:         decimal.RequireFromString(price),
		Category:      category,
		StockQuantity: stock,
		ImageURL:      strPtr(image),
	}
}

func DemoProducts() []Product {
	return []Product{
		demoProduct("Laptop - Dell XPS 15", "High-performance laptop with Intel i7 processor, 16GB RAM, 512GB SSD", "1299.99", "Electronics", 15, "https://loremflickr.com/300/300/laptop"),
		demoProduct("Wireless Mouse", "Ergonomic wireless mouse with 2.4GHz connectivity", "29.99", "Electronics", 50, "https://loremflickr.com/300/300/mouse"),
		demoProduct("Mechanical Keyboard", "RGB mechanical keyboard with blue switches", "89.99", "Electronics", 30, "https://loremflickr.com/300/300/keyboard"),
		demoProduct("Running Shoes", "Comfortable running shoes with cushioned sole", "79.99", "Sports", 40, "https://loremflickr.com/300/300/shoes"),
		demoProduct("Yoga Mat", "Non-slip yoga mat with carrying strap", "24.99", "Sports", 60, "https://loremflickr.com/300/300/yoga"),
		demoProduct("Coffee Maker", "Programmable coffee maker with 12-cup capacity", "49.99", "Home", 25, "https://loremflickr.com/300/300/coffee"),
		demoProduct("Blender", "High-speed blender for smoothies and shakes", "59.99", "Home", 20, "https://loremflickr.com/300/300/blender"),
		demoProduct("Fiction Book - The Great Novel", "Bestselling fiction novel", "14.99", "Books", 100, "https://loremflickr.com/300/300/book"),
		demoProduct("Headphones - Sony WH-1000XM4", "Noise-cancelling wireless headphones", "349.99", "Electronics", 20, "https://loremflickr.com/300/300/headphones"),
		demoProduct("Water Bottle", "Insulated stainless steel water bottle, 32oz", "19.99", "Sports", 75, "https://loremflickr.com/300/300/waterbottle"),
		demoProduct("Desk Lamp", "LED desk lamp with adjustable brightness", "34.99", "Home", 5, "https://loremflickr.com/300/300/lamp"),
		demoProduct("Vintage Camera", "Collector's film camera, display only", "199.00", "Electronics", 0, "https://loremflickr.com/300/300/camera"),
	}
}

// Seed inserts the demo catalog when the products table is empty.
func Seed(ctx context.Context, repo *GormRepo) error {
	l := logging.FromContext(ctx).With("component", "mockapi.seed")

	n, err := repo.CountProducts(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		l.Info("catalog already seeded", "products", n)
		return nil
	}

	products := DemoProducts()
	if err := repo.CreateProducts(ctx, products); err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	l.Info("catalog seeded", "products", len(products))
	return nil
}
