package controller

import (
	"context"
	"strings"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/view"
)

type CatalogController struct {
	Deps
}

// LoadCategories fills the category filter. Failures are logged only.
func (c *CatalogController) LoadCategories(ctx context.Context, ui UI, selected string) error {
	categories, err := c.API.Categories(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load_categories_error", "error", err)
		return err
	}
	ui.ShowCategories(view.RenderCategories(categories, selected))
	return nil
}

func (c *CatalogController) LoadProducts(ctx context.Context, ui UI, f models.ProductFilter) error {
	ui.SetLoading(true)
	defer ui.SetLoading(false)

	ui.SetFilter(f)

	products, err := c.API.Products(ctx, f)
	if err != nil {
		logging.FromContext(ctx).Error("load_products_error", "search", f.Search, "category", f.Category, "error", err)
		ui.Notify(view.Error("Error loading products"))
		return err
	}

	ui.ShowProducts(view.RenderProductGrid(products))
	return nil
}

func (c *CatalogController) ApplyFilters(ctx context.Context, ui UI, f models.ProductFilter) error {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	return c.LoadProducts(ctx, ui, f)
}

func (c *CatalogController) ClearFilters(ctx context.Context, ui UI) error {
	return c.LoadProducts(ctx, ui, models.ProductFilter{})
}
