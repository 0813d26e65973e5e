package controller

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/view"
)

type OrdersController struct {
	Deps
}

func (c *OrdersController) LoadOrders(ctx context.Context, ui UI) error {
	ok, err := c.authenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		ui.Navigate(view.PageHome, 0)
		return ErrAuthRequired
	}

	ui.SetLoading(true)
	defer ui.SetLoading(false)

	orders, err := c.API.Orders(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load_orders_error", "error", err)
		ui.Notify(view.Error("Error loading orders"))
		return err
	}
	ui.ShowOrders(view.RenderOrders(orders))
	return nil
}
