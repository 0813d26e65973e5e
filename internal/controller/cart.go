package controller

import (
	"context"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/view"
)

const clearCartPrompt = "Are you sure you want to clear your cart?"

type CartController struct {
	Deps
}

func (c *CartController) AddToCart(ctx context.Context, ui UI, productID, quantity int) error {
	l := logging.FromContext(ctx).With("controller", "cart.add", "product_id", productID)

	if err := c.requireAuth(ctx, ui, "Please login to add items to cart"); err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}

	if err := c.API.AddToCart(ctx, productID, quantity); err != nil {
		l.Warn("add_to_cart_error", "error", err)
		ui.Notify(view.Error(errMessage(err, "Failed to add item to cart")))
		return err
	}

	ui.Notify(view.Success("Item added to cart!"))
	c.UpdateBadge(ctx, ui)
	c.publish(ctx, events.Event{Type: events.TypeCartItemAdded, ProductID: productID, Quantity: quantity})
	return nil
}

// UpdateBadge shows the server's total item count; anonymous shoppers and failures show 0.
func (c *CartController) UpdateBadge(ctx context.Context, ui UI) {
	ok, err := c.authenticated(ctx)
	if err != nil || !ok {
		ui.SetCartCount(0)
		return
	}

	cart, err := c.API.Cart(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("update_cart_badge_error", "error", err)
		ui.SetCartCount(0)
		return
	}
	ui.SetCartCount(cart.TotalItems)
}

func (c *CartController) LoadCart(ctx context.Context, ui UI) error {
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

	cart, err := c.API.Cart(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load_cart_error", "error", err)
		ui.Notify(view.Error("Error loading cart"))
		return err
	}
	ui.ShowCart(view.RenderCart(cart))
	return nil
}

// UpdateQuantity treats any quantity below 1 as a removal.
func (c *CartController) UpdateQuantity(ctx context.Context, ui UI, itemID, quantity int) error {
	if quantity < 1 {
		return c.RemoveItem(ctx, ui, itemID)
	}
	if err := c.requireAuth(ctx, ui, "Please login to manage your cart"); err != nil {
		return err
	}

	if err := c.API.UpdateCartItem(ctx, itemID, quantity); err != nil {
		logging.FromContext(ctx).Warn("update_cart_item_error", "item_id", itemID, "error", err)
		ui.Notify(view.Error(errMessage(err, "Failed to update quantity")))
		return err
	}

	c.publish(ctx, events.Event{Type: events.TypeCartUpdated, ItemID: itemID, Quantity: quantity})
	c.refresh(ctx, ui)
	return nil
}

func (c *CartController) RemoveItem(ctx context.Context, ui UI, itemID int) error {
	if err := c.requireAuth(ctx, ui, "Please login to manage your cart"); err != nil {
		return err
	}

	if err := c.API.RemoveCartItem(ctx, itemID); err != nil {
		logging.FromContext(ctx).Warn("remove_cart_item_error", "item_id", itemID, "error", err)
		ui.Notify(view.Error(errMessage(err, "Failed to remove item")))
		return err
	}

	ui.Notify(view.Success("Item removed from cart"))
	c.publish(ctx, events.Event{Type: events.TypeCartRemoved, ItemID: itemID})
	c.refresh(ctx, ui)
	return nil
}

func (c *CartController) ClearCart(ctx context.Context, ui UI) error {
	if err := c.requireAuth(ctx, ui, "Please login to manage your cart"); err != nil {
		return err
	}
	if !ui.Confirm(clearCartPrompt) {
		return ErrNotConfirmed
	}

	if err := c.API.ClearCart(ctx); err != nil {
		logging.FromContext(ctx).Warn("clear_cart_error", "error", err)
		ui.Notify(view.Error(errMessage(err, "Failed to clear cart")))
		return err
	}

	ui.Notify(view.Success("Cart cleared"))
	c.publish(ctx, events.Event{Type: events.TypeCartCleared})
	c.refresh(ctx, ui)
	return nil
}

func (c *CartController) refresh(ctx context.Context, ui UI) {
	_ = c.LoadCart(ctx, ui)
	c.UpdateBadge(ctx, ui)
}
