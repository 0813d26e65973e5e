package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/view"
)

type CheckoutController struct {
	Deps
	Cart *CartController
}

func (c *CheckoutController) LoadCheckoutData(ctx context.Context, ui UI) error {
	ok, err := c.authenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		ui.Navigate(view.PageHome, 0)
		return ErrAuthRequired
	}

	cart, err := c.API.Cart(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load_checkout_error", "error", err)
		ui.Notify(view.Error("Error loading checkout data"))
		return err
	}

	if cart.Empty() {
		ui.Notify(view.Error("Your cart is empty"))
		ui.Navigate(view.PageHome, EmptyCartRedirectDelay)
		return ErrEmptyCart
	}

	ui.ShowCheckout(view.RenderCheckoutSummary(cart))
	return nil
}

// LoadProfile prefills the checkout form from the shopper's profile.
func (c *CheckoutController) LoadProfile(ctx context.Context, ui UI) {
	ok, err := c.authenticated(ctx)
	if err != nil || !ok {
		return
	}

	user, err := c.API.Me(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("load_profile_error", "error", err)
		ui.PrefillCheckout(view.RenderCheckoutForm(nil))
		return
	}
	ui.PrefillCheckout(view.RenderCheckoutForm(user))
}

func (c *CheckoutController) PlaceOrder(ctx context.Context, ui UI, shippingAddress, paymentMethod string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("controller", "checkout.place_order")

	shippingAddress = strings.TrimSpace(shippingAddress)
	if shippingAddress == "" {
		ui.Notify(view.Error("Please enter shipping address"))
		return nil, fmt.Errorf("shipping address required: %w", ErrValidation)
	}
	if err := c.requireAuth(ctx, ui, "Please login to place an order"); err != nil {
		return nil, err
	}
	if strings.TrimSpace(paymentMethod) == "" {
		paymentMethod = view.DefaultPaymentMethod
	}

	order, err := c.API.Checkout(ctx, models.CheckoutRequest{ShippingAddress: shippingAddress, PaymentMethod: paymentMethod})
	if err != nil {
		l.Warn("place_order_error", "error", err)
		ui.Notify(view.Error(errMessage(err, "Failed to place order")))
		return nil, err
	}

	ui.Notify(view.Success("Order placed successfully!"))
	if c.Cart != nil {
		c.Cart.UpdateBadge(ctx, ui)
	}
	ui.Navigate(view.PageOrders, OrderPlacedRedirectDelay)
	c.publish(ctx, events.Event{Type: events.TypeOrderPlaced, OrderID: order.ID})

	l.Info("order placed", "order_id", order.ID)
	return order, nil
}
