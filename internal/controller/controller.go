package controller

import (
	"context"
	"errors"
	"time"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/view"
)

var (
	ErrValidation   = errors.New("validation")
	ErrAuthRequired = errors.New("authentication required")
	ErrNotConfirmed = errors.New("not confirmed")
	ErrEmptyCart    = errors.New("cart is empty")
)

const (
	LogoutRedirectDelay      = 1 * time.Second
	EmptyCartRedirectDelay   = 2 * time.Second
	OrderPlacedRedirectDelay = 2 * time.Second
)

// API is the remote storefront contract the controllers depend on.
type API interface {
	Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error)
	Me(ctx context.Context) (*models.UserProfile, error)
	Register(ctx context.Context, reg models.Registration) error
	Categories(ctx context.Context) ([]string, error)
	Products(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	AddToCart(ctx context.Context, productID, quantity int) error
	Cart(ctx context.Context) (*models.Cart, error)
	UpdateCartItem(ctx context.Context, itemID, quantity int) error
	RemoveCartItem(ctx context.Context, itemID int) error
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Order, error)
	Orders(ctx context.Context) ([]models.Order, error)
}

// UI receives everything a controller wants shown. Implementations decide how to apply it.
type UI interface {
	Notify(n view.Notification)
	SetLoading(loading bool)
	Navigate(p view.Page, after time.Duration)
	Reload()
	PromptLogin()
	ShowLoginForm()
	Confirm(prompt string) bool

	SetAuth(b view.AuthBadge)
	SetCartCount(n int)
	SetFilter(f models.ProductFilter)
	ShowCategories(opts []view.CategoryOption)
	ShowProducts(g view.ProductGrid)
	ShowCart(c view.CartView)
	ShowCheckout(s view.CheckoutSummary)
	PrefillCheckout(f view.CheckoutForm)
	ShowOrders(o view.OrdersList)
}

type Deps struct {
	API     API
	Session *session.Session
	Events  events.Publisher
}

type Set struct {
	Auth     *AuthController
	Catalog  *CatalogController
	Cart     *CartController
	Checkout *CheckoutController
	Orders   *OrdersController
}

func NewSet(d Deps) *Set {
	if d.Events == nil {
		d.Events = events.Noop{}
	}
	cart := &CartController{Deps: d}
	return &Set{
		Auth:     &AuthController{Deps: d},
		Catalog:  &CatalogController{Deps: d},
		Cart:     cart,
		Checkout: &CheckoutController{Deps: d, Cart: cart},
		Orders:   &OrdersController{Deps: d},
	}
}

// errMessage prefers the server-supplied message and falls back to the action's own text.
func errMessage(err error, fallback string) string {
	var rerr *apiclient.RequestError
	if errors.As(err, &rerr) && rerr.Message != "" {
		return rerr.Message
	}
	return fallback
}

func (d Deps) authenticated(ctx context.Context) (bool, error) {
	_, ok, err := d.Session.Token(ctx)
	return ok, err
}

// requireAuth prompts for login when no token is stored. No request is made in that case.
func (d Deps) requireAuth(ctx context.Context, ui UI, msg string) error {
	ok, err := d.authenticated(ctx)
	if err != nil {
		ui.Notify(view.Error("Session unavailable"))
		return err
	}
	if !ok {
		ui.Notify(view.Error(msg))
		ui.PromptLogin()
		return ErrAuthRequired
	}
	return nil
}

func (d Deps) publish(ctx context.Context, e events.Event) {
	if d.Events == nil {
		return
	}
	if e.Username == "" {
		if u, err := d.Session.User(ctx); err == nil && u != nil {
			e.Username = u.Username
		}
	}
	e.At = time.Now().UTC()
	if err := d.Events.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Error("publish_event_error", "type", e.Type, "error", err)
	}
}
