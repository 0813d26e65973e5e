package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

// ProductPageSize bounds every catalog listing.
const ProductPageSize = 100

const (
	pathLogin      = "/api/users/login"
	pathMe         = "/api/users/me"
	pathRegister   = "/api/users/register"
	pathCategories = "/api/products/categories"
	pathProducts   = "/api/products/"
	pathCartAdd    = "/api/cart/add"
	pathCart       = "/api/cart/"
	pathCartUpdate = "/api/cart/update/"
	pathCartRemove = "/api/cart/remove/"
	pathCartClear  = "/api/cart/clear"
	pathCheckout   = "/api/orders/checkout"
	pathOrders     = "/api/orders/"
)

func escape(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// ProductsPath keeps the parameter order limit, search, category and omits empty filters.
func ProductsPath(f models.ProductFilter) string {
	var b strings.Builder
	b.WriteString(pathProducts)
	b.WriteString("?limit=")
	b.WriteString(strconv.Itoa(ProductPageSize))
	if f.Search != "" {
		b.WriteString("&search=")
		b.WriteString(escape(f.Search))
	}
	if f.Category != "" {
		b.WriteString("&category=")
		b.WriteString(escape(f.Category))
	}
	return b.String()
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*models.TokenResponse, error) {
	var out models.TokenResponse
	if err := c.Request(ctx, http.MethodPost, pathLogin, creds, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	if err := c.Request(ctx, http.MethodGet, pathMe, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, reg models.Registration) error {
	return c.Request(ctx, http.MethodPost, pathRegister, reg, nil)
}

func (c *Client) Categories(ctx context.Context) ([]string, error) {
	var out []string
	if err := c.Request(ctx, http.MethodGet, pathCategories, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Products(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	var out []models.Product
	if err := c.Request(ctx, http.MethodGet, ProductsPath(f), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddToCart(ctx context.Context, productID, quantity int) error {
	return c.Request(ctx, http.MethodPost, pathCartAdd, models.AddToCartRequest{ProductID: productID, Quantity: quantity}, nil)
}

func (c *Client) Cart(ctx context.Context) (*models.Cart, error) {
	var out models.Cart
	if err := c.Request(ctx, http.MethodGet, pathCart, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, itemID, quantity int) error {
	return c.Request(ctx, http.MethodPut, pathCartUpdate+strconv.Itoa(itemID), models.UpdateQuantityRequest{Quantity: quantity}, nil)
}

func (c *Client) RemoveCartItem(ctx context.Context, itemID int) error {
	return c.Request(ctx, http.MethodDelete, pathCartRemove+strconv.Itoa(itemID), nil, nil)
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.Request(ctx, http.MethodDelete, pathCartClear, nil, nil)
}

func (c *Client) Checkout(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	var out models.Order
	if err := c.Request(ctx, http.MethodPost, pathCheckout, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.Request(ctx, http.MethodGet, pathOrders, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
