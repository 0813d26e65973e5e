package mockapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/util"
)

const ctxUserID = "user_id"

type Handler struct {
	Svc *Service
}

type validationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func userID(c echo.Context) uint {
	id, _ := c.Get(ctxUserID).(uint)
	return id
}

func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, invalid(name, "Input should be a valid integer")
	}
	return uint(id), nil
}

func writeError(c echo.Context, e *Error) error {
	if errors.Is(e, ErrValidation) {
		return c.JSON(e.Status, map[string]any{
			"detail": []validationDetail{{Loc: []string{"body", e.Field}, Msg: e.Message, Type: "value_error"}},
		})
	}
	return c.JSON(e.Status, map[string]string{"detail": e.Message})
}

func fail(c echo.Context, l *slog.Logger, event string, err error) error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		l.Warn(event, "status", apiErr.Status, "error", apiErr.Message)
		return writeError(c, apiErr)
	}
	l.Error(event, "status", 500, "error", err)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
}

func (h *Handler) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.register")

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, l, "register_error", invalid("body", "Invalid request body"))
	}

	u, err := h.Svc.Register(ctx, models.Registration{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	}, req.Phone, req.Address)
	if err != nil {
		return fail(c, l, "register_error", err)
	}

	return c.JSON(http.StatusCreated, toUser(u))
}

func (h *Handler) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.login")

	var req models.Credentials
	if err := c.Bind(&req); err != nil {
		return fail(c, l, "login_error", invalid("body", "Invalid request body"))
	}

	token, err := h.Svc.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, l, "login_error", err)
	}

	l.Info("user logged in", "username", req.Username)
	return c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (h *Handler) Me(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "users.me")

	u, err := h.Svc.Profile(ctx, userID(c))
	if err != nil {
		return fail(c, l, "get_profile_error", err)
	}
	return c.JSON(http.StatusOK, toUser(u))
}

func (h *Handler) Categories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.categories")

	categories, err := h.Svc.Categories(ctx)
	if err != nil {
		return fail(c, l, "get_categories_error", err)
	}
	if categories == nil {
		categories = []string{}
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *Handler) Products(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "products.list")

	offset, limit := util.Window(
		util.ParseIntDefault(c.QueryParam("skip"), 0),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultLimit),
	)
	products, err := h.Svc.Products(ctx, ProductQuery{
		Search:   c.QueryParam("search"),
		Category: c.QueryParam("category"),
		Offset:   offset,
		Limit:    limit,
	})
	if err != nil {
		return fail(c, l, "get_products_error", err)
	}
	return c.JSON(http.StatusOK, toProducts(products))
}

func (h *Handler) Cart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get")

	items, err := h.Svc.Cart(ctx, userID(c))
	if err != nil {
		return fail(c, l, "get_cart_error", err)
	}
	return c.JSON(http.StatusOK, toCart(items))
}

func (h *Handler) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add")

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, l, "add_to_cart_error", invalid("body", "Invalid request body"))
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	item, err := h.Svc.AddToCart(ctx, userID(c), req.ProductID, quantity)
	if err != nil {
		return fail(c, l, "add_to_cart_error", err)
	}

	l.Info("item added to cart", "product_id", req.ProductID, "quantity", item.Quantity)
	return c.JSON(http.StatusCreated, toCartItem(*item))
}

func (h *Handler) UpdateCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.update")

	itemID, err := pathID(c, "id")
	if err != nil {
		return fail(c, l, "update_cart_item_error", err)
	}
	var req models.UpdateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, l, "update_cart_item_error", invalid("body", "Invalid request body"))
	}

	item, err := h.Svc.UpdateCartItem(ctx, userID(c), itemID, req.Quantity)
	if err != nil {
		return fail(c, l, "update_cart_item_error", err)
	}
	return c.JSON(http.StatusOK, toCartItem(*item))
}

func (h *Handler) RemoveCartItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove")

	itemID, err := pathID(c, "id")
	if err != nil {
		return fail(c, l, "remove_cart_item_error", err)
	}
	if err := h.Svc.RemoveCartItem(ctx, userID(c), itemID); err != nil {
		return fail(c, l, "remove_cart_item_error", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Item removed from cart"})
}

func (h *Handler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.clear")

	if err := h.Svc.ClearCart(ctx, userID(c)); err != nil {
		return fail(c, l, "clear_cart_error", err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Cart cleared successfully"})
}

func (h *Handler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.checkout")

	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, l, "checkout_error", invalid("body", "Invalid request body"))
	}

	order, err := h.Svc.Checkout(ctx, userID(c), req)
	if err != nil {
		return fail(c, l, "checkout_error", err)
	}
	return c.JSON(http.StatusCreated, toOrder(*order))
}

func (h *Handler) Orders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "orders.list")

	offset, limit := util.Window(
		util.ParseIntDefault(c.QueryParam("skip"), 0),
		util.ParseIntDefault(c.QueryParam("limit"), util.DefaultLimit),
	)
	orders, err := h.Svc.Orders(ctx, userID(c), offset, limit)
	if err != nil {
		return fail(c, l, "get_orders_error", err)
	}
	return c.JSON(http.StatusOK, toOrders(orders))
}
