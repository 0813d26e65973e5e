package web

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/controller"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/view"
)

var _ controller.UI = (*Page)(nil)

type Handler struct {
	Set     *controller.Set
	Session *session.Session
}

// page starts a render: pending flash, header badge and cart count.
func (h *Handler) page(c echo.Context, name view.Page) *Page {
	ctx := c.Request().Context()
	p := NewPage(name)
	p.CSRF = csrf.Token(c)
	popFlash(c, p)
	h.Set.Auth.CheckAuth(ctx, p)
	h.Set.Cart.UpdateBadge(ctx, p)
	return p
}

// action starts a form post. Nothing is rendered unless the handler decides to.
func (h *Handler) action(c echo.Context, name view.Page) *Page {
	p := NewPage(name)
	p.CSRF = csrf.Token(c)
	p.ReturnPath = safeReturn(c.FormValue("return"), name.Path())
	return p
}

func safeReturn(path, def string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") || strings.HasPrefix(path, "/\\") {
		return def
	}
	return path
}

func loginURL(returnPath string) string {
	if returnPath == "" || returnPath == "/" || returnPath == view.PageLogin.Path() {
		return view.PageLogin.Path()
	}
	return view.PageLogin.Path() + "?return=" + url.QueryEscape(returnPath)
}

// finish turns what the controllers recorded on p into a response.
func (h *Handler) finish(c echo.Context, p *Page, status int, tmpl string) error {
	switch {
	case p.loginPrompt:
		setFlash(c, p)
		return c.Redirect(http.StatusSeeOther, loginURL(p.ReturnPath))
	case p.Redirect != nil && p.Redirect.After <= 0:
		setFlash(c, p)
		return c.Redirect(http.StatusSeeOther, p.Redirect.Path)
	case p.Redirect != nil:
		return c.Render(http.StatusOK, "redirect", p)
	case p.loginForm:
		setFlash(c, p)
		return c.Redirect(http.StatusSeeOther, view.PageLogin.Path())
	case p.reload:
		setFlash(c, p)
		return c.Redirect(http.StatusSeeOther, p.ReturnPath)
	}
	return c.Render(status, tmpl, p)
}

// back answers a form post by sending the shopper to where the form was submitted from.
func (h *Handler) back(c echo.Context, p *Page) error {
	p.Reload()
	return h.finish(c, p, http.StatusOK, string(p.Name))
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid item id")
	}
	return id, nil
}

func formInt(c echo.Context, name string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.FormValue(name)))
	if err != nil {
		return def
	}
	return n
}

func (h *Handler) Home(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.page(c, view.PageHome)
	p.ReturnPath = c.Request().URL.RequestURI()

	f := models.ProductFilter{Search: c.QueryParam("search"), Category: c.QueryParam("category")}
	_ = h.Set.Catalog.LoadCategories(ctx, p, strings.TrimSpace(f.Category))
	_ = h.Set.Catalog.ApplyFilters(ctx, p, f)
	return h.finish(c, p, http.StatusOK, string(view.PageHome))
}

func (h *Handler) ClearFilters(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.page(c, view.PageHome)

	_ = h.Set.Catalog.LoadCategories(ctx, p, "")
	_ = h.Set.Catalog.ClearFilters(ctx, p)
	return h.finish(c, p, http.StatusOK, string(view.PageHome))
}

func (h *Handler) Cart(c echo.Context) error {
	p := h.page(c, view.PageCart)
	_ = h.Set.Cart.LoadCart(c.Request().Context(), p)
	return h.finish(c, p, http.StatusOK, string(view.PageCart))
}

func (h *Handler) AddToCart(c echo.Context) error {
	p := h.action(c, view.PageHome)
	productID := formInt(c, "product_id", 0)
	if productID < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	_ = h.Set.Cart.AddToCart(c.Request().Context(), p, productID, formInt(c, "quantity", 1))
	return h.back(c, p)
}

func (h *Handler) UpdateQuantity(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(c.FormValue("quantity")))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}
	p := h.action(c, view.PageCart)

	_ = h.Set.Cart.UpdateQuantity(c.Request().Context(), p, id, qty)
	return h.back(c, p)
}

func (h *Handler) RemoveItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p := h.action(c, view.PageCart)

	_ = h.Set.Cart.RemoveItem(c.Request().Context(), p, id)
	return h.back(c, p)
}

// ClearCart asks for confirmation first; the prompt posts back with confirm=yes.
func (h *Handler) ClearCart(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.action(c, view.PageCart)
	p.confirmed = c.FormValue("confirm") == "yes"

	err := h.Set.Cart.ClearCart(ctx, p)
	if errors.Is(err, controller.ErrNotConfirmed) {
		h.Set.Auth.CheckAuth(ctx, p)
		_ = h.Set.Cart.LoadCart(ctx, p)
		h.Set.Cart.UpdateBadge(ctx, p)
		return h.finish(c, p, http.StatusOK, string(view.PageCart))
	}
	return h.back(c, p)
}

func (h *Handler) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.page(c, view.PageCheckout)

	if err := h.Set.Checkout.LoadCheckoutData(ctx, p); err == nil {
		h.Set.Checkout.LoadProfile(ctx, p)
	}
	return h.finish(c, p, http.StatusOK, string(view.PageCheckout))
}

func (h *Handler) PlaceOrder(c echo.Context) error {
	ctx := c.Request().Context()
	p := h.action(c, view.PageCheckout)
	form := view.CheckoutForm{
		FullName:        c.FormValue("full_name"),
		Phone:           c.FormValue("phone"),
		ShippingAddress: c.FormValue("shipping_address"),
		PaymentMethod:   c.FormValue("payment_method"),
	}

	order, err := h.Set.Checkout.PlaceOrder(ctx, p, form.ShippingAddress, form.PaymentMethod)
	if err == nil {
		logging.FromContext(ctx).Info("order placed", "order_id", order.ID)
		h.Set.Auth.CheckAuth(ctx, p)
		return h.finish(c, p, http.StatusOK, string(view.PageCheckout))
	}
	if p.loginPrompt {
		return h.finish(c, p, http.StatusOK, string(view.PageCheckout))
	}

	// Re-render with what the shopper typed.
	h.Set.Auth.CheckAuth(ctx, p)
	h.Set.Cart.UpdateBadge(ctx, p)
	_ = h.Set.Checkout.LoadCheckoutData(ctx, p)
	p.PrefillCheckout(form)

	status := http.StatusOK
	if errors.Is(err, controller.ErrValidation) {
		status = http.StatusUnprocessableEntity
	}
	return h.finish(c, p, status, string(view.PageCheckout))
}

func (h *Handler) Orders(c echo.Context) error {
	p := h.page(c, view.PageOrders)
	_ = h.Set.Orders.LoadOrders(c.Request().Context(), p)
	return h.finish(c, p, http.StatusOK, string(view.PageOrders))
}

func (h *Handler) LoginForm(c echo.Context) error {
	p := h.page(c, view.PageLogin)
	p.ReturnPath = safeReturn(c.QueryParam("return"), view.PageHome.Path())
	p.RegisterTab = c.QueryParam("tab") == "register"
	return h.finish(c, p, http.StatusOK, string(view.PageLogin))
}

func (h *Handler) Login(c echo.Context) error {
	p := h.action(c, view.PageLogin)
	p.ReturnPath = safeReturn(c.FormValue("return"), view.PageHome.Path())

	err := h.Set.Auth.Login(c.Request().Context(), p, strings.TrimSpace(c.FormValue("username")), c.FormValue("password"))
	if err != nil {
		setFlash(c, p)
		return c.Redirect(http.StatusSeeOther, loginURL(p.ReturnPath))
	}
	return h.finish(c, p, http.StatusOK, string(view.PageLogin))
}

func (h *Handler) Register(c echo.Context) error {
	p := h.action(c, view.PageLogin)

	err := h.Set.Auth.Register(c.Request().Context(), p,
		strings.TrimSpace(c.FormValue("username")),
		strings.TrimSpace(c.FormValue("email")),
		c.FormValue("password"),
		c.FormValue("full_name"),
	)
	if err != nil {
		setFlash(c, p)
		return c.Redirect(http.StatusSeeOther, view.PageLogin.Path()+"?tab=register")
	}
	return h.finish(c, p, http.StatusOK, string(view.PageLogin))
}

func (h *Handler) Logout(c echo.Context) error {
	p := h.action(c, view.PageHome)
	_ = h.Set.Auth.Logout(c.Request().Context(), p)
	return h.finish(c, p, http.StatusOK, string(view.PageHome))
}

func (h *Handler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready fails while the session store cannot be read.
func (h *Handler) Ready(c echo.Context) error {
	if _, _, err := h.Session.Token(c.Request().Context()); err != nil {
		logging.FromContext(c.Request().Context()).Error("readiness_error", "status", http.StatusServiceUnavailable, "error", err)
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
