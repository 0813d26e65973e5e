package web

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/storefront/internal/controller"
	"github.com/Skotchmaster/storefront/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
	"github.com/Skotchmaster/storefront/internal/session"
)

func Register(e *echo.Echo, h *Handler) {
	e.GET("/health/live", h.Live)
	e.GET("/health/ready", h.Ready)

	e.GET("/", h.Home)
	e.POST("/filters/clear", h.ClearFilters)

	e.GET("/cart", h.Cart)
	e.POST("/cart/add", h.AddToCart)
	e.POST("/cart/items/:id/quantity", h.UpdateQuantity)
	e.POST("/cart/items/:id/remove", h.RemoveItem)
	e.POST("/cart/clear", h.ClearCart)

	e.GET("/checkout", h.Checkout)
	e.POST("/checkout", h.PlaceOrder)

	e.GET("/orders", h.Orders)

	e.GET("/login", h.LoginForm)
	e.POST("/login", h.Login)
	e.POST("/register", h.Register)
	e.POST("/logout", h.Logout)
}

// New builds the storefront UI server.
func New(set *controller.Set, sess *session.Session, logger *slog.Logger) (*echo.Echo, error) {
	renderer, err := NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(csrf.Middleware(csrf.Config{SkipPaths: []string{"/health/live", "/health/ready"}}))

	e.StaticFS("/static", echo.MustSubFS(assets, "static"))
	Register(e, &Handler{Set: set, Session: sess})
	return e, nil
}
