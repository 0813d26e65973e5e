package mockapi

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	loggingmw "github.com/Skotchmaster/storefront/internal/middleware/logging"
)

type Auth struct {
	Svc *Service
}

// RequireAuth resolves the bearer token into the user id stored under "user_id".
func (a *Auth) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return writeError(c, unauthorized("Missing or invalid authorization header"))
		}

		id, err := a.Svc.Authenticate(token)
		if err != nil {
			var apiErr *Error
			if errors.As(err, &apiErr) {
				return writeError(c, apiErr)
			}
			return err
		}

		c.Set(ctxUserID, id)
		return next(c)
	}
}

type Deps struct {
	Handler *Handler
	Auth    *Auth
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	users := api.Group("/users")
	users.POST("/register", d.Handler.Register)
	users.POST("/login", d.Handler.Login)
	users.GET("/me", d.Handler.Me, d.Auth.RequireAuth)

	products := api.Group("/products")
	products.GET("/", d.Handler.Products)
	products.GET("/categories", d.Handler.Categories)

	cart := api.Group("/cart", d.Auth.RequireAuth)
	cart.GET("/", d.Handler.Cart)
	cart.POST("/add", d.Handler.AddToCart)
	cart.PUT("/update/:id", d.Handler.UpdateCartItem)
	cart.DELETE("/remove/:id", d.Handler.RemoveCartItem)
	cart.DELETE("/clear", d.Handler.ClearCart)

	orders := api.Group("/orders", d.Auth.RequireAuth)
	orders.POST("/checkout", d.Handler.Checkout)
	orders.GET("/", d.Handler.Orders)
}

// HTTPErrorHandler renders echo errors with the same body shape as handler failures.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	var writeErr error
	switch {
	case c.Request().Method == http.MethodHead:
		writeErr = c.NoContent(code)
	case code >= http.StatusInternalServerError:
		writeErr = c.JSON(code, map[string]string{"error": msg})
	default:
		writeErr = c.JSON(code, map[string]string{"detail": msg})
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

// NewServer wires the mock API on a fresh echo instance.
func NewServer(svc *Service, logger *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = HTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	Register(e, &Deps{Handler: &Handler{Svc: svc}, Auth: &Auth{Svc: svc}})
	return e
}
