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

type AuthController struct {
	Deps
}

func (c *AuthController) Login(ctx context.Context, ui UI, username, password string) error {
	l := logging.FromContext(ctx).With("controller", "auth.login", "username", username)

	if username == "" || password == "" {
		ui.Notify(view.Error("Please enter username and password"))
		return fmt.Errorf("username and password required: %w", ErrValidation)
	}

	tok, err := c.API.Login(ctx, models.Credentials{Username: username, Password: password})
	if err != nil {
		l.Warn("login_error", "error", err)
		ui.Notify(view.Error(errMessage(err, "Login failed")))
		return err
	}

	if err := c.Session.SetToken(ctx, tok.AccessToken); err != nil {
		l.Error("login_error", "reason", "cannot store token", "error", err)
		ui.Notify(view.Error("Login failed"))
		return err
	}

	user, err := c.API.Me(ctx)
	if err != nil {
		l.Warn("login_error", "reason", "cannot fetch profile", "error", err)
		// keep the session consistent: no profile, no token
		_ = c.Session.ClearToken(ctx)
		ui.Notify(view.Error(errMessage(err, "Login failed")))
		return err
	}
	if err := c.Session.SetUser(ctx, *user); err != nil {
		l.Error("login_error", "reason", "cannot cache profile", "error", err)
		_ = c.Session.ClearToken(ctx)
		ui.Notify(view.Error("Login failed"))
		return err
	}

	ui.Notify(view.Success("Login successful!"))
	ui.SetAuth(view.RenderAuth(user.Username, true))
	ui.Reload()
	c.publish(ctx, events.Event{Type: events.TypeLoggedIn, Username: user.Username})

	l.Info("user logged in")
	return nil
}

func (c *AuthController) Register(ctx context.Context, ui UI, username, email, password, fullName string) error {
	l := logging.FromContext(ctx).With("controller", "auth.register", "username", username)

	if username == "" || email == "" || password == "" {
		ui.Notify(view.Error("Please fill in all required fields"))
		return fmt.Errorf("username, email and password required: %w", ErrValidation)
	}

	reg := models.Registration{Username: username, Email: email, Password: password}
	if fn := strings.TrimSpace(fullName); fn != "" {
		reg.FullName = &fn
	}

	if err := c.API.Register(ctx, reg); err != nil {
		l.Warn("register_error", "error", err)
		ui.Notify(view.Error(errMessage(err, "Registration failed")))
		return err
	}

	ui.Notify(view.Success("Registration successful! Please login."))
	ui.ShowLoginForm()
	c.publish(ctx, events.Event{Type: events.TypeRegistered, Username: username})

	l.Info("user registered")
	return nil
}

func (c *AuthController) Logout(ctx context.Context, ui UI) error {
	l := logging.FromContext(ctx).With("controller", "auth.logout")

	var username string
	if u, err := c.Session.User(ctx); err == nil && u != nil {
		username = u.Username
	}

	if err := c.Session.Clear(ctx); err != nil {
		l.Error("logout_error", "error", err)
		ui.Notify(view.Error("Logout failed"))
		return err
	}

	ui.SetAuth(view.RenderAuth("", false))
	ui.SetCartCount(0)
	ui.Notify(view.Success("Logged out successfully"))
	ui.Navigate(view.PageHome, LogoutRedirectDelay)
	c.publish(ctx, events.Event{Type: events.TypeLoggedOut, Username: username})
	return nil
}

// CheckAuth renders the header badge from the stored session.
func (c *AuthController) CheckAuth(ctx context.Context, ui UI) {
	ok, err := c.authenticated(ctx)
	if err != nil || !ok {
		ui.SetAuth(view.RenderAuth("", false))
		return
	}
	u, err := c.Session.User(ctx)
	if err != nil || u == nil {
		ui.SetAuth(view.RenderAuth("", false))
		return
	}
	ui.SetAuth(view.RenderAuth(u.Username, true))
}
