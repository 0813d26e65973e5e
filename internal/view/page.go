package view

import "time"

// Page is a navigable destination of the storefront.
type Page string

const (
	PageHome     Page = "home"
	PageCart     Page = "cart"
	PageCheckout Page = "checkout"
	PageOrders   Page = "orders"
	PageLogin    Page = "login"
)

func (p Page) Path() string {
	switch p {
	case PageCart:
		return "/cart"
	case PageCheckout:
		return "/checkout"
	case PageOrders:
		return "/orders"
	case PageLogin:
		return "/login"
	default:
		return "/"
	}
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// NotificationTTL is how long a notification stays on screen.
const NotificationTTL = 5 * time.Second

type Notification struct {
	Level        Level
	Message      string
	DismissAfter time.Duration
}

func Success(msg string) Notification {
	return Notification{Level: LevelSuccess, Message: msg, DismissAfter: NotificationTTL}
}

func Error(msg string) Notification {
	return Notification{Level: LevelError, Message: msg, DismissAfter: NotificationTTL}
}

func Info(msg string) Notification {
	return Notification{Level: LevelInfo, Message: msg, DismissAfter: NotificationTTL}
}

// CSSClass maps the level to the alert style used by the templates.
func (n Notification) CSSClass() string {
	switch n.Level {
	case LevelSuccess:
		return "alert-success"
	case LevelError:
		return "alert-error"
	default:
		return "alert-info"
	}
}

type AuthBadge struct {
	Authenticated bool
	Label         string
}

func RenderAuth(username string, authenticated bool) AuthBadge {
	if authenticated && username != "" {
		return AuthBadge{Authenticated: true, Label: "Hi, " + username}
	}
	return AuthBadge{Label: "Login"}
}
