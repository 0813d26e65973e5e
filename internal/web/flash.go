package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/internal/view"
)

const flashCookie = "storefront_flash"

type flash struct {
	Level   view.Level `json:"l"`
	Message string     `json:"m"`
}

// The UI is served on localhost over plain http, so the cookie is not Secure.
func createCookie(name, value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}

// setFlash carries the latest notification across a redirect.
func setFlash(c echo.Context, p *Page) {
	n, ok := p.lastNote()
	if !ok {
		return
	}
	raw, err := json.Marshal(flash{Level: n.Level, Message: n.Message})
	if err != nil {
		return
	}
	c.SetCookie(createCookie(flashCookie, base64.RawURLEncoding.EncodeToString(raw), 60))
}

func popFlash(c echo.Context, p *Page) {
	ck, err := c.Cookie(flashCookie)
	if err != nil || ck.Value == "" {
		return
	}
	c.SetCookie(createCookie(flashCookie, "", -1))

	raw, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return
	}
	var f flash
	if err := json.Unmarshal(raw, &f); err != nil || f.Message == "" {
		return
	}
	switch f.Level {
	case view.LevelSuccess:
		p.Notify(view.Success(f.Message))
	case view.LevelError:
		p.Notify(view.Error(f.Message))
	default:
		p.Notify(view.Info(f.Message))
	}
}
