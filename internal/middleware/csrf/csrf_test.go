package csrf

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.Use(Middleware(Config{SkipPaths: []string{"/health/live"}}))
	ok := func(c echo.Context) error { return c.String(http.StatusOK, Token(c)) }
	e.GET("/", ok)
	e.POST("/submit", ok)
	e.POST("/health/live", ok)
	return e
}

func serve(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func issue(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	rec := serve(e, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	for _, c := range rec.Result().Cookies() {
		if c.Name == "storefront_csrf" {
			assert.Equal(t, c.Value, rec.Body.String())
			assert.Equal(t, c.Value, rec.Header().Get("X-CSRF-Token"))
			return c
		}
	}
	t.Fatal("csrf cookie not set")
	return nil
}

func formPost(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(url.Values{"csrf_token": {token}}.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	req.Header.Set("Origin", "http://example.com")
	return req
}

func TestGetIssuesToken(t *testing.T) {
	e := newEcho()
	c := issue(t, e)
	assert.NotEmpty(t, c.Value)
	assert.True(t, c.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	rec := serve(e, req)
	assert.Equal(t, c.Value, rec.Body.String(), "existing token is kept")
}

func TestPostWithFormToken(t *testing.T) {
	e := newEcho()
	c := issue(t, e)

	req := formPost(c.Value)
	req.AddCookie(c)
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

func TestPostWithHeaderToken(t *testing.T) {
	e := newEcho()
	c := issue(t, e)

	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("X-CSRF-Token", c.Value)
	req.Header.Set("Referer", "http://example.com/cart")
	req.AddCookie(c)
	assert.Equal(t, http.StatusOK, serve(e, req).Code)
}

func TestPostRejected(t *testing.T) {
	e := newEcho()
	c := issue(t, e)

	req := formPost("wrong")
	req.AddCookie(c)
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)

	req = formPost(c.Value)
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code, "no cookie")

	req = formPost(c.Value)
	req.Header.Set("Origin", "http://evil.example")
	req.AddCookie(c)
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)

	req = formPost(c.Value)
	req.Header.Del("Origin")
	req.AddCookie(c)
	assert.Equal(t, http.StatusForbidden, serve(e, req).Code)
}

func TestSkipPaths(t *testing.T) {
	e := newEcho()
	rec := serve(e, httptest.NewRequest(http.MethodPost, "/health/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
