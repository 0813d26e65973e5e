package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/apiclient"
	"github.com/Skotchmaster/storefront/internal/controller"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/mockapi"
	"github.com/Skotchmaster/storefront/internal/session"
	"github.com/Skotchmaster/storefront/internal/view"
)

const idShoes = 4

type webEnv struct {
	e       *echo.Echo
	sess    *session.Session
	client  *apiclient.Client
	cookies map[string]*http.Cookie
}

func newWebEnv(t *testing.T) *webEnv {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	svc := mockapi.NewService(gdb, []byte("test-secret"))
	require.NoError(t, svc.Repo.Migrate(ctx))
	require.NoError(t, mockapi.Seed(ctx, svc.Repo))

	api := httptest.NewServer(mockapi.NewServer(svc, logging.Discard()))
	t.Cleanup(api.Close)

	sess := session.New(session.NewMemoryStore(), api.URL)
	client := apiclient.NewClient(api.URL, sess, api.Client(), nil)
	set := controller.NewSet(controller.Deps{API: client, Session: sess})

	e, err := New(set, sess, logging.Discard())
	require.NoError(t, err)

	w := &webEnv{e: e, sess: sess, client: client, cookies: map[string]*http.Cookie{}}
	require.Equal(t, http.StatusOK, w.get(t, "/login").Code)
	require.Contains(t, w.cookies, "storefront_csrf")
	return w
}

func (w *webEnv) do(t *testing.T, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if form != nil {
		if c, ok := w.cookies["storefront_csrf"]; ok {
			form.Set("csrf_token", c.Value)
		}
	}
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.Header.Set("Origin", "http://example.com")
	}
	for _, c := range w.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	w.e.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(w.cookies, c.Name)
			continue
		}
		w.cookies[c.Name] = c
	}
	return rec
}

func (w *webEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return w.do(t, http.MethodGet, target, nil)
}

func (w *webEnv) post(t *testing.T, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	if form == nil {
		form = url.Values{}
	}
	return w.do(t, http.MethodPost, target, form)
}

func requireSeeOther(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
	assert.Equal(t, location, rec.Header().Get(echo.HeaderLocation))
}

func (w *webEnv) signIn(t *testing.T, username string) {
	t.Helper()
	requireSeeOther(t, w.post(t, "/register", url.Values{
		"username":  {username},
		"email":     {username + "@example.com"},
		"password":  {"secret1"},
		"full_name": {"Test " + username},
	}), "/login")
	assert.Contains(t, w.get(t, "/login").Body.String(), "Registration successful! Please login.")

	requireSeeOther(t, w.post(t, "/login", url.Values{
		"username": {username},
		"password": {"secret1"},
		"return":   {"/"},
	}), "/")
}

func badge(n int) string {
	return `<span id="cartCount" class="badge">` + strconv.Itoa(n) + `</span>`
}

func TestCatalogAnonymous(t *testing.T) {
	w := newWebEnv(t)

	rec := w.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Running Shoes")
	assert.Contains(t, body, "Out of Stock")
	assert.Contains(t, body, "5 in stock")
	assert.Contains(t, body, "$1299.99")
	assert.Contains(t, body, `<option value="Electronics">Electronics</option>`)
	assert.Contains(t, body, badge(0))
	assert.Contains(t, body, `<a href="/login">Login</a>`)
}

func TestCatalogFilters(t *testing.T) {
	w := newWebEnv(t)

	body := w.get(t, "/?search=+shoe+").Body.String()
	assert.Contains(t, body, "Running Shoes")
	assert.NotContains(t, body, "Laptop")
	assert.Contains(t, body, `value="shoe"`)

	body = w.get(t, "/?category=Home").Body.String()
	assert.Contains(t, body, "Desk Lamp")
	assert.NotContains(t, body, "Running Shoes")
	assert.Contains(t, body, `<option value="Home" selected>Home</option>`)

	body = w.get(t, "/?search=nothing-matches").Body.String()
	assert.Contains(t, body, "No products found")

	rec := w.post(t, "/filters/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Running Shoes")
	assert.Contains(t, rec.Body.String(), "Desk Lamp")
}

func TestCartRequiresLogin(t *testing.T) {
	w := newWebEnv(t)

	requireSeeOther(t, w.post(t, "/cart/add", url.Values{"product_id": {"4"}, "return": {"/?search=shoe"}}),
		"/login?return=%2F%3Fsearch%3Dshoe")
	assert.Contains(t, w.get(t, "/login").Body.String(), "Please login to add items to cart")

	requireSeeOther(t, w.get(t, "/cart"), "/")
	requireSeeOther(t, w.get(t, "/checkout"), "/")
	requireSeeOther(t, w.get(t, "/orders"), "/")
	requireSeeOther(t, w.post(t, "/cart/items/1/remove", nil), "/login?return=%2Fcart")
	requireSeeOther(t, w.post(t, "/cart/clear", url.Values{"confirm": {"yes"}}), "/login?return=%2Fcart")
}

func TestLoginFailure(t *testing.T) {
	w := newWebEnv(t)

	requireSeeOther(t, w.post(t, "/login", url.Values{"username": {"ghost"}, "password": {"nope"}, "return": {"/cart"}}),
		"/login?return=%2Fcart")
	body := w.get(t, "/login?return=/cart").Body.String()
	assert.Contains(t, body, "Invalid username or password")
	assert.Contains(t, body, `name="return" value="/cart"`)

	requireSeeOther(t, w.post(t, "/login", url.Values{"username": {""}, "password": {""}}), "/login")
	assert.Contains(t, w.get(t, "/login").Body.String(), "Please enter username and password")

	_, ok, err := w.sess.Token(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegisterValidation(t *testing.T) {
	w := newWebEnv(t)

	requireSeeOther(t, w.post(t, "/register", url.Values{"username": {"bob"}, "email": {"bob@example.com"}}),
		"/login?tab=register")
	body := w.get(t, "/login?tab=register").Body.String()
	assert.Contains(t, body, "Please fill in all required fields")
	assert.Contains(t, body, `id="registerForm"`)
}

func TestShoppingFlow(t *testing.T) {
	w := newWebEnv(t)
	ctx := context.Background()
	w.signIn(t, "alice")

	body := w.get(t, "/").Body.String()
	assert.Contains(t, body, "Login successful!")
	assert.Contains(t, body, "Hi, alice")

	requireSeeOther(t, w.post(t, "/cart/add", url.Values{"product_id": {"4"}, "quantity": {"1"}, "return": {"/"}}), "/")
	body = w.get(t, "/").Body.String()
	assert.Contains(t, body, "Item added to cart!")
	assert.Contains(t, body, badge(1))

	cart, err := w.client.Cart(ctx)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	itemID := strconv.Itoa(cart.Items[0].ID)

	requireSeeOther(t, w.post(t, "/cart/items/"+itemID+"/quantity", url.Values{"quantity": {"3"}}), "/cart")
	body = w.get(t, "/cart").Body.String()
	assert.Contains(t, body, "Running Shoes")
	assert.Contains(t, body, "$79.99")
	assert.Contains(t, body, `<span id="cartTotal">$239.97</span>`)
	assert.Contains(t, body, badge(3))

	body = w.get(t, "/checkout").Body.String()
	assert.Contains(t, body, "Running Shoes x3")
	assert.Contains(t, body, `value="Test alice"`)
	assert.Contains(t, body, `<option value="cash_on_delivery" selected>Cash on Delivery</option>`)

	rec := w.post(t, "/checkout", url.Values{"shipping_address": {"   "}, "full_name": {"Alice A"}})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter shipping address")
	assert.Contains(t, rec.Body.String(), `value="Alice A"`)

	rec = w.post(t, "/checkout", url.Values{"shipping_address": {"1 Main Street, Springfield"}, "payment_method": {"paypal"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body = rec.Body.String()
	assert.Contains(t, body, "Order placed successfully!")
	assert.Contains(t, body, `content="2;url=/orders"`)
	assert.Contains(t, body, badge(0))

	body = w.get(t, "/orders").Body.String()
	assert.Contains(t, body, "Order #1")
	assert.Contains(t, body, "PENDING")
	assert.Contains(t, body, "Running Shoes x3 - $79.99 each")
	assert.Contains(t, body, "paypal")
	assert.Contains(t, body, "$239.97")

	rec = w.get(t, "/checkout")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your cart is empty")
	assert.Contains(t, rec.Body.String(), `content="2;url=/"`)
}

func TestQuantityZeroRemoves(t *testing.T) {
	w := newWebEnv(t)
	w.signIn(t, "carol")

	requireSeeOther(t, w.post(t, "/cart/add", url.Values{"product_id": {"4"}}), "/")
	cart, err := w.client.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	requireSeeOther(t, w.post(t, "/cart/items/"+strconv.Itoa(cart.Items[0].ID)+"/quantity", url.Values{"quantity": {"0"}}), "/cart")
	body := w.get(t, "/cart").Body.String()
	assert.Contains(t, body, "Item removed from cart")
	assert.Contains(t, body, "Your cart is empty")

	assert.Equal(t, http.StatusBadRequest, w.post(t, "/cart/items/abc/remove", nil).Code)
}

func TestQuantityMalformedKeepsItem(t *testing.T) {
	w := newWebEnv(t)
	w.signIn(t, "frank")

	requireSeeOther(t, w.post(t, "/cart/add", url.Values{"product_id": {"4"}, "quantity": {"2"}}), "/")
	cart, err := w.client.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	target := "/cart/items/" + strconv.Itoa(cart.Items[0].ID) + "/quantity"

	assert.Equal(t, http.StatusBadRequest, w.post(t, target, nil).Code)
	assert.Equal(t, http.StatusBadRequest, w.post(t, target, url.Values{"quantity": {"two"}}).Code)

	cart, err = w.client.Cart(context.Background())
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestClearCartAsksFirst(t *testing.T) {
	w := newWebEnv(t)
	w.signIn(t, "dave")
	requireSeeOther(t, w.post(t, "/cart/add", url.Values{"product_id": {strconv.Itoa(idShoes)}, "quantity": {"2"}}), "/")

	rec := w.post(t, "/cart/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Are you sure you want to clear your cart?")
	assert.Contains(t, rec.Body.String(), `name="confirm" value="yes"`)
	assert.Contains(t, rec.Body.String(), "Running Shoes")

	requireSeeOther(t, w.post(t, "/cart/clear", url.Values{"confirm": {"yes"}}), "/cart")
	body := w.get(t, "/cart").Body.String()
	assert.Contains(t, body, "Cart cleared")
	assert.Contains(t, body, "Your cart is empty")
}

func TestLogout(t *testing.T) {
	w := newWebEnv(t)
	w.signIn(t, "erin")

	rec := w.post(t, "/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logged out successfully")
	assert.Contains(t, rec.Body.String(), `content="1;url=/"`)

	_, ok, err := w.sess.Token(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, w.get(t, "/").Body.String(), `<a href="/login">Login</a>`)
}

func TestHealth(t *testing.T) {
	w := newWebEnv(t)
	assert.Equal(t, http.StatusOK, w.get(t, "/health/live").Code)
	assert.Equal(t, http.StatusOK, w.get(t, "/health/ready").Code)

	rec := w.get(t, "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".product-grid")
}

func TestFormsRequireCSRFToken(t *testing.T) {
	w := newWebEnv(t)
	assert.Contains(t, w.get(t, "/").Body.String(), `name="csrf_token" value="`+w.cookies["storefront_csrf"].Value+`"`)

	delete(w.cookies, "storefront_csrf")
	rec := w.post(t, "/cart/add", url.Values{"product_id": {"4"}})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPageSetLoadingLeavesPageUnchanged(t *testing.T) {
	p := NewPage(view.PageHome)
	before := *p
	p.SetLoading(true)
	p.SetLoading(false)
	assert.Equal(t, before, *p)
}

func TestSafeReturn(t *testing.T) {
	assert.Equal(t, "/cart", safeReturn("/cart", "/"))
	assert.Equal(t, "/?search=x", safeReturn("/?search=x", "/"))
	assert.Equal(t, "/", safeReturn("https://evil.example", "/"))
	assert.Equal(t, "/", safeReturn("//evil.example", "/"))
	assert.Equal(t, "/", safeReturn("", "/"))
}

func TestRedirectRefresh(t *testing.T) {
	assert.Equal(t, "2;url=/orders", Redirect{Path: "/orders", After: 2 * time.Second}.Refresh())
	assert.Equal(t, "2;url=/", Redirect{Path: "/", After: 1500 * time.Millisecond}.Refresh())
	assert.Equal(t, "0;url=/", Redirect{Path: "/"}.Refresh())
	assert.Equal(t, `<meta http-equiv="refresh" content="2;url=/orders">`, string(Redirect{Path: "/orders", After: 2 * time.Second}.Meta()))
}
