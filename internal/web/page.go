package web

import (
	"html/template"
	"strconv"
	"time"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/view"
)

type Redirect struct {
	Path  string
	After time.Duration
}

// Refresh is the meta refresh value, e.g. "2;url=/orders".
func (r Redirect) Refresh() string {
	secs := int((r.After + time.Second - 1) / time.Second)
	return strconv.Itoa(secs) + ";url=" + r.Path
}

func (r Redirect) Meta() template.HTML {
	return template.HTML(`<meta http-equiv="refresh" content="` + template.HTMLEscapeString(r.Refresh()) + `">`)
}

// Page collects what the controllers want shown during one request.
// It is rendered once the handler is done with it.
type Page struct {
	Name       view.Page
	Title      string
	ReturnPath string
	CSRF       string

	Notes     []view.Notification
	Auth      view.AuthBadge
	CartCount int

	Filter     models.ProductFilter
	Categories []view.CategoryOption
	Products   *view.ProductGrid
	Cart       *view.CartView
	Checkout   *view.CheckoutSummary
	Form       view.CheckoutForm
	Orders     *view.OrdersList

	ConfirmPrompt string
	RegisterTab   bool
	Redirect      *Redirect

	loginPrompt bool
	loginForm   bool
	reload      bool
	confirmed   bool
}

var titles = map[view.Page]string{
	view.PageHome:     "Products",
	view.PageCart:     "Shopping Cart",
	view.PageCheckout: "Checkout",
	view.PageOrders:   "My Orders",
	view.PageLogin:    "Login",
}

func NewPage(name view.Page) *Page {
	return &Page{
		Name:       name,
		Title:      titles[name],
		ReturnPath: name.Path(),
		Auth:       view.RenderAuth("", false),
		Form:       view.RenderCheckoutForm(nil),
	}
}

func (p *Page) lastNote() (view.Notification, bool) {
	if len(p.Notes) == 0 {
		return view.Notification{}, false
	}
	return p.Notes[len(p.Notes)-1], true
}

func (p *Page) Notify(n view.Notification) { p.Notes = append(p.Notes, n) }

// SetLoading is a no-op: a page is rendered only after every call behind it returned,
// so there is no in-between state to show.
func (p *Page) SetLoading(bool) {}

func (p *Page) Navigate(to view.Page, after time.Duration) {
	p.Redirect = &Redirect{Path: to.Path(), After: after}
}

func (p *Page) Reload() { p.reload = true }

func (p *Page) PromptLogin() { p.loginPrompt = true }

func (p *Page) ShowLoginForm() {
	p.loginForm = true
	p.RegisterTab = false
}

// Confirm answers from the submitted form; an unconfirmed action leaves the prompt on the page.
func (p *Page) Confirm(prompt string) bool {
	if !p.confirmed {
		p.ConfirmPrompt = prompt
	}
	return p.confirmed
}

func (p *Page) SetAuth(b view.AuthBadge) { p.Auth = b }

func (p *Page) SetCartCount(n int) { p.CartCount = n }

func (p *Page) SetFilter(f models.ProductFilter) { p.Filter = f }

func (p *Page) ShowCategories(opts []view.CategoryOption) { p.Categories = opts }

func (p *Page) ShowProducts(g view.ProductGrid) { p.Products = &g }

func (p *Page) ShowCart(c view.CartView) { p.Cart = &c }

func (p *Page) ShowCheckout(s view.CheckoutSummary) { p.Checkout = &s }

func (p *Page) PrefillCheckout(f view.CheckoutForm) { p.Form = f }

func (p *Page) ShowOrders(o view.OrdersList) { p.Orders = &o }
