package view

import "github.com/Skotchmaster/storefront/internal/models"

// CheckoutForm carries profile values used to prefill the checkout form.
type CheckoutForm struct {
	FullName        string
	Phone           string
	ShippingAddress string
	PaymentMethod   string
}

const DefaultPaymentMethod = "cash_on_delivery"

func RenderCheckoutForm(u *models.UserProfile) CheckoutForm {
	f := CheckoutForm{PaymentMethod: DefaultPaymentMethod}
	if u == nil {
		return f
	}
	f.FullName = orString(u.FullName, "")
	f.Phone = orString(u.Phone, "")
	f.ShippingAddress = orString(u.Address, "")
	return f
}

type PaymentOption struct {
	Value    string
	Label    string
	Selected bool
}

var paymentMethods = []PaymentOption{
	{Value: "cash_on_delivery", Label: "Cash on Delivery"},
	{Value: "credit_card", Label: "Credit Card"},
	{Value: "paypal", Label: "PayPal"},
}

// PaymentOptions lists the selectable methods with the form's current choice marked.
func (f CheckoutForm) PaymentOptions() []PaymentOption {
	selected := f.PaymentMethod
	if selected == "" {
		selected = DefaultPaymentMethod
	}
	out := make([]PaymentOption, len(paymentMethods))
	for i, m := range paymentMethods {
		m.Selected = m.Value == selected
		out[i] = m
	}
	return out
}
