package mockapi

import (
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
)

func init() {
	// money goes over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}

type addToCartRequest struct {
	ProductID int  `json:"product_id"`
	Quantity  *int `json:"quantity"`
}

func toUser(u *User) models.UserProfile {
	created := u.CreatedAt
	return models.UserProfile{
		ID:        int(u.ID),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Phone:     u.Phone,
		Address:   u.Address,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: &created,
	}
}

func toProduct(p Product) models.Product {
	return models.Product{
		ID:            int(p.ID),
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageURL,
	}
}

func toProducts(ps []Product) []models.Product {
	out := make([]models.Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProduct(p))
	}
	return out
}

func toCartItem(it CartItem) models.CartItem {
	out := models.CartItem{
		ID:        int(it.ID),
		ProductID: int(it.ProductID),
		Quantity:  it.Quantity,
	}
	if it.Product.ID != 0 {
		p := toProduct(it.Product)
		out.Product = &p
	}
	return out
}

// toCart sums totals over lines whose product still exists.
func toCart(items []CartItem) models.Cart {
	cart := models.Cart{Items: make([]models.CartItem, 0, len(items)), TotalPrice: decimal.Zero}
	for _, it := range items {
		cart.Items = append(cart.Items, toCartItem(it))
		if it.Product.ID == 0 {
			continue
		}
		cart.TotalItems += it.Quantity
		cart.TotalPrice = cart.TotalPrice.Add(lineTotal(it.Product.Price, it.Quantity))
	}
	cart.TotalPrice = cart.TotalPrice.Round(2)
	return cart
}

func toOrder(o Order) models.Order {
	created := o.CreatedAt
	out := models.Order{
		ID:              int(o.ID),
		Items:           make([]models.OrderItem, 0, len(o.Items)),
		Status:          models.OrderStatus(o.Status),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		TotalAmount:     o.TotalAmount,
		CreatedAt:       &created,
	}
	for _, it := range o.Items {
		item := models.OrderItem{
			ID:              int(it.ID),
			ProductID:       int(it.ProductID),
			Quantity:        it.Quantity,
			PriceAtPurchase: it.PriceAtPurchase,
		}
		if it.Product.ID != 0 {
			p := toProduct(it.Product)
			item.Product = &p
		}
		out.Items = append(out.Items, item)
	}
	return out
}

func toOrders(orders []Order) []models.Order {
	out := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}
