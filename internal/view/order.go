package view

import (
	"strconv"
	"strings"

	"github.com/Skotchmaster/storefront/internal/models"
)

var statusColors = map[models.OrderStatus]string{
	models.StatusPending:    "#f59e0b",
	models.StatusConfirmed:  "#3b82f6",
	models.StatusProcessing: "#8b5cf6",
	models.StatusShipped:    "#06b6d4",
	models.StatusDelivered:  "#10b981",
	models.StatusCancelled:  "#ef4444",
}

const UnknownStatusColor = "#6b7280"

func StatusColor(s models.OrderStatus) string {
	if !s.Known() {
		return UnknownStatusColor
	}
	return statusColors[s]
}

type OrderCard struct {
	ID              int
	Title           string
	Date            string
	Time            string
	Status          string
	StatusColor     string
	Items           []string
	ShippingAddress string
	PaymentMethod   string
	Total           string
}

type OrdersList struct {
	Empty  bool
	Orders []OrderCard
}

func itoa(n int) string { return strconv.Itoa(n) }

// RenderOrders keeps the order the server returned (newest first).
func RenderOrders(orders []models.Order) OrdersList {
	if len(orders) == 0 {
		return OrdersList{Empty: true}
	}

	cards := make([]OrderCard, 0, len(orders))
	for _, o := range orders {
		date, tm := formatDate(o.CreatedAt)
		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, productName(it.Product)+" x"+itoa(it.Quantity)+" - "+Money(it.PriceAtPurchase)+" each")
		}
		if len(items) == 0 {
			items = append(items, "No items")
		}
		cards = append(cards, OrderCard{
			ID:              o.ID,
			Title:           "Order #" + itoa(o.ID),
			Date:            date,
			Time:            tm,
			Status:          strings.ToUpper(string(o.Status)),
			StatusColor:     StatusColor(o.Status),
			Items:           items,
			ShippingAddress: o.ShippingAddress,
			PaymentMethod:   orString(o.PaymentMethod, "N/A"),
			Total:           Money(o.TotalAmount),
		})
	}
	return OrdersList{Orders: cards}
}
