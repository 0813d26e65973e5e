package events

import (
	"context"
	"time"
)

const (
	TypeLoggedIn      = "user_logged_in"
	TypeLoggedOut     = "user_logged_out"
	TypeRegistered    = "user_registered"
	TypeCartItemAdded = "cart_item_added"
	TypeCartUpdated   = "cart_item_updated"
	TypeCartRemoved   = "cart_item_removed"
	TypeCartCleared   = "cart_cleared"
	TypeOrderPlaced   = "order_placed"
)

type Event struct {
	Type      string    `json:"type"`
	Username  string    `json:"username,omitempty"`
	ProductID int       `json:"product_id,omitempty"`
	ItemID    int       `json:"item_id,omitempty"`
	OrderID   int       `json:"order_id,omitempty"`
	Quantity  int       `json:"quantity,omitempty"`
	At        time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
