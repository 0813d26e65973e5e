package mockapi

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           uint    `gorm:"primaryKey"`
	Username     string  `gorm:"uniqueIndex;size:100;not null"`
	Email        string  `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string  `gorm:"not null"`
	FullName     *string `gorm:"size:200"`
	Phone        *string `gorm:"size:50"`
	Address      *string
	IsActive     bool `gorm:"not null"`
	IsAdmin      bool `gorm:"not null"`
	CreatedAt    time.Time
}

type Product struct {
	ID            uint            `gorm:"primaryKey"`
	Name          string          `gorm:"size:200;not null;index"`
	Description   *string         `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Category      string          `gorm:"size:100;not null;index"`
	StockQuantity int             `gorm:"not null;default:0"`
	ImageURL      *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type CartItem struct {
	ID        uint    `gorm:"primaryKey"`
	UserID    uint    `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint    `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int     `gorm:"not null;check:quantity > 0"`
	Product   Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

func (CartItem) TableName() string {
	return "cart_items"
}

type Order struct {
	ID              uint            `gorm:"primaryKey"`
	UserID          uint            `gorm:"index;not null"`
	Status          string          `gorm:"size:20;not null"`
	ShippingAddress string          `gorm:"size:500;not null"`
	PaymentMethod   *string         `gorm:"size:50"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type OrderItem struct {
	ID              uint            `gorm:"primaryKey"`
	OrderID         uint            `gorm:"index;not null"`
	ProductID       uint            `gorm:"not null"`
	Quantity        int             `gorm:"not null"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Product         Product         `gorm:"foreignKey:ProductID"`
}

func allModels() []any {
	return []any{&User{}, &Product{}, &CartItem{}, &Order{}, &OrderItem{}}
}
