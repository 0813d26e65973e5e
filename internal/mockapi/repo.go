package mockapi

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

func (r *GormRepo) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(allModels()...)
}

func (r *GormRepo) CreateUser(ctx context.Context, u *User) error {
	return r.DB.WithContext(ctx).Create(u).Error
}

func (r *GormRepo) UserBy(ctx context.Context, column string, value any) (*User, error) {
	var u User
	if err := r.DB.WithContext(ctx).Where(column+" = ?", value).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *GormRepo) Categories(ctx context.Context) ([]string, error) {
	var out []string
	err := r.DB.WithContext(ctx).
		Model(&Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &out).Error
	return out, err
}

type ProductQuery struct {
	Search   string
	Category string
	Offset   int
	Limit    int
}

func (r *GormRepo) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	tx := r.DB.WithContext(ctx).Model(&Product{})
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where("(LOWER(name) LIKE ? OR LOWER(COALESCE(description, '')) LIKE ?)", pattern, pattern)
	}

	var items []Product
	if err := tx.Order("id ASC").Offset(q.Offset).Limit(q.Limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProducts(ctx context.Context, products []Product) error {
	return r.DB.WithContext(ctx).Create(&products).Error
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&Product{}).Count(&n).Error
	return n, err
}

func cartItems(tx *gorm.DB, userID uint) ([]CartItem, error) {
	var items []CartItem
	if err := tx.Preload("Product").Where("user_id = ?", userID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CartItems(ctx context.Context, userID uint) ([]CartItem, error) {
	return cartItems(r.DB.WithContext(ctx), userID)
}

// AddToCart merges quantity into an existing line for the product or creates one.
func (r *GormRepo) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*CartItem, error) {
	var item CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p Product
		if err := tx.First(&p, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Product with ID %d not found", productID)
			}
			return err
		}
		if p.StockQuantity < quantity {
			return insufficientStock(p)
		}

		err := tx.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
		switch {
		case err == nil:
			if p.StockQuantity < item.Quantity+quantity {
				return insufficientStock(p)
			}
			item.Quantity += quantity
			if err := tx.Model(&item).Update("quantity", item.Quantity).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		default:
			return err
		}
		item.Product = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) UpdateCartItem(ctx context.Context, userID, itemID uint, quantity int) (*CartItem, error) {
	var item CartItem
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Product").Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound("Cart item not found")
			}
			return err
		}
		if item.Product.StockQuantity < quantity {
			return insufficientStock(item.Product)
		}
		item.Quantity = quantity
		return tx.Model(&item).Update("quantity", quantity).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	res := r.DB.WithContext(ctx).Where("id = ? AND user_id = ?", itemID, userID).Delete(&CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("Cart item not found")
	}
	return nil
}

func (r *GormRepo) ClearCart(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&CartItem{}).Error
}

// Checkout turns the user's cart into an order, reserves stock and empties the cart in one transaction.
func (r *GormRepo) Checkout(ctx context.Context, userID uint, shippingAddress string, paymentMethod *string) (*Order, error) {
	var order Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items, err := cartItems(tx, userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return badRequest("Cart is empty. Cannot create order.")
		}

		order = Order{
			UserID:          userID,
			Status:          StatusPending,
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
		}
		for _, it := range items {
			if it.Product.ID == 0 {
				return notFound("Product with ID %d not found", it.ProductID)
			}
			if it.Product.StockQuantity < it.Quantity {
				return insufficientStock(it.Product)
			}
			order.TotalAmount = order.TotalAmount.Add(lineTotal(it.Product.Price, it.Quantity))
			order.Items = append(order.Items, OrderItem{
				ProductID:       it.ProductID,
				Quantity:        it.Quantity,
				PriceAtPurchase: it.Product.Price,
			})
		}
		order.TotalAmount = order.TotalAmount.Round(2)

		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, it := range items {
			res := tx.Model(&Product{}).
				Where("id = ? AND stock_quantity >= ?", it.ProductID, it.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", it.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return insufficientStock(it.Product)
			}
		}

		if err := tx.Where("user_id = ?", userID).Delete(&CartItem{}).Error; err != nil {
			return err
		}

		var created Order
		if err := preloadOrderItems(tx).First(&created, order.ID).Error; err != nil {
			return err
		}
		order = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) Orders(ctx context.Context, userID uint, offset, limit int) ([]Order, error) {
	var orders []Order
	err := preloadOrderItems(r.DB.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func preloadOrderItems(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Product")
}
