package mockapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	StatusPending        = string(models.StatusPending)
	DefaultPaymentMethod = "cash_on_delivery"

	minUsernameLen = 3
	maxUsernameLen = 100
	minPasswordLen = 6
	minAddressLen  = 10
	maxAddressLen  = 500
	maxPaymentLen  = 50
)

type Service struct {
	Repo      *GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

func NewService(db *gorm.DB, secret []byte) *Service {
	return &Service{Repo: &GormRepo{DB: db}, JWTSecret: secret, TokenTTL: AccessTokenTTL}
}

func lineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && strings.Contains(email[at:], ".")
}

func (s *Service) Register(ctx context.Context, reg models.Registration, phone, address *string) (*User, error) {
	l := logging.FromContext(ctx).With("svc", "mockapi.register", "username", reg.Username)

	switch {
	case len(reg.Username) < minUsernameLen:
		return nil, invalid("username", fmt.Sprintf("String should have at least %d characters", minUsernameLen))
	case len(reg.Username) > maxUsernameLen:
		return nil, invalid("username", fmt.Sprintf("String should have at most %d characters", maxUsernameLen))
	case !validEmail(reg.Email):
		return nil, invalid("email", "value is not a valid email address")
	case len(reg.Password) < minPasswordLen:
		return nil, invalid("password", fmt.Sprintf("String should have at least %d characters", minPasswordLen))
	}

	if _, err := s.Repo.UserBy(ctx, "username", reg.Username); err == nil {
		return nil, badRequest("Username '%s' already exists", reg.Username)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.Repo.UserBy(ctx, "email", reg.Email); err == nil {
		return nil, badRequest("Email '%s' already registered", reg.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	pwHash, err := HashPassword(reg.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	u := &User{
		Username:     reg.Username,
		Email:        reg.Email,
		PasswordHash: pwHash,
		FullName:     reg.FullName,
		Phone:        phone,
		Address:      address,
		IsActive:     true,
	}
	if err := s.Repo.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	l.Info("user registered", "user_id", u.ID)
	return u, nil
}

// Login checks the credentials and issues an access token.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "mockapi.login", "username", username)

	u, err := s.Repo.UserBy(ctx, "username", username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("login failed", "status", 401, "reason", "unknown user")
			return "", unauthorized("Invalid username or password")
		}
		return "", err
	}
	if !CheckPassword(u.PasswordHash, password) {
		l.Warn("login failed", "status", 401, "reason", "wrong password")
		return "", unauthorized("Invalid username or password")
	}
	if !u.IsActive {
		return "", unauthorized("User account is inactive")
	}

	return CreateAccessToken(s.JWTSecret, u.ID, u.Username, time.Now().Add(s.TokenTTL))
}

func (s *Service) Authenticate(token string) (uint, error) {
	claims, err := AccessClaimsFromToken(token, s.JWTSecret)
	if err != nil {
		return 0, unauthorized("Invalid or expired token")
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, unauthorized("Invalid token payload")
	}
	return id, nil
}

func (s *Service) Profile(ctx context.Context, userID uint) (*User, error) {
	u, err := s.Repo.UserBy(ctx, "id", userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User with ID %d not found", userID)
		}
		return nil, err
	}
	return u, nil
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.Repo.Categories(ctx)
}

func (s *Service) Products(ctx context.Context, q ProductQuery) ([]Product, error) {
	return s.Repo.Products(ctx, q)
}

func (s *Service) Cart(ctx context.Context, userID uint) ([]CartItem, error) {
	return s.Repo.CartItems(ctx, userID)
}

func (s *Service) AddToCart(ctx context.Context, userID uint, productID, quantity int) (*CartItem, error) {
	if productID <= 0 {
		return nil, invalid("product_id", "Input should be greater than 0")
	}
	if quantity <= 0 {
		return nil, invalid("quantity", "Input should be greater than 0")
	}
	return s.Repo.AddToCart(ctx, userID, uint(productID), quantity)
}

func (s *Service) UpdateCartItem(ctx context.Context, userID, itemID uint, quantity int) (*CartItem, error) {
	if quantity <= 0 {
		return nil, invalid("quantity", "Input should be greater than 0")
	}
	return s.Repo.UpdateCartItem(ctx, userID, itemID, quantity)
}

func (s *Service) RemoveCartItem(ctx context.Context, userID, itemID uint) error {
	return s.Repo.RemoveCartItem(ctx, userID, itemID)
}

func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	return s.Repo.ClearCart(ctx, userID)
}

func (s *Service) Checkout(ctx context.Context, userID uint, req models.CheckoutRequest) (*Order, error) {
	l := logging.FromContext(ctx).With("svc", "mockapi.checkout", "user_id", userID)

	addr := strings.TrimSpace(req.ShippingAddress)
	switch {
	case len(addr) < minAddressLen:
		return nil, invalid("shipping_address", fmt.Sprintf("String should have at least %d characters", minAddressLen))
	case len(addr) > maxAddressLen:
		return nil, invalid("shipping_address", fmt.Sprintf("String should have at most %d characters", maxAddressLen))
	case len(req.PaymentMethod) > maxPaymentLen:
		return nil, invalid("payment_method", fmt.Sprintf("String should have at most %d characters", maxPaymentLen))
	}

	payment := req.PaymentMethod
	if payment == "" {
		payment = DefaultPaymentMethod
	}

	order, err := s.Repo.Checkout(ctx, userID, addr, &payment)
	if err != nil {
		return nil, err
	}

	l.Info("order created", "order_id", order.ID, "total", order.TotalAmount.String())
	return order, nil
}

func (s *Service) Orders(ctx context.Context, userID uint, offset, limit int) ([]Order, error) {
	return s.Repo.Orders(ctx, userID, offset, limit)
}
