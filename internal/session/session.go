package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
)

const (
	KeyToken = "authToken"
	KeyUser  = "currentUser"
)

var ErrNotFound = errors.New("session key not found")

// Store is durable key/value storage partitioned by origin.
type Store interface {
	Get(ctx context.Context, origin, key string) (string, error)
	Set(ctx context.Context, origin, key, value string) error
	Delete(ctx context.Context, origin, key string) error
}

// Session is the shopper's token and cached profile for one API origin.
// It is the only mutation surface for that state.
type Session struct {
	store  Store
	origin string
}

func New(store Store, origin string) *Session {
	return &Session{store: store, origin: origin}
}

func (s *Session) Origin() string { return s.origin }

func (s *Session) Token(ctx context.Context) (string, bool, error) {
	v, err := s.store.Get(ctx, s.origin, KeyToken)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read token: %w", err)
	}
	return v, v != "", nil
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.ClearToken(ctx)
	}
	if err := s.store.Set(ctx, s.origin, KeyToken, token); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (s *Session) ClearToken(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.origin, KeyToken); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// User returns the cached profile. A profile without a token is reported as absent.
func (s *Session) User(ctx context.Context) (*models.UserProfile, error) {
	if _, ok, err := s.Token(ctx); err != nil || !ok {
		return nil, err
	}

	raw, err := s.store.Get(ctx, s.origin, KeyUser)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read user: %w", err)
	}

	var u models.UserProfile
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &u, nil
}

func (s *Session) SetUser(ctx context.Context, u models.UserProfile) error {
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := s.store.Set(ctx, s.origin, KeyUser, string(data)); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

func (s *Session) ClearUser(ctx context.Context) error {
	if err := s.store.Delete(ctx, s.origin, KeyUser); err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

func (s *Session) Authenticated(ctx context.Context) bool {
	_, ok, err := s.Token(ctx)
	return err == nil && ok
}

// Clear drops both token and profile.
func (s *Session) Clear(ctx context.Context) error {
	return errors.Join(s.ClearToken(ctx), s.ClearUser(ctx))
}
