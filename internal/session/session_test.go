package session

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
	"github.com/Skotchmaster/storefront/internal/models"
)

const testOrigin = "http://shop.test"

func newGormStore(t *testing.T) *GormStore {
	t.Helper()
	gdb, err := db.Open(context.Background(), db.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	s, err := NewGormStore(gdb)
	require.NoError(t, err)
	return s
}

func requireRedis(t *testing.T) *RedisStore {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping Redis test in short mode")
	}
	conn, err := net.DialTimeout("tcp", "localhost:6379", time.Second)
	if err != nil {
		t.Skip("Redis not available at localhost:6379")
	}
	conn.Close()

	rs, err := NewRedisStore(context.Background(), "redis://localhost:6379/15")
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() { _ = rs.Close() })
	return rs
}

func stores(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store { return NewMemoryStore() },
		"gorm":   func(t *testing.T) Store { return newGormStore(t) },
		"redis":  func(t *testing.T) Store { return requireRedis(t) },
	}
}

func TestStore_Contract(t *testing.T) {
	for name, mk := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := mk(t)
			origin := testOrigin + "/" + name + "/" + time.Now().Format("150405.000000")

			_, err := s.Get(ctx, origin, "k")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, origin, "k", "v1"))
			require.NoError(t, s.Set(ctx, origin, "k", "v2"))
			v, err := s.Get(ctx, origin, "k")
			require.NoError(t, err)
			assert.Equal(t, "v2", v)

			_, err = s.Get(ctx, origin+"/other", "k")
			require.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Delete(ctx, origin, "k"))
			require.NoError(t, s.Delete(ctx, origin, "k"))
			_, err = s.Get(ctx, origin, "k")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestSession_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	sess := New(NewMemoryStore(), testOrigin)

	_, ok, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, sess.Authenticated(ctx))

	require.NoError(t, sess.SetToken(ctx, "t1"))
	tok, ok, err := sess.Token(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "t1", tok)
	assert.True(t, sess.Authenticated(ctx))

	require.NoError(t, sess.ClearToken(ctx))
	assert.False(t, sess.Authenticated(ctx))
}

func TestSession_UserRequiresToken(t *testing.T) {
	ctx := context.Background()
	sess := New(NewMemoryStore(), testOrigin)

	require.NoError(t, sess.SetUser(ctx, models.UserProfile{ID: 7, Username: "alice"}))

	u, err := sess.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u, "a profile without a token is anonymous")

	require.NoError(t, sess.SetToken(ctx, "t1"))
	u, err = sess.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, 7, u.ID)
}

func TestSession_ClearAndPersistence(t *testing.T) {
	ctx := context.Background()
	store := newGormStore(t)

	first := New(store, testOrigin)
	require.NoError(t, first.SetToken(ctx, "t1"))
	require.NoError(t, first.SetUser(ctx, models.UserProfile{Username: "alice"}))

	reopened := New(store, testOrigin)
	u, err := reopened.User(ctx)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)

	other := New(store, "http://elsewhere.test")
	assert.False(t, other.Authenticated(ctx))

	require.NoError(t, reopened.Clear(ctx))
	assert.False(t, first.Authenticated(ctx))
	_, err = store.Get(ctx, testOrigin, KeyUser)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSession_SetEmptyTokenClears(t *testing.T) {
	ctx := context.Background()
	sess := New(NewMemoryStore(), testOrigin)
	require.NoError(t, sess.SetToken(ctx, "t1"))
	require.NoError(t, sess.SetToken(ctx, ""))
	assert.False(t, sess.Authenticated(ctx))
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := OpenStore(ctx, &config.Config{SessionBackend: config.BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
	require.NoError(t, closeFn())

	s, closeFn, err = OpenStore(ctx, &config.Config{SessionBackend: config.BackendSQLite, SessionDSN: ":memory:"})
	require.NoError(t, err)
	assert.IsType(t, &GormStore{}, s)
	require.NoError(t, closeFn())

	_, _, err = OpenStore(ctx, &config.Config{SessionBackend: "bolt"})
	require.Error(t, err)
}
