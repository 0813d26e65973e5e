package session

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/config"
	"github.com/Skotchmaster/storefront/internal/db"
)

// OpenStore builds the Store selected by SESSION_BACKEND. The returned func releases it.
func OpenStore(ctx context.Context, cfg *config.Config) (Store, func() error, error) {
	switch cfg.SessionBackend {
	case config.BackendMemory:
		return NewMemoryStore(), func() error { return nil }, nil
	case config.BackendRedis:
		rs, err := NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return rs, rs.Close, nil
	case config.BackendSQLite, config.BackendPostgres:
		gdb, err := db.Open(ctx, cfg.SessionBackend, cfg.SessionDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open session db: %w", err)
		}
		gs, err := NewGormStore(gdb)
		if err != nil {
			_ = db.Close(gdb)
			return nil, nil, fmt.Errorf("migrate session db: %w", err)
		}
		return gs, func() error { return db.Close(gdb) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
