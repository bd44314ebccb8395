package session

import (
	"context"

	"github.com/tubegrab/tubegrab/internal/config"
	"github.com/tubegrab/tubegrab/internal/utils"
)

// NewStore selects the session backend: redis when an address is configured
// and reachable, the bounded in-memory store otherwise.
func NewStore(cfg *config.Config) Store {
	ctx := context.Background()

	if cfg.Redis.Addr != "" {
		store, err := NewRedisStore(&cfg.Redis, cfg.Session.TTL)
		if err != nil {
			utils.LogWarn(ctx, "Redis not available, falling back to in-memory session store", utils.Fields{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
		} else {
			utils.LogInfo(ctx, "Using redis session store", utils.Fields{"addr": cfg.Redis.Addr})
			return store
		}
	}

	utils.LogInfo(ctx, "Using in-memory session store", utils.Fields{
		"ttl":      cfg.Session.TTL.String(),
		"capacity": cfg.Session.Capacity,
	})
	return NewMemoryStore(cfg.Session.TTL, cfg.Session.Capacity)
}
