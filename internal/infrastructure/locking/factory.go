package locking

import (
	"fmt"

	"github.com/pharmadist/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// NewFromConfig builds the order locker selected by configuration. The
// in-memory backend is correct for a single instance; redis is required
// once more than one instance writes collections.
func NewFromConfig(cfg *config.Config) (OrderLocker, error) {
	switch cfg.Lock.Backend {
	case "inmemory":
		return NewKeyedMutex(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		return NewRedisLocker(client, cfg.Lock.TTL), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Lock.Backend)
	}
}
