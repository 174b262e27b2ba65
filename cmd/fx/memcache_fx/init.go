package memcache_fx

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"hostelhub/internal/config"
	"hostelhub/pkg/logger"
	mem "hostelhub/pkg/memcache"
	"hostelhub/pkg/utils"
)

var Module = fx.Provide(provideRevealStore)

// provideRevealStore picks Redis when redis.addr is set so every instance shares one dedupe window.
func provideRevealStore(lc fx.Lifecycle, cfg *config.Config, clock utils.Clock, log logger.Interface) (mem.TTLStore, error) {
	if cfg.Redis.Addr == "" {
		return mem.NewTTLKeys(clock.Now), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.Addr)

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return mem.NewRedisTTLKeys(client, cfg.Redis.KeyPrefix, log), nil
}
