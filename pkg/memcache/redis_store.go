package mem

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"hostelhub/pkg/logger"
)

const redisOpTimeout = 500 * time.Millisecond

// RedisTTLKeys is a TTLStore shared by every API instance. Redis expires the keys itself.
type RedisTTLKeys struct {
	client *redis.Client
	prefix string
	logger logger.Interface
}

func NewRedisTTLKeys(client *redis.Client, prefix string, log logger.Interface) *RedisTTLKeys {
	return &RedisTTLKeys{
		client: client,
		prefix: prefix,
		logger: log.Named("reveal_store"),
	}
}

// Mark uses SET NX so concurrent callers agree on who saw the key first.
// When Redis is unreachable the key is reported as new.
func (s *RedisTTLKeys) Mark(key string, ttl time.Duration) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	created, err := s.client.SetNX(ctx, s.prefix+key, 1, ttl).Result()
	if err != nil {
		s.logger.Warnw("redis mark failed", "key", key, "error", err)
		return false
	}
	return !created
}

func (s *RedisTTLKeys) Seen(key string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	n, err := s.client.Exists(ctx, s.prefix+key).Result()
	if err != nil {
		s.logger.Warnw("redis exists failed", "key", key, "error", err)
		return false
	}
	return n > 0
}

func (s *RedisTTLKeys) Purge() int {
	return 0
}
