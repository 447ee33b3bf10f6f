package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// Cache реализует domain.Cache поверх Redis.
type Cache struct {
	client *redis.Client
	logger *log.Entry
}

// NewCache создаёт Redis-реализацию кеша.
func NewCache(client *redis.Client, logger *log.Entry) *Cache {
	if logger == nil {
		logger = log.WithField("component", "redis-cache")
	}
	return &Cache{client: client, logger: logger}
}

// Get возвращает значение ключа или domain.ErrCacheMiss.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		c.logger.WithError(err).WithField("key", key).Error("redis get failed")
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return value, nil
}

// Set сохраняет значение с TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		c.logger.WithError(err).WithField("key", key).Error("redis set failed")
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

// Del удаляет ключи; отсутствие ключа Redis и так трактует как успех.
func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WithError(err).WithField("keys", keys).Error("redis del failed")
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

var _ domain.Cache = (*Cache)(nil)
