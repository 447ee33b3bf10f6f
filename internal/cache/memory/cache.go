package memory

import (
	"context"
	"sync"
	"time"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Cache — in-memory реализация domain.Cache для разработки и тестов.
// Просроченные записи вычищаются лениво при чтении.
type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	now   func() time.Time
}

// NewCache возвращает пустой in-memory кеш.
func NewCache() *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   time.Now,
	}
}

// NewCacheWithClock возвращает кеш с внешними часами (для тестов TTL).
func NewCacheWithClock(now func() time.Time) *Cache {
	return &Cache{
		items: make(map[string]entry),
		now:   now,
	}
}

// Get возвращает значение или domain.ErrCacheMiss, если ключа нет или он просрочен.
func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if !item.expiresAt.IsZero() && c.now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, domain.ErrCacheMiss
	}

	// Возвращаем копию, чтобы вызывающий не мутировал содержимое кеша.
	value := make([]byte, len(item.value))
	copy(value, item.value)
	return value, nil
}

// Set сохраняет значение; ttl<=0 означает запись без срока жизни.
func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.items[key] = entry{value: stored, expiresAt: expiresAt}
	c.mu.Unlock()
	return nil
}

// Del удаляет ключи; отсутствующие игнорируются.
func (c *Cache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.items, key)
	}
	c.mu.Unlock()
	return nil
}

var _ domain.Cache = (*Cache)(nil)
