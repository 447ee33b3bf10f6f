// Package cache содержит cache-aside обёртки над байтовым Cache-портом:
// кеш одиночных товаров и кеш страниц результатов поиска. Обе обёртки
// хранят JSON-сериализованные значения с TTL в два дня.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// TTL — время жизни записей обоих кешей.
const TTL = 48 * time.Hour

// ProductCache — cache-aside обёртка для чтения одиночных товаров.
type ProductCache struct {
	cache domain.Cache
}

// NewProductCache создаёт обёртку над выбранной реализацией Cache.
func NewProductCache(cache domain.Cache) *ProductCache {
	return &ProductCache{cache: cache}
}

// Get возвращает закешированный товар или domain.ErrCacheMiss.
func (c *ProductCache) Get(ctx context.Context, productID string) (domain.Product, error) {
	raw, err := c.cache.Get(ctx, domain.CacheKeyProduct(productID))
	if err != nil {
		return domain.Product{}, err
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		// Нечитаемая запись эквивалентна промаху: источник истины — хранилище.
		return domain.Product{}, domain.ErrCacheMiss
	}
	return product, nil
}

// Put сохраняет товар с TTL.
func (c *ProductCache) Put(ctx context.Context, product domain.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", product.ID, err)
	}
	return c.cache.Set(ctx, domain.CacheKeyProduct(product.ID), raw, TTL)
}

// Invalidate удаляет запись товара. Идемпотентна: отсутствие ключа — не ошибка.
func (c *ProductCache) Invalidate(ctx context.Context, productID string) error {
	return c.cache.Del(ctx, domain.CacheKeyProduct(productID))
}
