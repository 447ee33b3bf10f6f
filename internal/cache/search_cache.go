package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// SearchResultCache — cache-aside обёртка для страниц результатов поиска.
// Ключ — каноническая строка полного запроса (см. domain.CacheKeySearch);
// значение — сериализованная страница вместе с метаданными пагинации,
// чтобы закешированный ответ совпадал с некешированным вплоть до totals.
type SearchResultCache struct {
	cache domain.Cache
}

// NewSearchResultCache создаёт обёртку над выбранной реализацией Cache.
func NewSearchResultCache(cache domain.Cache) *SearchResultCache {
	return &SearchResultCache{cache: cache}
}

// Get возвращает закешированную страницу по ключу или domain.ErrCacheMiss.
func (c *SearchResultCache) Get(ctx context.Context, key string) (domain.ProductPage, error) {
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		return domain.ProductPage{}, err
	}

	var page domain.ProductPage
	if err := json.Unmarshal(raw, &page); err != nil {
		return domain.ProductPage{}, domain.ErrCacheMiss
	}
	return page, nil
}

// Put сохраняет страницу с TTL.
func (c *SearchResultCache) Put(ctx context.Context, key string, page domain.ProductPage) error {
	raw, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("marshal search page: %w", err)
	}
	return c.cache.Set(ctx, key, raw, TTL)
}
