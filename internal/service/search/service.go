// Package search реализует поиск товаров поверх cache-aside кеша страниц:
// выборка кандидатов по подстроке названия, цепочка именованных фильтров,
// стратегия сортировки и 1-based пагинация.
package search

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/cache"
	"github.com/hemantkumar00/product-category-service/internal/domain"
	"github.com/hemantkumar00/product-category-service/internal/metrics"
)

const cacheName = "search"

// Service выполняет поисковые запросы по каталогу.
type Service struct {
	products domain.ProductRepository
	results  *cache.SearchResultCache
	logger   *log.Entry
	metrics  *metrics.InventoryMetrics
}

// NewService создаёт поисковый сервис.
func NewService(products domain.ProductRepository, results *cache.SearchResultCache, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "search")
	}
	return &Service{
		products: products,
		results:  results,
		logger:   logger,
		metrics:  metrics.NewInventoryMetrics(),
	}
}

// NewServiceWithoutMetrics создаёт поисковый сервис без метрик (для тестов).
func NewServiceWithoutMetrics(products domain.ProductRepository, results *cache.SearchResultCache, logger *log.Entry) *Service {
	s := NewService(products, results, logger)
	s.metrics = nil
	return s
}

// Search возвращает страницу товаров по полной форме запроса.
//
// Кеш-ключ строится из всей формы запроса; попадание возвращает сохранённую
// страницу без обращения к хранилищу. Пустая страница за пределами выборки —
// валидный результат и в кеш не пишется.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) (domain.ProductPage, error) {
	if err := q.Validate(); err != nil {
		return domain.ProductPage{}, err
	}

	// Стратегии разрешаются до обращения к кешу: неизвестный ключ фильтра —
	// ошибка входных данных, а не вариация ключа кеша.
	filters := make([]Filter, 0, len(q.Filters))
	for _, spec := range q.Filters {
		filter, err := filterByKey(spec.Key)
		if err != nil {
			return domain.ProductPage{}, err
		}
		filters = append(filters, filter)
	}
	sorter, err := sorterFor(q.Sort)
	if err != nil {
		return domain.ProductPage{}, err
	}

	key := domain.CacheKeySearch(q)
	if page, err := s.results.Get(ctx, key); err == nil {
		s.recordHit()
		return page, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.WithError(err).WithField("key", key).Warn("search cache read failed, falling back to store")
	}
	s.recordMiss()

	candidates, err := s.products.FindByTitleContaining(q.Query)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("find candidates: %w", err)
	}
	if len(candidates) == 0 {
		return domain.ProductPage{}, fmt.Errorf("query %q: %w", q.Query, domain.ErrNoProductsFound)
	}

	for i, filter := range filters {
		candidates = filter.Apply(candidates, q.Filters[i].Values)
	}
	candidates = sorter.Sort(candidates)

	total := len(candidates)
	start := (q.PageNumber - 1) * q.PageSize
	if start >= total {
		return domain.EmptyPage(q.PageNumber, q.PageSize), nil
	}
	end := start + q.PageSize
	if end > total {
		end = total
	}
	page := domain.NewProductPage(candidates[start:end], total, q.PageNumber, q.PageSize)

	if err := s.results.Put(ctx, key, page); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("search cache write failed")
	}
	return page, nil
}

// SimpleSearch — упрощённый поиск по категории: фильтры и сортировщики
// обходятся, выборка и сортировка делегируются хранилищу. Кеширование то же.
func (s *Service) SimpleSearch(ctx context.Context, query, categoryID string, pageSize, pageNumber int, sortAttr string) (domain.ProductPage, error) {
	if pageNumber < 1 || pageSize < 1 {
		return domain.ProductPage{}, domain.ErrPageInvalid
	}

	key := domain.CacheKeySimpleSearch(query, categoryID, sortAttr, pageSize, pageNumber)
	if page, err := s.results.Get(ctx, key); err == nil {
		s.recordHit()
		return page, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.WithError(err).WithField("key", key).Warn("search cache read failed, falling back to store")
	}
	s.recordMiss()

	page, err := s.products.FindByTitleAndCategory(query, categoryID, sortAttr, pageNumber, pageSize)
	if err != nil {
		return domain.ProductPage{}, fmt.Errorf("simple search: %w", err)
	}

	if err := s.results.Put(ctx, key, page); err != nil {
		s.logger.WithError(err).WithField("key", key).Warn("search cache write failed")
	}
	return page, nil
}

func (s *Service) recordHit() {
	if s.metrics != nil {
		s.metrics.RecordCacheHit(cacheName)
	}
}

func (s *Service) recordMiss() {
	if s.metrics != nil {
		s.metrics.RecordCacheMiss(cacheName)
	}
}
