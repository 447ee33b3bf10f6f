// Package inventory содержит координатор атомарных батчевых списаний
// остатков. Корректность при конкурентном доступе обеспечивается внешним
// сервисом блокировок и фиксированным глобальным порядком захвата замков;
// внутрипроцессные мьютексы не используются.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/cache"
	"github.com/hemantkumar00/product-category-service/internal/domain"
	"github.com/hemantkumar00/product-category-service/internal/messaging/kafka"
	"github.com/hemantkumar00/product-category-service/internal/metrics"
)

const (
	// lockKeyPrefix — схема имён замков: по одному замку на товар.
	lockKeyPrefix = "lock:PRODUCT_INVENTORY:"
	// defaultLockWait — ограничение ожидания одного замка.
	defaultLockWait = 10 * time.Second
)

// Coordinator выполняет батчевое списание остатков по принципу «всё или ничего».
type Coordinator struct {
	store     domain.InventoryStore
	locks     domain.LockService
	cache     *cache.ProductCache
	publisher domain.EventPublisher // опциональный, fire-and-forget
	logger    *log.Entry
	metrics   *metrics.InventoryMetrics
	lockWait  time.Duration
}

// NewCoordinator создаёт рабочий экземпляр координатора.
func NewCoordinator(
	store domain.InventoryStore,
	locks domain.LockService,
	productCache *cache.ProductCache,
	logger *log.Entry,
) *Coordinator {
	if logger == nil {
		logger = log.WithField("component", "inventory")
	}
	return &Coordinator{
		store:    store,
		locks:    locks,
		cache:    productCache,
		logger:   logger,
		metrics:  metrics.NewInventoryMetrics(),
		lockWait: defaultLockWait,
	}
}

// NewCoordinatorWithPublisher создаёт координатор, публикующий события списаний.
func NewCoordinatorWithPublisher(
	store domain.InventoryStore,
	locks domain.LockService,
	productCache *cache.ProductCache,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Coordinator {
	c := NewCoordinator(store, locks, productCache, logger)
	c.publisher = publisher
	return c
}

// NewCoordinatorWithoutMetrics создаёт координатор без метрик (для тестов).
func NewCoordinatorWithoutMetrics(
	store domain.InventoryStore,
	locks domain.LockService,
	productCache *cache.ProductCache,
	logger *log.Entry,
) *Coordinator {
	c := NewCoordinator(store, locks, productCache, logger)
	c.metrics = nil
	return c
}

// Adjust применяет батч списаний целиком или не применяет вовсе.
//
// Замки захватываются в порядке возрастания идентификаторов: два конкурирующих
// батча с пересекающимися товарами всегда идут по замкам в одном относительном
// порядке, поэтому циклическое ожидание невозможно. Таймаут любого замка,
// отсутствие товара и нехватка остатка отклоняют весь батч; уже применённые в
// рамках батча списания откатываются до освобождения замков.
func (c *Coordinator) Adjust(ctx context.Context, batch map[string]int) error {
	start := time.Now()
	if c.metrics != nil {
		c.metrics.RecordAdjustmentStarted()
	}
	defer func() {
		if c.metrics != nil {
			c.metrics.RecordAdjustmentDuration(time.Since(start))
			c.metrics.RecordAdjustmentFinished()
		}
	}()

	if err := validateBatch(batch); err != nil {
		c.recordFailure()
		return err
	}

	ids := sortedIDs(batch)

	held, err := c.acquireAll(ctx, ids)
	if err != nil {
		// Ни одно списание ещё не выполнено: достаточно вернуть уже взятые замки.
		c.releaseAll(ctx, held)
		c.recordFailure()
		return err
	}

	applied := make(map[string]int, len(ids))
	deductErr := c.deduct(ids, batch, applied)
	if deductErr != nil {
		c.rollback(ids, applied)
	}
	c.releaseAll(ctx, held)

	if deductErr != nil {
		c.recordFailure()
		return deductErr
	}

	c.invalidateProducts(ctx, ids)
	c.publishDeducted(batch)

	if c.metrics != nil {
		c.metrics.RecordAdjustmentSucceeded()
	}
	c.logger.WithField("products", len(ids)).Info("inventory batch applied")
	return nil
}

// validateBatch отклоняет весь батч до захвата замков, если хотя бы одно
// количество не положительно.
func validateBatch(batch map[string]int) error {
	if len(batch) == 0 {
		return domain.ErrBatchEmpty
	}
	for id, qty := range batch {
		if qty <= 0 {
			return fmt.Errorf("product %s: %w", id, domain.ErrBatchQuantityInvalid)
		}
	}
	return nil
}

func sortedIDs(batch map[string]int) []string {
	ids := make([]string, 0, len(batch))
	for id := range batch {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// acquireAll захватывает замки в отсортированном порядке. При любой неудаче
// возвращает уже захваченные замки вызывающему для освобождения.
func (c *Coordinator) acquireAll(ctx context.Context, ids []string) ([]domain.Lock, error) {
	held := make([]domain.Lock, 0, len(ids))
	for _, id := range ids {
		waitStart := time.Now()
		lock, err := c.locks.Acquire(ctx, lockKeyPrefix+id, c.lockWait)
		if c.metrics != nil {
			c.metrics.RecordLockWait(time.Since(waitStart))
		}
		if err != nil {
			c.logger.WithError(err).WithField("product_id", id).Warn("lock acquisition failed, aborting batch")
			return held, err
		}
		held = append(held, lock)
	}
	return held, nil
}

// deduct проходит батч в отсортированном порядке и фиксирует применённые
// списания в applied.
func (c *Coordinator) deduct(ids []string, batch map[string]int, applied map[string]int) error {
	for _, id := range ids {
		want := batch[id]

		current, err := c.store.GetQuantity(id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				return fmt.Errorf("product %s: %w", id, domain.ErrProductNotFound)
			}
			return fmt.Errorf("read quantity of %s: %w", id, err)
		}
		if current < want {
			return fmt.Errorf("product %s: have %d, want %d: %w", id, current, want, domain.ErrInsufficientInventory)
		}

		if err := c.store.SetQuantity(id, current-want); err != nil {
			return fmt.Errorf("write quantity of %s: %w", id, err)
		}
		applied[id] = want
	}
	return nil
}

// rollback возвращает применённые списания. Best-effort: товар, удалённый
// конкурентной операцией, пропускается — это принятый риск крупнозернистой
// схемы, а не молчаливое исправление.
func (c *Coordinator) rollback(ids []string, applied map[string]int) {
	if c.metrics != nil && len(applied) > 0 {
		c.metrics.RecordRollback()
	}

	for _, id := range ids {
		delta, ok := applied[id]
		if !ok {
			continue
		}

		current, err := c.store.GetQuantity(id)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				c.logger.WithField("product_id", id).Warn("product deleted mid-batch, skipping rollback entry (partial recovery)")
				continue
			}
			c.logger.WithError(err).WithField("product_id", id).Error("rollback read failed")
			continue
		}
		if err := c.store.SetQuantity(id, current+delta); err != nil {
			c.logger.WithError(err).WithField("product_id", id).Error("rollback write failed")
		}
	}
}

// releaseAll освобождает замки в строго обратном порядке захвата.
func (c *Coordinator) releaseAll(ctx context.Context, held []domain.Lock) {
	for i := len(held) - 1; i >= 0; i-- {
		if err := held[i].Release(ctx); err != nil {
			c.logger.WithError(err).WithField("lock", held[i].Name()).Warn("lock release failed")
		}
	}
}

// invalidateProducts снимает кеш-записи затронутых товаров, чтобы читатели
// не получили остаток, устаревший в пределах TTL.
func (c *Coordinator) invalidateProducts(ctx context.Context, ids []string) {
	if c.cache == nil {
		return
	}
	for _, id := range ids {
		if err := c.cache.Invalidate(ctx, id); err != nil {
			c.logger.WithError(err).WithField("product_id", id).Warn("product cache invalidation failed")
		}
	}
}

func (c *Coordinator) publishDeducted(batch map[string]int) {
	if c.publisher == nil {
		return
	}
	event := kafka.NewInventoryDeductedEvent(batch)
	if err := c.publisher.Publish(kafka.TopicInventoryEvents, "inventory", event); err != nil {
		c.logger.WithError(err).Warn("failed to publish inventory event")
	}
}

func (c *Coordinator) recordFailure() {
	if c.metrics != nil {
		c.metrics.RecordAdjustmentFailed()
	}
}
