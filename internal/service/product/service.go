// Package product реализует CRUD товаров с cache-aside чтением одиночного
// товара и синхронизацией изменений в платёжный сервис через Kafka.
// Поле Quantity этим сервисом только читается и выставляется целиком:
// батчевые списания идут через координатор инвентаря.
package product

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/cache"
	"github.com/hemantkumar00/product-category-service/internal/domain"
	"github.com/hemantkumar00/product-category-service/internal/messaging/kafka"
	"github.com/hemantkumar00/product-category-service/internal/metrics"
)

const cacheName = "product"

// Update — частичное обновление товара: nil-поле означает «не менять».
type Update struct {
	Title       *string
	Price       *float64
	Description *string
	ImgURL      *string
	Quantity    *int
	CategoryID  *string
}

// Service управляет товарами каталога.
type Service struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	cache      *cache.ProductCache
	publisher  domain.EventPublisher // опциональный, fire-and-forget
	logger     *log.Entry
	metrics    *metrics.InventoryMetrics
}

// NewService создаёт сервис товаров.
func NewService(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	productCache *cache.ProductCache,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.WithField("component", "product")
	}
	return &Service{
		products:   products,
		categories: categories,
		cache:      productCache,
		logger:     logger,
		metrics:    metrics.NewInventoryMetrics(),
	}
}

// NewServiceWithPublisher создаёт сервис, публикующий события для платёжного сервиса.
func NewServiceWithPublisher(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	productCache *cache.ProductCache,
	publisher domain.EventPublisher,
	logger *log.Entry,
) *Service {
	s := NewService(products, categories, productCache, logger)
	s.publisher = publisher
	return s
}

// NewServiceWithoutMetrics создаёт сервис без метрик (для тестов).
func NewServiceWithoutMetrics(
	products domain.ProductRepository,
	categories domain.CategoryRepository,
	productCache *cache.ProductCache,
	logger *log.Entry,
) *Service {
	s := NewService(products, categories, productCache, logger)
	s.metrics = nil
	return s
}

// Create валидирует и сохраняет новый товар. Категория должна существовать.
func (s *Service) Create(_ context.Context, p domain.Product) (domain.Product, error) {
	if p.Quantity <= 0 {
		// При создании требуется положительный начальный остаток.
		return domain.Product{}, domain.ErrProductQuantityInvalid
	}
	if errs := p.ValidateInvariants(); len(errs) > 0 {
		return domain.Product{}, errors.Join(errs...)
	}
	if _, err := s.categories.Get(p.CategoryID); err != nil {
		return domain.Product{}, fmt.Errorf("category %s: %w", p.CategoryID, err)
	}

	now := time.Now().UTC()
	p.ID = uuid.NewString()
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.products.Create(p); err != nil {
		return domain.Product{}, fmt.Errorf("create product: %w", err)
	}

	s.publishSync(p, kafka.OperationAdd)
	s.logger.WithField("product_id", p.ID).Info("product created")
	return p, nil
}

// Get возвращает товар: сначала кеш, затем хранилище с репопуляцией кеша.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	if cached, err := s.cache.Get(ctx, id); err == nil {
		s.recordHit()
		return cached, nil
	} else if !errors.Is(err, domain.ErrCacheMiss) {
		s.logger.WithError(err).WithField("product_id", id).Warn("product cache read failed, falling back to store")
	}
	s.recordMiss()

	p, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	if err := s.cache.Put(ctx, p); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("product cache write failed")
	}
	return p, nil
}

// UpdateProduct применяет частичное обновление. Кеш-запись снимается до
// записи в хранилище, чтобы ограничить окно устаревания.
func (s *Service) UpdateProduct(ctx context.Context, id string, update Update) (domain.Product, error) {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("product cache invalidation failed")
	}

	p, err := s.products.Get(id)
	if err != nil {
		return domain.Product{}, err
	}

	if update.Title != nil && *update.Title != "" {
		p.Title = *update.Title
	}
	if update.Description != nil && *update.Description != "" {
		p.Description = *update.Description
	}
	if update.Price != nil && *update.Price > 0 {
		p.Price = *update.Price
	}
	if update.ImgURL != nil && *update.ImgURL != "" {
		p.ImgURL = *update.ImgURL
	}
	if update.Quantity != nil && *update.Quantity >= 0 {
		p.Quantity = *update.Quantity
	}
	if update.CategoryID != nil && *update.CategoryID != "" {
		if _, err := s.categories.Get(*update.CategoryID); err != nil {
			return domain.Product{}, fmt.Errorf("category %s: %w", *update.CategoryID, err)
		}
		p.CategoryID = *update.CategoryID
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.products.Save(p); err != nil {
		return domain.Product{}, fmt.Errorf("save product: %w", err)
	}

	s.publishSync(p, kafka.OperationUpdate)
	return p, nil
}

// Delete удаляет товар, предварительно сняв его кеш-запись.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.WithError(err).WithField("product_id", id).Warn("product cache invalidation failed")
	}

	p, err := s.products.Get(id)
	if err != nil {
		return err
	}
	if err := s.products.Delete(id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.publishSync(p, kafka.OperationRemove)
	s.logger.WithField("product_id", id).Info("product deleted")
	return nil
}

// GetInventory возвращает текущий остаток товара, минуя кеш.
func (s *Service) GetInventory(_ context.Context, id string) (int, error) {
	p, err := s.products.Get(id)
	if err != nil {
		return 0, err
	}
	return p.Quantity, nil
}

// List возвращает страницу товаров; pageNumber — 1-based.
func (s *Service) List(_ context.Context, pageNumber, pageSize int) (domain.ProductPage, error) {
	return s.products.List(pageNumber, pageSize)
}

func (s *Service) publishSync(p domain.Product, op kafka.OperationType) {
	if s.publisher == nil {
		return
	}
	event := kafka.NewProductPaymentSyncEvent(p.ID, p.Title, p.Description, p.Price, op)
	if err := s.publisher.Publish(kafka.TopicProductPaymentSync, p.ID, event); err != nil {
		s.logger.WithError(err).WithFields(log.Fields{
			"product_id": p.ID,
			"operation":  op,
		}).Warn("failed to publish product sync event")
	}
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
