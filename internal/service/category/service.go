// Package category реализует CRUD категорий. Категории не участвуют в
// инвентарных операциях: удаление или переименование не каскадирует в кеши
// и координатор.
package category

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// Service управляет категориями каталога.
type Service struct {
	categories domain.CategoryRepository
	logger     *log.Entry
}

// NewService создаёт сервис категорий.
func NewService(categories domain.CategoryRepository, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.WithField("component", "category")
	}
	return &Service{categories: categories, logger: logger}
}

// Create сохраняет новую категорию; дубликат названия отклоняется до записи.
func (s *Service) Create(_ context.Context, c domain.Category) (domain.Category, error) {
	if c.Title == "" {
		return domain.Category{}, domain.ErrCategoryTitleRequired
	}
	if _, err := s.categories.FindByTitle(c.Title); err == nil {
		return domain.Category{}, fmt.Errorf("title %q: %w", c.Title, domain.ErrCategoryAlreadyExists)
	}

	now := time.Now().UTC()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.categories.Create(c); err != nil {
		return domain.Category{}, fmt.Errorf("create category: %w", err)
	}

	s.logger.WithField("category_id", c.ID).Info("category created")
	return c, nil
}

// Update переименовывает категорию.
func (s *Service) Update(_ context.Context, id, title string) (domain.Category, error) {
	if title == "" {
		return domain.Category{}, domain.ErrCategoryTitleRequired
	}

	c, err := s.categories.Get(id)
	if err != nil {
		return domain.Category{}, err
	}

	c.Title = title
	c.UpdatedAt = time.Now().UTC()
	if err := s.categories.Save(c); err != nil {
		return domain.Category{}, fmt.Errorf("save category: %w", err)
	}
	return c, nil
}

// Delete удаляет категорию по идентификатору.
func (s *Service) Delete(_ context.Context, id string) error {
	if err := s.categories.Delete(id); err != nil {
		return err
	}
	s.logger.WithField("category_id", id).Info("category deleted")
	return nil
}

// Get возвращает категорию по идентификатору.
func (s *Service) Get(_ context.Context, id string) (domain.Category, error) {
	return s.categories.Get(id)
}

// List возвращает страницу категорий; pageNumber — 1-based.
func (s *Service) List(_ context.Context, pageNumber, pageSize int) ([]domain.Category, error) {
	return s.categories.List(pageNumber, pageSize)
}
