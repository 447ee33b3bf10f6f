package memory

import (
	"sort"
	"sync"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// CategoryRepository — in-memory реализация CategoryRepository с контролем
// уникальности названия.
type CategoryRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Category
}

// NewCategoryRepository возвращает in-memory репозиторий категорий.
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{items: make(map[string]domain.Category)}
}

// Create сохраняет категорию, отклоняя дубликат названия.
func (r *CategoryRepository) Create(category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.Title == category.Title {
			return domain.ErrCategoryAlreadyExists
		}
	}
	r.items[category.ID] = category
	return nil
}

// Get возвращает категорию или ErrCategoryNotFound.
func (r *CategoryRepository) Get(id string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.items[id]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return category, nil
}

// FindByTitle возвращает категорию по точному названию.
func (r *CategoryRepository) FindByTitle(title string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.items {
		if category.Title == title {
			return category, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

// Save перезаписывает категорию, сохраняя уникальность названия.
func (r *CategoryRepository) Save(category domain.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[category.ID]; !ok {
		return domain.ErrCategoryNotFound
	}
	for id, existing := range r.items {
		if id != category.ID && existing.Title == category.Title {
			return domain.ErrCategoryAlreadyExists
		}
	}
	r.items[category.ID] = category
	return nil
}

// Delete удаляет категорию по идентификатору.
func (r *CategoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrCategoryNotFound
	}
	delete(r.items, id)
	return nil
}

// List возвращает страницу категорий, отсортированных по названию.
func (r *CategoryRepository) List(pageNumber, pageSize int) ([]domain.Category, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.ErrPageInvalid
	}

	r.mu.RLock()
	all := make([]domain.Category, 0, len(r.items))
	for _, category := range r.items {
		all = append(all, category)
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool { return all[i].Title < all[j].Title })

	start := (pageNumber - 1) * pageSize
	if start >= len(all) {
		return []domain.Category{}, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

var _ domain.CategoryRepository = (*CategoryRepository)(nil)
