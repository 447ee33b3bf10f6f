package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// ProductRepository — простая in-memory реализация ProductRepository;
// она же служит InventoryStore для координатора.
type ProductRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewProductRepository() *ProductRepository {
	return &ProductRepository{items: make(map[string]domain.Product)}
}

// Create сохраняет новый товар, если ID ещё не занят.
func (r *ProductRepository) Create(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.ID]; exists {
		return fmt.Errorf("product %s already exists", product.ID)
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[product.ID] = product
	return nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *ProductRepository) Get(id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// Save перезаписывает существующий товар.
func (r *ProductRepository) Save(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	r.items[product.ID] = product
	return nil
}

// Delete удаляет товар по идентификатору.
func (r *ProductRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.items, id)
	return nil
}

// List возвращает страницу товаров, отсортированных по названию.
func (r *ProductRepository) List(pageNumber, pageSize int) (domain.ProductPage, error) {
	if pageNumber < 1 || pageSize < 1 {
		return domain.ProductPage{}, domain.ErrPageInvalid
	}

	r.mu.RLock()
	all := r.snapshot(func(domain.Product) bool { return true })
	r.mu.RUnlock()

	sortProducts(all, "title")
	return paginate(all, pageNumber, pageSize), nil
}

// FindByTitleContaining возвращает товары с подстрокой query в названии.
func (r *ProductRepository) FindByTitleContaining(query string) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := r.snapshot(func(p domain.Product) bool {
		return strings.Contains(p.Title, query)
	})
	// Стабильный порядок выдачи, чтобы пагинация не «плавала» между вызовами.
	sortProducts(result, "title")
	return result, nil
}

// FindByTitleAndCategory — выборка по подстроке названия внутри категории.
func (r *ProductRepository) FindByTitleAndCategory(query, categoryID, sortAttr string, pageNumber, pageSize int) (domain.ProductPage, error) {
	if pageNumber < 1 || pageSize < 1 {
		return domain.ProductPage{}, domain.ErrPageInvalid
	}

	r.mu.RLock()
	matched := r.snapshot(func(p domain.Product) bool {
		return p.CategoryID == categoryID && strings.Contains(p.Title, query)
	})
	r.mu.RUnlock()

	sortProducts(matched, sortAttr)
	return paginate(matched, pageNumber, pageSize), nil
}

// GetQuantity возвращает текущий остаток товара.
func (r *ProductRepository) GetQuantity(id string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return 0, domain.ErrProductNotFound
	}
	return product.Quantity, nil
}

// SetQuantity записывает остаток товара.
func (r *ProductRepository) SetQuantity(id string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.items[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	product.Quantity = quantity
	r.items[id] = product
	return nil
}

// Exists проверяет наличие товара.
func (r *ProductRepository) Exists(id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.items[id]
	return ok, nil
}

// snapshot собирает копии товаров, прошедших предикат. Вызывается под мьютексом.
func (r *ProductRepository) snapshot(keep func(domain.Product) bool) []domain.Product {
	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		if keep(product) {
			result = append(result, product)
		}
	}
	return result
}

func sortProducts(products []domain.Product, attr string) {
	sort.SliceStable(products, func(i, j int) bool {
		switch attr {
		case "price":
			return products[i].Price < products[j].Price
		case "quantity":
			return products[i].Quantity < products[j].Quantity
		default:
			if products[i].Title != products[j].Title {
				return products[i].Title < products[j].Title
			}
			return products[i].ID < products[j].ID
		}
	})
}

func paginate(products []domain.Product, pageNumber, pageSize int) domain.ProductPage {
	total := len(products)
	start := (pageNumber - 1) * pageSize
	if start >= total {
		return domain.EmptyPage(pageNumber, pageSize)
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return domain.NewProductPage(products[start:end], total, pageNumber, pageSize)
}

var _ domain.ProductRepository = (*ProductRepository)(nil)
var _ domain.InventoryStore = (*ProductRepository)(nil)
