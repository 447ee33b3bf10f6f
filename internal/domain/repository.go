package domain

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	// Create сохраняет новый товар. Возвращает ошибку, если ID уже занят.
	Create(product Product) error
	// Get возвращает товар по идентификатору или ErrProductNotFound.
	Get(id string) (Product, error)
	// Save перезаписывает существующий товар.
	Save(product Product) error
	// Delete удаляет товар или возвращает ErrProductNotFound.
	Delete(id string) error
	// List возвращает страницу товаров; pageNumber — 1-based.
	List(pageNumber, pageSize int) (ProductPage, error)
	// FindByTitleContaining возвращает товары, название которых содержит query
	// (чувствительно к регистру).
	FindByTitleContaining(query string) ([]Product, error)
	// FindByTitleAndCategory — выборка по подстроке названия и категории
	// с сортировкой по атрибуту (title/price/quantity) на стороне хранилища.
	FindByTitleAndCategory(query, categoryID, sortAttr string, pageNumber, pageSize int) (ProductPage, error)
}

// InventoryStore — узкая способность хранилища, нужная координатору:
// чтение и запись остатка по товару.
type InventoryStore interface {
	// GetQuantity возвращает текущий остаток или ErrProductNotFound.
	GetQuantity(id string) (int, error)
	// SetQuantity записывает остаток или возвращает ErrProductNotFound.
	SetQuantity(id string, quantity int) error
	// Exists проверяет наличие товара.
	Exists(id string) (bool, error)
}

// CategoryRepository описывает требования к хранилищу категорий.
type CategoryRepository interface {
	// Create сохраняет категорию; ErrCategoryAlreadyExists при дубликате названия.
	Create(category Category) error
	// Get возвращает категорию по идентификатору или ErrCategoryNotFound.
	Get(id string) (Category, error)
	// FindByTitle возвращает категорию по названию или ErrCategoryNotFound.
	FindByTitle(title string) (Category, error)
	// Save перезаписывает категорию с контролем уникальности названия.
	Save(category Category) error
	// Delete удаляет категорию или возвращает ErrCategoryNotFound.
	Delete(id string) error
	// List возвращает страницу категорий; pageNumber — 1-based.
	List(pageNumber, pageSize int) ([]Category, error)
}
