package domain

import "errors"

var (
	// Ошибка отсутствующего или пустого названия товара.
	ErrProductTitleRequired = errors.New("product title is required")
	// Ошибка неположительной цены товара.
	ErrProductPriceInvalid = errors.New("product price must be greater than zero")
	// Ошибка отсутствующего описания товара.
	ErrProductDescriptionRequired = errors.New("product description is required")
	// Ошибка отсутствующей ссылки на изображение.
	ErrProductImageRequired = errors.New("product image url is required")
	// Ошибка отрицательного остатка товара.
	ErrProductQuantityInvalid = errors.New("product quantity must not be negative")
	// Ошибка отсутствующей категории у товара.
	ErrProductCategoryRequired = errors.New("product category is required")
	// Ошибка отсутствующего или пустого названия категории.
	ErrCategoryTitleRequired = errors.New("category title is required")
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound возвращается, если категория не найдена.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryAlreadyExists — категория с таким названием уже есть.
	ErrCategoryAlreadyExists = errors.New("category with this title already exists")
	// ErrBatchQuantityInvalid — в батче указано нулевое или отрицательное количество.
	ErrBatchQuantityInvalid = errors.New("batch quantity must be greater than zero")
	// ErrBatchEmpty — батч не содержит ни одной позиции.
	ErrBatchEmpty = errors.New("adjustment batch must not be empty")
	// ErrInsufficientInventory — остатка товара не хватает для списания.
	ErrInsufficientInventory = errors.New("insufficient inventory")
	// ErrLockTimeout — не удалось получить блокировку за отведённое время.
	ErrLockTimeout = errors.New("lock acquisition timed out")
	// ErrNoProductsFound — поиск не нашёл ни одного кандидата по запросу.
	ErrNoProductsFound = errors.New("no products found")
	// ErrUnknownFilterKey — запрошена незарегистрированная стратегия фильтрации.
	ErrUnknownFilterKey = errors.New("unknown filter key")
	// ErrUnknownSortOrder — запрошена стратегия сортировки вне закрытого перечня.
	ErrUnknownSortOrder = errors.New("unknown sort order")
	// ErrPageInvalid — некорректные параметры страницы (номер или размер < 1).
	ErrPageInvalid = errors.New("page number and page size must be greater than zero")
	// ErrCacheMiss сигнализирует об отсутствии записи в кеше.
	ErrCacheMiss = errors.New("cache miss")
)

// IsNotFound проверяет, относится ли ошибка к отсутствующей сущности.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrCategoryNotFound)
}
