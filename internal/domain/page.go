package domain

// ProductPage — страница результатов с метаданными пагинации.
// Поля считаются один раз на uncached-пути и сериализуются в кеш как есть,
// чтобы закешированный и свежий ответы были неотличимы для вызывающего.
type ProductPage struct {
	Items         []Product `json:"items"`
	TotalElements int       `json:"total_elements"`
	TotalPages    int       `json:"total_pages"`
	PageNumber    int       `json:"page_number"`
	PageSize      int       `json:"page_size"`
}

// NewProductPage собирает страницу по срезу items и общему числу кандидатов.
// pageNumber — 1-based, как на внешней границе сервиса.
func NewProductPage(items []Product, total, pageNumber, pageSize int) ProductPage {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	if items == nil {
		items = []Product{}
	}
	return ProductPage{
		Items:         items,
		TotalElements: total,
		TotalPages:    totalPages,
		PageNumber:    pageNumber,
		PageSize:      pageSize,
	}
}

// EmptyPage возвращает явно пустую страницу: запрошенное смещение за пределами выборки —
// это не ошибка.
func EmptyPage(pageNumber, pageSize int) ProductPage {
	return NewProductPage(nil, 0, pageNumber, pageSize)
}
