package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// Filter — именованная стратегия фильтрации: из кандидатов остаются товары,
// подходящие хотя бы под одно из допустимых значений.
type Filter interface {
	Apply(products []domain.Product, allowedValues []string) []domain.Product
}

// Реестр стратегий закрыт: незарегистрированный ключ — ошибка входных данных,
// а не тихий пропуск фильтра.
var filterRegistry = map[string]Filter{
	"description": descriptionFilter{},
	"pricelessly": priceAndTitleFilter{},
}

func filterByKey(key string) (Filter, error) {
	filter, ok := filterRegistry[key]
	if !ok {
		return nil, fmt.Errorf("filter %q: %w", key, domain.ErrUnknownFilterKey)
	}
	return filter, nil
}

// descriptionFilter оставляет товары, описание которых содержит одно из значений.
type descriptionFilter struct{}

func (descriptionFilter) Apply(products []domain.Product, allowedValues []string) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, product := range products {
		for _, value := range allowedValues {
			if strings.Contains(product.Description, value) {
				result = append(result, product)
				break
			}
		}
	}
	return result
}

// priceAndTitleFilter оставляет товары, у которых значение встречается в
// названии или в десятичной записи цены.
type priceAndTitleFilter struct{}

func (priceAndTitleFilter) Apply(products []domain.Product, allowedValues []string) []domain.Product {
	result := make([]domain.Product, 0, len(products))
	for _, product := range products {
		price := strconv.FormatFloat(product.Price, 'f', -1, 64)
		for _, value := range allowedValues {
			if strings.Contains(product.Title, value) || strings.Contains(price, value) {
				result = append(result, product)
				break
			}
		}
	}
	return result
}
