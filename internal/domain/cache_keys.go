package domain

import (
	"strconv"
	"strings"
)

// Ключи кеша собраны в одном месте, чтобы форматы не расползались по коду.
const cacheKeyPrefix = "PRODUCTS"

// CacheKeyProduct — ключ кеша одиночного товара.
func CacheKeyProduct(productID string) string {
	return cacheKeyPrefix + "_PRODUCT_" + productID
}

// CacheKeySearch — ключ кеша страницы результатов поиска. Порядок фильтров
// во входном списке намеренно сохраняется: два запроса с разным порядком
// фильтров кешируются отдельно.
func CacheKeySearch(q SearchQuery) string {
	filterParts := make([]string, 0, len(q.Filters))
	for _, f := range q.Filters {
		filterParts = append(filterParts, f.Key+"="+strings.Join(f.Values, ","))
	}

	return cacheKeyPrefix + "_SEARCH_" + q.Query +
		"_" + strings.Join(filterParts, "&") +
		"_" + string(q.Sort) +
		"_" + strconv.Itoa(q.PageSize) +
		"_" + strconv.Itoa(q.PageNumber)
}

// CacheKeySimpleSearch — ключ кеша для simpleSearch по категории и атрибуту сортировки.
func CacheKeySimpleSearch(query, categoryID, sortAttr string, pageSize, pageNumber int) string {
	return cacheKeyPrefix + "_SIMPLE_SEARCH_" + query +
		"_" + categoryID +
		"_" + sortAttr +
		"_" + strconv.Itoa(pageSize) +
		"_" + strconv.Itoa(pageNumber)
}
