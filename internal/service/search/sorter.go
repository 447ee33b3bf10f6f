package search

import (
	"fmt"
	"sort"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// Sorter — стратегия упорядочивания кандидатов. Сортировка стабильная:
// товары с равной ценой сохраняют исходный относительный порядок.
type Sorter interface {
	Sort(products []domain.Product) []domain.Product
}

func sorterFor(order domain.SortOrder) (Sorter, error) {
	switch order {
	case domain.SortPriceLowToHigh:
		return priceLowToHighSorter{}, nil
	case domain.SortPriceHighToLow:
		return priceHighToLowSorter{}, nil
	default:
		return nil, fmt.Errorf("sort %q: %w", order, domain.ErrUnknownSortOrder)
	}
}

type priceLowToHighSorter struct{}

func (priceLowToHighSorter) Sort(products []domain.Product) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})
	return sorted
}

type priceHighToLowSorter struct{}

func (priceHighToLowSorter) Sort(products []domain.Product) []domain.Product {
	sorted := make([]domain.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price > sorted[j].Price
	})
	return sorted
}
