package domain

// SortOrder задаёт закрытый набор стратегий сортировки результатов поиска.
type SortOrder string

const (
	// SortPriceLowToHigh — по возрастанию цены.
	SortPriceLowToHigh SortOrder = "PRICE_LOW_TO_HIGH"
	// SortPriceHighToLow — по убыванию цены.
	SortPriceHighToLow SortOrder = "PRICE_HIGH_TO_LOW"
)

// FilterSpec — именованная стратегия фильтрации и список допустимых значений.
type FilterSpec struct {
	Key    string   `json:"key"`
	Values []string `json:"values"`
}

// SearchQuery — полная форма поискового запроса. Её каноническая строка
// служит ключом SearchResultCache, поэтому порядок фильтров значим.
type SearchQuery struct {
	Query      string       `json:"query"`
	Filters    []FilterSpec `json:"filters"`
	Sort       SortOrder    `json:"sort"`
	PageSize   int          `json:"page_size"`
	PageNumber int          `json:"page_number"`
}

// Validate проверяет границы пагинации запроса.
func (q SearchQuery) Validate() error {
	if q.PageNumber < 1 || q.PageSize < 1 {
		return ErrPageInvalid
	}
	return nil
}
