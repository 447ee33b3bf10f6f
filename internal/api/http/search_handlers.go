package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// searchProducts обрабатывает GET /search.
//
// Параметр filters — JSON-массив спецификаций [{"key":...,"values":[...]}];
// порядок элементов определяет порядок применения фильтров и входит в кеш-ключ.
func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	var filters []domain.FilterSpec
	if raw := params.Get("filters"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &filters); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "filters: "+err.Error())
			return
		}
	}

	q := domain.SearchQuery{
		Query:      params.Get("query"),
		Filters:    filters,
		Sort:       domain.SortOrder(params.Get("sortBy")),
		PageSize:   queryInt(r, "pageSize", 20),
		PageNumber: queryInt(r, "pageNumber", 1),
	}

	page, err := h.search.Search(r.Context(), q)
	if err != nil {
		h.logger.WithError(err).WithField("query", q.Query).Debug("search rejected")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// simpleSearchProducts обрабатывает GET /search/byCategory.
func (h *Handler) simpleSearchProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	page, err := h.search.SimpleSearch(
		r.Context(),
		params.Get("query"),
		params.Get("categoryId"),
		queryInt(r, "pageSize", 20),
		queryInt(r, "pageNumber", 1),
		params.Get("sortingAttribute"),
	)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}
