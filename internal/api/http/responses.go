package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// errorBody — единый конверт ошибки для всех обработчиков.
type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code, details string) {
	writeJSON(w, status, errorBody{Error: code, Details: details})
}

// writeDomainError переводит доменную ошибку в HTTP-статус.
func writeDomainError(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), codeFor(err), err.Error())
}

var badRequestErrors = []error{
	domain.ErrProductTitleRequired,
	domain.ErrProductPriceInvalid,
	domain.ErrProductDescriptionRequired,
	domain.ErrProductImageRequired,
	domain.ErrProductQuantityInvalid,
	domain.ErrProductCategoryRequired,
	domain.ErrCategoryTitleRequired,
	domain.ErrBatchQuantityInvalid,
	domain.ErrBatchEmpty,
	domain.ErrPageInvalid,
	domain.ErrUnknownFilterKey,
	domain.ErrUnknownSortOrder,
}

var conflictErrors = []error{
	domain.ErrCategoryAlreadyExists,
	domain.ErrInsufficientInventory,
	domain.ErrLockTimeout,
}

func statusFor(err error) int {
	switch {
	case domain.IsNotFound(err) || errors.Is(err, domain.ErrNoProductsFound):
		return http.StatusNotFound
	case matchesAny(err, conflictErrors):
		return http.StatusConflict
	case matchesAny(err, badRequestErrors):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error) string {
	switch statusFor(err) {
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	case http.StatusBadRequest:
		return "validation_error"
	default:
		return "internal_error"
	}
}

func matchesAny(err error, sentinels []error) bool {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
