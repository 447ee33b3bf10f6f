package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/hemantkumar00/product-category-service/internal/domain"
	"github.com/hemantkumar00/product-category-service/internal/service/category"
	"github.com/hemantkumar00/product-category-service/internal/service/inventory"
	"github.com/hemantkumar00/product-category-service/internal/service/product"
	"github.com/hemantkumar00/product-category-service/internal/service/search"
)

// Handler — HTTP-обработчики каталога. Знает только о сервисном слое.
type Handler struct {
	products   *product.Service
	categories *category.Service
	inventory  *inventory.Coordinator
	search     *search.Service
	logger     *log.Entry
}

// NewHandler создаёт набор HTTP-обработчиков.
func NewHandler(
	products *product.Service,
	categories *category.Service,
	inventoryCoordinator *inventory.Coordinator,
	searchService *search.Service,
	logger *log.Entry,
) *Handler {
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	return &Handler{
		products:   products,
		categories: categories,
		inventory:  inventoryCoordinator,
		search:     searchService,
		logger:     logger,
	}
}

// createProduct обрабатывает POST /products.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var p domain.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.products.Create(r.Context(), p)
	if err != nil {
		h.logger.WithError(err).Warn("create product failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getProduct обрабатывает GET /products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// productPatch — частичное обновление: отсутствующее поле не меняется.
type productPatch struct {
	Title       *string  `json:"title"`
	Price       *float64 `json:"price"`
	Description *string  `json:"description"`
	ImgURL      *string  `json:"img_url"`
	Quantity    *int     `json:"quantity"`
	CategoryID  *string  `json:"category_id"`
}

// updateProduct обрабатывает PATCH /products/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var patch productPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	updated, err := h.products.UpdateProduct(r.Context(), chi.URLParam(r, "id"), product.Update{
		Title:       patch.Title,
		Price:       patch.Price,
		Description: patch.Description,
		ImgURL:      patch.ImgURL,
		Quantity:    patch.Quantity,
		CategoryID:  patch.CategoryID,
	})
	if err != nil {
		h.logger.WithError(err).Warn("update product failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteProduct обрабатывает DELETE /products/{id}.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listProducts обрабатывает GET /products?page=&size=.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	pageNumber := queryInt(r, "page", 1)
	pageSize := queryInt(r, "size", 20)

	page, err := h.products.List(r.Context(), pageNumber, pageSize)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

// getInventory обрабатывает GET /products/inventory/{id}.
// Остаток читается мимо кеша: для него важна актуальность, не скорость.
func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	quantity, err := h.products.GetInventory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"quantity": quantity})
}

// inventoryAdjustRequest — батч списаний «товар → количество».
type inventoryAdjustRequest struct {
	Products map[string]int `json:"products"`
}

// adjustInventory обрабатывает PATCH /products/inventory: атомарное списание
// остатков по всему батчу сразу.
func (h *Handler) adjustInventory(w http.ResponseWriter, r *http.Request) {
	var req inventoryAdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := h.inventory.Adjust(r.Context(), req.Products); err != nil {
		h.logger.WithError(err).Warn("inventory adjustment rejected")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

// queryInt читает целочисленный query-параметр, возвращая fallback при отсутствии.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
