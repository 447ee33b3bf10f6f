package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hemantkumar00/product-category-service/internal/domain"
)

// createCategory обрабатывает POST /categories.
func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var c domain.Category
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	created, err := h.categories.Create(r.Context(), c)
	if err != nil {
		h.logger.WithError(err).Warn("create category failed")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getCategory обрабатывает GET /categories/{id}.
func (h *Handler) getCategory(w http.ResponseWriter, r *http.Request) {
	c, err := h.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateCategory обрабатывает PATCH /categories/{id}.
func (h *Handler) updateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	updated, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), body.Title)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// deleteCategory обрабатывает DELETE /categories/{id}.
func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// listCategories обрабатывает GET /categories?page=&size=.
func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context(), queryInt(r, "page", 1), queryInt(r, "size", 20))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
