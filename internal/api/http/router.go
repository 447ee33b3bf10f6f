package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// NewRouter настраивает маршруты каталога поверх готового Handler.
// healthHandler может быть nil — тогда /healthz не регистрируется.
func NewRouter(handler *Handler, healthHandler http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Route("/products", func(r chi.Router) {
		r.Post("/", handler.createProduct)
		r.Get("/", handler.listProducts)
		r.Patch("/inventory", handler.adjustInventory)
		r.Get("/inventory/{id}", handler.getInventory)
		r.Get("/{id}", handler.getProduct)
		r.Patch("/{id}", handler.updateProduct)
		r.Delete("/{id}", handler.deleteProduct)
	})

	router.Route("/categories", func(r chi.Router) {
		r.Post("/", handler.createCategory)
		r.Get("/", handler.listCategories)
		r.Get("/{id}", handler.getCategory)
		r.Patch("/{id}", handler.updateCategory)
		r.Delete("/{id}", handler.deleteCategory)
	})

	router.Route("/search", func(r chi.Router) {
		r.Get("/", handler.searchProducts)
		r.Get("/byCategory", handler.simpleSearchProducts)
	})

	if healthHandler != nil {
		router.Method(http.MethodGet, "/healthz", healthHandler)
	}

	return router
}
