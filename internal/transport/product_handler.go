package transport

import (
	"errors"
	"net/http"

	"freshfood/internal/middleware"
	"freshfood/internal/repository"
	"freshfood/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers the storefront catalog routes and, behind the
// admin middleware stack, the back-office CRUD routes.
func (h *ProductHandler) RegisterRoutes(r chi.Router, adminStack []func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListActive)
		r.Get("/{id}", h.Get)
		r.Get("/slug/{slug}", h.GetBySlug)
	})

	r.Route("/api/admin/products", func(r chi.Router) {
		for _, mw := range adminStack {
			r.Use(mw)
		}
		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/variants/{variantId}", h.UpdateVariant)
		r.Delete("/{id}", h.Delete)
	})
}

// ListActive returns the storefront catalog (active products only)
func (h *ProductHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListActive(r.Context())
	if err != nil {
		h.logger.Error("Failed to list active products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// ListAll returns every product, including inactive ones (admin)
func (h *ProductHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch products")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product by id
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.productService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err), zap.String("id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// GetBySlug returns a single product by slug
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.productService.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product by slug", zap.Error(err), zap.String("slug", slug))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Create adds a new product (admin)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProductInput

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	createdBy, _ := middleware.GetUserID(r.Context())

	product, err := h.productService.Create(r.Context(), req, createdBy)
	if err != nil {
		if errors.Is(err, service.ErrProductNoVariants) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.String("product_id", product.ID), zap.String("name", product.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// Update applies a partial update to a product (admin)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.UpdateProductInput
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err), zap.String("id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// UpdateVariant patches a single variant on a product (admin)
func (h *ProductHandler) UpdateVariant(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")
	variantID := chi.URLParam(r, "variantId")

	var req service.VariantPatch
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.UpdateVariant(r.Context(), productID, variantID, req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrVariantNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "variant not found")
		default:
			h.logger.Error("Failed to update variant", zap.Error(err),
				zap.String("product_id", productID),
				zap.String("variant_id", variantID),
			)
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update variant")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Delete soft-deletes a product (admin)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.productService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err), zap.String("id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.logger.Info("Product deactivated", zap.String("product_id", id))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deactivated"})
}
