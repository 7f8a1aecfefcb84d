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

// CategoryHandler handles HTTP requests for product categories
type CategoryHandler struct {
	categoryService service.CategoryService
	logger          *zap.Logger
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService service.CategoryService, logger *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// RegisterRoutes registers the public category listing and the admin
// category management routes.
func (h *CategoryHandler) RegisterRoutes(r chi.Router, adminStack []func(http.Handler) http.Handler) {
	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
	})

	r.Route("/api/admin/categories", func(r chi.Router) {
		for _, mw := range adminStack {
			r.Use(mw)
		}
		r.Post("/", h.Create)
	})
}

// List returns every category
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch categories")
		return
	}
	middleware.RespondWithJSON(w, http.StatusOK, categories)
}

// Get returns a single category by id
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	category, err := h.categoryService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "category not found")
			return
		}
		h.logger.Error("Failed to get category", zap.Error(err), zap.String("id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch category")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, category)
}

// Create adds a new category (admin)
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCategoryInput

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.categoryService.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			middleware.RespondWithError(w, http.StatusConflict, "category with this name already exists")
			return
		}
		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.String("category_id", category.ID), zap.String("name", category.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, category)
}
