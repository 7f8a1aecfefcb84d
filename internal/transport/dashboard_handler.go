package transport

import (
	"net/http"

	"freshfood/internal/domain"
	"freshfood/internal/middleware"
	"freshfood/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// UpdateSettingsRequest changes store-wide settings (admin)
type UpdateSettingsRequest struct {
	StoreName   string  `json:"store_name" validate:"required"`
	Currency    string  `json:"currency" validate:"required,len=3"`
	ShippingFee float64 `json:"shipping_fee" validate:"gte=0"`
}

// DashboardHandler serves the admin dashboard and store settings
type DashboardHandler struct {
	statsService    service.StatsService
	settingsService service.SettingsService
	logger          *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(statsService service.StatsService, settingsService service.SettingsService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		statsService:    statsService,
		settingsService: settingsService,
		logger:          logger,
	}
}

// RegisterRoutes registers the admin dashboard and settings routes
func (h *DashboardHandler) RegisterRoutes(r chi.Router, adminStack []func(http.Handler) http.Handler) {
	r.Route("/api/admin", func(r chi.Router) {
		for _, mw := range adminStack {
			r.Use(mw)
		}
		r.Get("/dashboard", h.Dashboard)
		r.Get("/settings", h.GetSettings)
		r.Put("/settings", h.UpdateSettings)
	})
}

// Dashboard returns the recomputed dashboard aggregate
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statsService.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute dashboard stats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch dashboard statistics")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// GetSettings returns the store settings
func (h *DashboardHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsService.Get(r.Context())
	if err != nil {
		h.logger.Error("Failed to load store settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to fetch settings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}

// UpdateSettings upserts the store settings document
func (h *DashboardHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	settings, err := h.settingsService.Update(r.Context(), domain.StoreSettings{
		StoreName:   req.StoreName,
		Currency:    req.Currency,
		ShippingFee: req.ShippingFee,
	})
	if err != nil {
		h.logger.Error("Failed to update store settings", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update settings")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, settings)
}
