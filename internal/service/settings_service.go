package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freshfood/internal/config"
	"freshfood/internal/domain"
	"freshfood/internal/repository"
)

// SettingsService exposes store-wide settings with configured fallbacks
type SettingsService interface {
	Get(ctx context.Context) (*domain.StoreSettings, error)
	Update(ctx context.Context, settings domain.StoreSettings) (*domain.StoreSettings, error)
	ShippingFee(ctx context.Context) float64
}

type settingsService struct {
	settings repository.SettingsRepository
	defaults config.StoreConfig
}

// NewSettingsService creates a new instance of SettingsService
func NewSettingsService(settings repository.SettingsRepository, defaults config.StoreConfig) SettingsService {
	return &settingsService{settings: settings, defaults: defaults}
}

// Get returns the stored settings, or the configured defaults when no
// settings document exists yet.
func (s *settingsService) Get(ctx context.Context) (*domain.StoreSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			return &domain.StoreSettings{
				ID:          repository.StoreSettingsID,
				Currency:    s.defaults.Currency,
				ShippingFee: s.defaults.ShippingFee,
			}, nil
		}
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}
	return settings, nil
}

// Update upserts the settings document.
func (s *settingsService) Update(ctx context.Context, settings domain.StoreSettings) (*domain.StoreSettings, error) {
	settings.UpdatedAt = time.Now()
	if err := s.settings.Save(ctx, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// ShippingFee resolves the flat shipping fee, falling back to the
// configured default when the store is unreachable.
func (s *settingsService) ShippingFee(ctx context.Context) float64 {
	settings, err := s.Get(ctx)
	if err != nil {
		return s.defaults.ShippingFee
	}
	return settings.ShippingFee
}
