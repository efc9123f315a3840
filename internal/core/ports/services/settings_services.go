package services

import (
	"context"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
)

// SettingsSvcFacade manages the per-user preferences blob.
type SettingsSvcFacade interface {
	// GetSettings returns the user's saved settings, or the defaults if the
	// user never saved any.
	GetSettings(ctx context.Context, userID string) (*domain.Settings, error)

	// UpdateSettings replaces the user's settings blob.
	UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.Settings, error)
}
