package repositories

import (
	"context"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// SettingsRepository is the narrow read/write interface for per-user
// preference blobs. Components never touch settings storage directly.
type SettingsRepository interface {
	// FindSettingsByUser retrieves the settings blob for a user. Returns
	// apperrors.ErrNotFound if the user never saved settings.
	FindSettingsByUser(ctx context.Context, userID string) (*domain.Settings, error)

	// SaveSettings upserts the settings blob for a user.
	SaveSettings(ctx context.Context, settings domain.Settings) error
}
