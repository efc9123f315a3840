package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	"github.com/meuboleto/meuboleto_backend/internal/models"
)

type PgxSettingsRepository struct {
	db *pgxpool.Pool
}

func newPgxSettingsRepository(db *pgxpool.Pool) portsrepo.SettingsRepository {
	return &PgxSettingsRepository{db: db}
}

// Ensure PgxSettingsRepository implements portsrepo.SettingsRepository
var _ portsrepo.SettingsRepository = (*PgxSettingsRepository)(nil)

// settingsBlob is the JSONB persistence shape. The domain struct hides the
// AI credential from JSON marshalling, so the blob names it explicitly.
type settingsBlob struct {
	NotificationsEnabled bool                     `json:"notificationsEnabled"`
	ReminderLeadDays     []int                    `json:"reminderLeadDays"`
	Contacts             []domain.ReminderContact `json:"contacts,omitempty"`
	AIProvider           string                   `json:"aiProvider"`
	AICredential         string                   `json:"aiCredential,omitempty"`
}

func toSettingsBlob(d domain.Settings) settingsBlob {
	return settingsBlob{
		NotificationsEnabled: d.NotificationsEnabled,
		ReminderLeadDays:     d.ReminderLeadDays,
		Contacts:             d.Contacts,
		AIProvider:           string(d.AIProvider),
		AICredential:         d.AICredential,
	}
}

func toDomainSettings(m models.UserSettings) (domain.Settings, error) {
	var blob settingsBlob
	if err := json.Unmarshal(m.Settings, &blob); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to unmarshal settings blob: %w", err)
	}
	return domain.Settings{
		UserID:               m.UserID,
		NotificationsEnabled: blob.NotificationsEnabled,
		ReminderLeadDays:     blob.ReminderLeadDays,
		Contacts:             blob.Contacts,
		AIProvider:           domain.AIProvider(blob.AIProvider),
		AICredential:         blob.AICredential,
		UpdatedAt:            m.UpdatedAt,
	}, nil
}

func (r *PgxSettingsRepository) FindSettingsByUser(ctx context.Context, userID string) (*domain.Settings, error) {
	query := `
		SELECT user_id, settings, updated_at
		FROM user_settings
		WHERE user_id = $1;
	`
	var modelSettings models.UserSettings
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&modelSettings.UserID,
		&modelSettings.Settings,
		&modelSettings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find settings for user %s: %w", userID, err)
	}

	domainSettings, err := toDomainSettings(modelSettings)
	if err != nil {
		return nil, err
	}
	return &domainSettings, nil
}

func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	blob, err := json.Marshal(toSettingsBlob(settings))
	if err != nil {
		return fmt.Errorf("failed to marshal settings blob: %w", err)
	}

	updatedAt := settings.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	query := `
        INSERT INTO user_settings (user_id, settings, updated_at)
        VALUES ($1, $2, $3)
        ON CONFLICT (user_id) DO UPDATE SET
            settings = EXCLUDED.settings,
            updated_at = EXCLUDED.updated_at;
    `
	if _, err := r.db.Exec(ctx, query, settings.UserID, blob, updatedAt); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
