package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
)

// settingsService manages the per-user preferences blob behind the narrow
// settings repository.
type settingsService struct {
	settingsRepo portsrepo.SettingsRepository
	validate     *validator.Validate
	now          func() time.Time
}

// NewSettingsService creates a new settings service.
func NewSettingsService(settingsRepo portsrepo.SettingsRepository) portssvc.SettingsSvcFacade {
	return &settingsService{
		settingsRepo: settingsRepo,
		validate:     validator.New(),
		now:          time.Now,
	}
}

var _ portssvc.SettingsSvcFacade = (*settingsService)(nil)

func (s *settingsService) GetSettings(ctx context.Context, userID string) (*domain.Settings, error) {
	settings, err := s.settingsRepo.FindSettingsByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			defaults := domain.DefaultSettings(userID)
			return &defaults, nil
		}
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, userID string, req dto.UpdateSettingsRequest) (*domain.Settings, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	// Load current settings so an omitted credential keeps the stored one.
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return nil, err
	}

	contacts := make([]domain.ReminderContact, len(req.Contacts))
	for i, c := range req.Contacts {
		contacts[i] = domain.ReminderContact{Name: c.Name, Email: c.Email, Phone: c.Phone}
	}

	settings := domain.Settings{
		UserID:               userID,
		NotificationsEnabled: req.NotificationsEnabled,
		ReminderLeadDays:     req.ReminderLeadDays,
		Contacts:             contacts,
		AIProvider:           domain.AIProvider(req.AIProvider),
		AICredential:         current.AICredential,
		UpdatedAt:            s.now(),
	}
	if req.AICredential != nil {
		settings.AICredential = *req.AICredential
	}

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to save settings: %w", err)
	}
	return &settings, nil
}
