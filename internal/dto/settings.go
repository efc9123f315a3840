package dto

import (
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// ContactRequest is one reminder contact in a settings update.
type ContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,e164"`
}

// UpdateSettingsRequest replaces the user's preferences blob. Cross-field
// rules are enforced with go-playground/validator.
type UpdateSettingsRequest struct {
	NotificationsEnabled bool             `json:"notificationsEnabled"`
	ReminderLeadDays     []int            `json:"reminderLeadDays" validate:"max=5,dive,gte=0,lte=30"`
	Contacts             []ContactRequest `json:"contacts" validate:"max=10,dive"`
	AIProvider           string           `json:"aiProvider" validate:"required,oneof=openai gemini claude"`
	AICredential         *string          `json:"aiCredential"` // nil keeps the stored credential
}

// SettingsResponse echoes the stored settings. The AI credential itself is
// never returned, only whether one is configured.
type SettingsResponse struct {
	NotificationsEnabled bool                     `json:"notificationsEnabled"`
	ReminderLeadDays     []int                    `json:"reminderLeadDays"`
	Contacts             []domain.ReminderContact `json:"contacts"`
	AIProvider           domain.AIProvider        `json:"aiProvider"`
	HasAICredential      bool                     `json:"hasAICredential"`
	UpdatedAt            time.Time                `json:"updatedAt"`
}

// ToSettingsResponse converts domain.Settings to its response DTO.
func ToSettingsResponse(s *domain.Settings) SettingsResponse {
	return SettingsResponse{
		NotificationsEnabled: s.NotificationsEnabled,
		ReminderLeadDays:     s.ReminderLeadDays,
		Contacts:             s.Contacts,
		AIProvider:           s.AIProvider,
		HasAICredential:      s.AICredential != "",
		UpdatedAt:            s.UpdatedAt,
	}
}
