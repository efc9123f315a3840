package domain

import "time"

// AIProvider selects which external vision API analyzes uploaded documents.
type AIProvider string

const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderGemini AIProvider = "gemini"
	AIProviderClaude AIProvider = "claude"
)

// IsValid reports whether the provider is one of the supported backends.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOpenAI, AIProviderGemini, AIProviderClaude:
		return true
	}
	return false
}

// ReminderContact is someone to notify about upcoming bills.
type ReminderContact struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Settings is the per-user preferences blob: notification preferences,
// reminder lead times, contact lists and the AI provider choice. Persisted as
// a single owner-scoped row and read through the settings repository.
type Settings struct {
	UserID               string            `json:"userID"`
	NotificationsEnabled bool              `json:"notificationsEnabled"`
	ReminderLeadDays     []int             `json:"reminderLeadDays"`
	Contacts             []ReminderContact `json:"contacts"`
	AIProvider           AIProvider        `json:"aiProvider"`
	AICredential         string            `json:"-"` // never logged, never echoed
	UpdatedAt            time.Time         `json:"updatedAt"`
}

// DefaultSettings is what a user gets before saving any preferences.
func DefaultSettings(userID string) Settings {
	return Settings{
		UserID:               userID,
		NotificationsEnabled: true,
		ReminderLeadDays:     []int{3, 1},
		AIProvider:           AIProviderOpenAI,
	}
}
