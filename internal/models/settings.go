package models

import "time"

// UserSettings is the persistence model for the user_settings table.
// The preferences themselves live in a single JSONB column.
type UserSettings struct {
	UserID    string    `db:"user_id"`
	Settings  []byte    `db:"settings"` // JSONB blob
	UpdatedAt time.Time `db:"updated_at"`
}
