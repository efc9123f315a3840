package models

import (
	"database/sql"
	"time"
)

// User is the persistence model for the users table.
type User struct {
	UserID         string         `db:"user_id"`
	Email          string         `db:"email"`
	Name           string         `db:"name"`
	PasswordHash   sql.NullString `db:"password_hash"` // NULL for OAuth-only users
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	EmailVerified  bool           `db:"email_verified"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`

	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`

	ResetTokenHash       sql.NullString `db:"reset_token_hash"`
	ResetTokenExpiryTime sql.NullTime   `db:"reset_token_expiry_time"`
}
