package services

import (
	"context"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/meuboleto/meuboleto_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data.
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data.
type UserWriterSvc interface {
	// RegisterUser creates a new local user with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// CreateOAuthUser finds or creates a user from a validated OAuth identity.
	CreateOAuthUser(ctx context.Context, name, email string, provider domain.AuthProvider, providerUserID string, emailVerified bool) (*domain.User, error)

	// UpdateUser updates an existing user's profile.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// UpdateRefreshToken stores the hashed refresh token details for a user.
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken clears the refresh token for a user.
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserLifecycleSvc defines operations for managing user lifecycle.
type UserLifecycleSvc interface {
	// DeleteUser marks a user as deleted (soft delete).
	DeleteUser(ctx context.Context, userID string) error
}

// UserAuthSvc defines operations for user authentication and recovery.
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)

	// InitiatePasswordReset issues a single-use, expiring reset token for the
	// account registered under email. The raw token is returned for
	// out-of-band delivery; only its hash is stored.
	InitiatePasswordReset(ctx context.Context, email string) (string, error)

	// CompletePasswordReset validates the reset token and replaces the
	// user's password.
	CompletePasswordReset(ctx context.Context, email, token, newPassword string) error
}

// ResetTokenSender delivers a freshly issued password-reset token to the
// account holder out of band. The stored hash is useless without this
// delivery, so InitiatePasswordReset fails when sending fails.
type ResetTokenSender interface {
	// SendResetToken delivers the raw reset token to the given email address.
	SendResetToken(ctx context.Context, email string, rawToken string) error
}

// UserSvcFacade combines all user-related service interfaces.
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
}
