package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/middleware"
)

// logResetTokenSender writes the recovery link to the application log. It
// stands in for an SMTP integration; operators of self-hosted installs relay
// the link to the user from the log stream.
type logResetTokenSender struct {
	frontendBaseURL string
}

// NewLogResetTokenSender creates a reset-token sender that logs the recovery link.
func NewLogResetTokenSender(frontendBaseURL string) portssvc.ResetTokenSender {
	return &logResetTokenSender{
		frontendBaseURL: frontendBaseURL,
	}
}

var _ portssvc.ResetTokenSender = (*logResetTokenSender)(nil)

func (s *logResetTokenSender) SendResetToken(ctx context.Context, email string, rawToken string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	link := fmt.Sprintf("%s/reset-password?email=%s&token=%s",
		s.frontendBaseURL, url.QueryEscape(email), url.QueryEscape(rawToken))
	logger.Info("Password recovery link issued",
		slog.String("email", email),
		slog.String("link", link))
	return nil
}
