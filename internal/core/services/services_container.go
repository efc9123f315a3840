package services

import (
	portsrepo "github.com/meuboleto/meuboleto_backend/internal/core/ports/repositories"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/platform/config"
)

// NewServiceContainer creates and initializes all application services,
// wiring them to the provided repositories and configuration.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	userService := NewUserService(repos.UserRepo, NewLogResetTokenSender(cfg.FrontendBaseURL), cfg.ResetTokenExpiryDuration)
	settingsService := NewSettingsService(repos.SettingsRepo)

	return &portssvc.ServiceContainer{
		Bill:               NewBillService(repos.BillRepo),
		Stats:              NewStatsService(repos.BillRepo),
		Intake:             NewIntakeService(settingsService, cfg.MaxUploadSizeBytes, cfg.AIRequestTimeout),
		Report:             NewReportService(repos.BillRepo),
		User:               userService,
		Settings:           settingsService,
		TokenService:       NewTokenService(cfg, userService),
		GoogleOAuthHandler: NewGoogleOAuthHandlerService(cfg),
	}
}
