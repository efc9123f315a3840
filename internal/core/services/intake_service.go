package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/aiprovider"
	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	portssvc "github.com/meuboleto/meuboleto_backend/internal/core/ports/services"
	"github.com/meuboleto/meuboleto_backend/internal/docimage"
	"github.com/meuboleto/meuboleto_backend/internal/middleware"
)

// acceptedMediaTypes are the only upload formats the pipeline admits.
var acceptedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

// clientFactory builds the AI client for a provider; swapped out in tests.
type clientFactory func(provider domain.AIProvider, credential string, httpClient *http.Client) (aiprovider.Client, error)

// intakeService runs the document intake pipeline: validate, prepare image,
// submit to the configured provider, parse the reply. One attempt, no retries.
type intakeService struct {
	settingsSvc   portssvc.SettingsSvcFacade
	newClient     clientFactory
	httpClient    *http.Client
	maxUploadSize int64
	now           func() time.Time
}

// IntakeServiceOption is a functional option for configuring the intake service.
type IntakeServiceOption func(*intakeService)

// WithClientFactory overrides how provider clients are built, used by tests.
func WithClientFactory(factory clientFactory) IntakeServiceOption {
	return func(s *intakeService) {
		s.newClient = factory
	}
}

// WithIntakeClock overrides the clock, used by tests.
func WithIntakeClock(now func() time.Time) IntakeServiceOption {
	return func(s *intakeService) {
		s.now = now
	}
}

// NewIntakeService creates a new document intake service.
func NewIntakeService(settingsSvc portssvc.SettingsSvcFacade, maxUploadSize int64, aiTimeout time.Duration, options ...IntakeServiceOption) portssvc.IntakeSvcFacade {
	svc := &intakeService{
		settingsSvc:   settingsSvc,
		newClient:     aiprovider.NewClient,
		httpClient:    &http.Client{Timeout: aiTimeout},
		maxUploadSize: maxUploadSize,
		now:           time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.IntakeSvcFacade = (*intakeService)(nil)

func (s *intakeService) AnalyzeDocument(ctx context.Context, userID string, upload portssvc.DocumentUpload) (*portssvc.IntakeResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Format and size gates run before anything touches the network.
	if int64(len(upload.Data)) > s.maxUploadSize {
		return nil, fmt.Errorf("%w: file is %d bytes, limit is %d", apperrors.ErrUnsupportedFormat, len(upload.Data), s.maxUploadSize)
	}
	media := http.DetectContentType(upload.Data)
	if !acceptedMediaTypes[media] {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnsupportedFormat, media)
	}

	settings, err := s.settingsSvc.GetSettings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings for analysis: %w", err)
	}
	if settings.AICredential == "" {
		return nil, fmt.Errorf("%w: provider %s", apperrors.ErrNoCredential, settings.AIProvider)
	}

	doc := docimage.Prepare(upload.Filename, upload.Data, media, s.now())
	if doc.Kind == domain.RenderPlaceholder {
		logger.Warn("PDF rasterization failed, forwarding placeholder image",
			slog.String("filename", upload.Filename))
	}

	client, err := s.newClient(settings.AIProvider, settings.AICredential, s.httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to build AI client: %w", err)
	}

	reply, err := client.SubmitForExtraction(ctx, doc, aiprovider.ExtractionPrompt)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}

	candidate, err := aiprovider.ParseExtraction(reply)
	if err != nil {
		return nil, fmt.Errorf("analysis reply unusable: %w", err)
	}

	logger.Info("Document analyzed",
		slog.String("provider", string(settings.AIProvider)),
		slog.String("render_kind", string(doc.Kind)),
		slog.Float64("confidence", candidate.Confidence))

	return &portssvc.IntakeResult{
		Candidate:  *candidate,
		RenderKind: doc.Kind,
	}, nil
}
