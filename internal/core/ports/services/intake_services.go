package services

import (
	"context"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// DocumentUpload is a user-submitted document entering the intake pipeline.
type DocumentUpload struct {
	Filename string
	Data     []byte
}

// IntakeResult is the outcome of a successful analysis: a candidate awaiting
// explicit user confirmation, tagged with how the forwarded image was produced.
type IntakeResult struct {
	Candidate  domain.ExtractionCandidate
	RenderKind domain.DocumentRenderKind
}

// IntakeSvcFacade runs the upload -> AI-extraction flow. One attempt per
// call, no retries; failures are reported through the apperrors taxonomy
// (ErrUnsupportedFormat, ErrAIParse, ErrIncompleteExtraction, ErrRemoteRequest).
type IntakeSvcFacade interface {
	// AnalyzeDocument validates the upload, prepares the image payload and
	// submits it to the user's configured AI provider. It never persists a
	// bill record.
	AnalyzeDocument(ctx context.Context, userID string, upload DocumentUpload) (*IntakeResult, error)
}
