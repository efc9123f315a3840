package services

import (
	"context"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// ReportSvcFacade builds and renders the exported bill report.
type ReportSvcFacade interface {
	// BuildReport filters the user's bills to the closed due-date interval
	// [start, end] and computes interval-scoped totals. Zero start or end
	// fails with apperrors.ErrMissingRange.
	BuildReport(ctx context.Context, userID string, start, end time.Time) (*domain.BillReport, error)

	// RenderPDF renders a built report into a multi-page PDF document.
	RenderPDF(ctx context.Context, report *domain.BillReport) ([]byte, error)
}
