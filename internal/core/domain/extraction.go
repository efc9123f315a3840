package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExtractionCandidate is the structured result the intake pipeline proposes
// from an uploaded document. It is surfaced to the user for confirmation and
// never written to the bill store by the pipeline itself.
type ExtractionCandidate struct {
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Category    string          `json:"category,omitempty"`
	Confidence  float64         `json:"confidence"`
	Summary     string          `json:"summary,omitempty"`
	Barcode     string          `json:"barcode,omitempty"` // digits only
}

// DocumentRenderKind tags how the forwarded image was produced.
type DocumentRenderKind string

const (
	// RenderRasterized means the PDF first page was actually rasterized.
	RenderRasterized DocumentRenderKind = "RASTERIZED"
	// RenderPlaceholder means rasterization failed and a synthesized blank
	// page was substituted. Degraded content, not an error.
	RenderPlaceholder DocumentRenderKind = "PLACEHOLDER"
	// RenderOriginal means the upload was already an image and forwarded as-is.
	RenderOriginal DocumentRenderKind = "ORIGINAL"
)

// RenderedDocument is the image payload forwarded to the AI provider,
// tagged so callers can distinguish degraded output.
type RenderedDocument struct {
	Kind  DocumentRenderKind
	Data  []byte // JPEG or PNG bytes
	Media string // MIME type of Data
}
