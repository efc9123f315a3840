package dto

import (
	"path/filepath"
	"strings"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ExtractionCandidateResponse is the parsed candidate surfaced for user
// confirmation. Nothing is saved until the user confirms via POST /bills.
type ExtractionCandidateResponse struct {
	Beneficiary string          `json:"beneficiary"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Category    string          `json:"category,omitempty"`
	Confidence  float64         `json:"confidence"`
	Summary     string          `json:"summary,omitempty"`
	Barcode     string          `json:"barcode,omitempty"`
}

// AnalyzeDocumentResponse is returned when analysis succeeds.
type AnalyzeDocumentResponse struct {
	Candidate  ExtractionCandidateResponse `json:"candidate"`
	RenderKind domain.DocumentRenderKind   `json:"renderKind"`
}

// AnalyzeFallback pre-seeds the manual-entry form after a failed or skipped
// analysis. Only the beneficiary guess derived from the filename is filled.
type AnalyzeFallback struct {
	Beneficiary string `json:"beneficiary"`
}

// AnalyzeErrorResponse distinguishes the failure paths: the client's guidance
// differs between an unparseable reply, an incomplete one, a rejected file
// and a missing credential.
type AnalyzeErrorResponse struct {
	Error     string          `json:"error"`
	ErrorCode string          `json:"errorCode"` // UNSUPPORTED_FORMAT | NO_CREDENTIAL | AI_PARSE | INCOMPLETE_EXTRACTION | REMOTE_REQUEST
	Fallback  AnalyzeFallback `json:"fallback"`
}

// ToExtractionCandidateResponse converts the domain candidate to its DTO.
func ToExtractionCandidateResponse(c domain.ExtractionCandidate) ExtractionCandidateResponse {
	return ExtractionCandidateResponse{
		Beneficiary: c.Beneficiary,
		Amount:      c.Amount,
		DueDate:     c.DueDate.Format(DateFormat),
		Category:    c.Category,
		Confidence:  c.Confidence,
		Summary:     c.Summary,
		Barcode:     c.Barcode,
	}
}

// BeneficiaryGuessFromFilename derives a beneficiary guess from an uploaded
// filename: extension stripped, separators replaced with spaces.
func BeneficiaryGuessFromFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(base)
	return strings.TrimSpace(base)
}
