// Package aiprovider integrates the three interchangeable vision APIs used to
// extract structured bill fields from an uploaded document. The backends
// differ only in authentication header shape and payload envelope; all return
// free-form text expected to embed a JSON object.
package aiprovider

import (
	"context"
	"fmt"
	"net/http"

	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

// ExtractionPrompt is the fixed structured-extraction prompt submitted with
// every document.
const ExtractionPrompt = `You are analyzing a Brazilian bill document (boleto, invoice or utility bill).
Extract the following fields and answer with a single JSON object, nothing else:
{
  "beneficiary": "payee name as printed",
  "amount": 0.0,
  "dueDate": "YYYY-MM-DD",
  "category": "one of: Energia, Agua, Internet, Telefone, Aluguel, Cartao, Educacao, Saude, Outros",
  "confidence": 0.0,
  "summary": "one short sentence describing the bill",
  "barcode": "the linha digitavel digits if visible, otherwise omit"
}
Use null for fields you cannot read. Amounts use a dot as decimal separator.`

// Client submits a prepared document image for extraction and returns the raw
// model reply text. Implementations perform exactly one request; retrying is
// the caller's (human) decision.
type Client interface {
	SubmitForExtraction(ctx context.Context, doc domain.RenderedDocument, prompt string) (string, error)
}

// NewClient returns the client for the configured provider.
func NewClient(provider domain.AIProvider, credential string, httpClient *http.Client) (Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	switch provider {
	case domain.AIProviderOpenAI:
		return &openAIClient{apiKey: credential, httpClient: httpClient}, nil
	case domain.AIProviderGemini:
		return &geminiClient{apiKey: credential, httpClient: httpClient}, nil
	case domain.AIProviderClaude:
		return &claudeClient{apiKey: credential, httpClient: httpClient}, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", provider)
	}
}
