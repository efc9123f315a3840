package aiprovider_test

import (
	"testing"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/aiprovider"
	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtraction_JSONEmbeddedInProse(t *testing.T) {
	reply := `Here is the result: {"beneficiary": "Acme Energia", "amount": 125.5, "dueDate": "2024-07-20", "category": "Energia", "confidence": 0.9, "summary": "Conta de luz."} Let me know if you need anything else.`

	candidate, err := aiprovider.ParseExtraction(reply)

	require.NoError(t, err)
	assert.Equal(t, "Acme Energia", candidate.Beneficiary)
	assert.Equal(t, "125.5", candidate.Amount.String())
	assert.Equal(t, time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC), candidate.DueDate)
	assert.Equal(t, "Energia", candidate.Category)
	assert.InDelta(t, 0.9, candidate.Confidence, 0.001)
	assert.Equal(t, "Conta de luz.", candidate.Summary)
}

func TestParseExtraction_FencedJSONBlock(t *testing.T) {
	reply := "```json\n{\"beneficiary\": \"Sabesp\", \"amount\": 88.2, \"dueDate\": \"2024-08-05\", \"confidence\": 0.8}\n```"

	candidate, err := aiprovider.ParseExtraction(reply)

	require.NoError(t, err)
	assert.Equal(t, "Sabesp", candidate.Beneficiary)
	assert.Equal(t, "88.2", candidate.Amount.String())
}

func TestParseExtraction_NoJSON(t *testing.T) {
	_, err := aiprovider.ParseExtraction("I am unable to read this document.")

	assert.ErrorIs(t, err, apperrors.ErrAIParse)
}

func TestParseExtraction_MissingFieldsListed(t *testing.T) {
	reply := `{"beneficiary": "", "amount": null, "dueDate": "2024-07-20", "confidence": 0.5}`

	_, err := aiprovider.ParseExtraction(reply)

	require.ErrorIs(t, err, apperrors.ErrIncompleteExtraction)
	assert.Contains(t, err.Error(), "beneficiary")
	assert.Contains(t, err.Error(), "amount")
	assert.NotContains(t, err.Error(), "dueDate")
}

func TestParseExtraction_BrazilianStringAmount(t *testing.T) {
	reply := `{"beneficiary": "Imobiliaria Central", "amount": "R$ 1.234,56", "dueDate": "2024-07-20", "confidence": 0.7}`

	candidate, err := aiprovider.ParseExtraction(reply)

	require.NoError(t, err)
	assert.Equal(t, "1234.56", candidate.Amount.String())
}

func TestParseExtraction_NegativeAmountRejected(t *testing.T) {
	reply := `{"beneficiary": "Acme", "amount": -10, "dueDate": "2024-07-20", "confidence": 0.7}`

	_, err := aiprovider.ParseExtraction(reply)

	assert.ErrorIs(t, err, apperrors.ErrIncompleteExtraction)
}

func TestParseExtraction_AlternateDateLayouts(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"brazilian slashes", "20/07/2024"},
		{"iso slashes", "2024/07/20"},
		{"brazilian dashes", "20-07-2024"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := `{"beneficiary": "Acme", "amount": 10, "dueDate": "` + tc.value + `", "confidence": 0.7}`

			candidate, err := aiprovider.ParseExtraction(reply)

			require.NoError(t, err)
			assert.Equal(t, time.Date(2024, time.July, 20, 0, 0, 0, 0, time.UTC), candidate.DueDate)
		})
	}
}

func TestParseExtraction_BarcodeNormalized(t *testing.T) {
	reply := `{"beneficiary": "Banco Itau", "amount": 450, "dueDate": "2024-07-20", "confidence": 0.85, "barcode": "34191.79001 01043.510047 91020.150008 5 91070026000"}`

	candidate, err := aiprovider.ParseExtraction(reply)

	require.NoError(t, err)
	assert.Equal(t, "34191790010104351004791020150008591070026000", candidate.Barcode)
}

func TestParseExtraction_BracesInsideStrings(t *testing.T) {
	reply := `{"beneficiary": "Acme {Ltda}", "amount": 10, "dueDate": "2024-07-20", "confidence": 0.7, "summary": "note: } inside"}`

	candidate, err := aiprovider.ParseExtraction(reply)

	require.NoError(t, err)
	assert.Equal(t, "Acme {Ltda}", candidate.Beneficiary)
}
