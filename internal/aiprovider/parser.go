package aiprovider

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// rawExtraction mirrors the JSON object the prompt asks the model to emit.
// Amount arrives as a number or a string depending on the model's mood.
type rawExtraction struct {
	Beneficiary string          `json:"beneficiary"`
	Amount      json.RawMessage `json:"amount"`
	DueDate     string          `json:"dueDate"`
	Category    string          `json:"category"`
	Confidence  float64         `json:"confidence"`
	Summary     string          `json:"summary"`
	Barcode     string          `json:"barcode"`
}

// dueDateLayouts are the date shapes models actually produce, in order of preference.
var dueDateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02", "02-01-2006"}

// ParseExtraction locates the first balanced JSON object in a model reply and
// maps it to an extraction candidate. It fails with apperrors.ErrAIParse when
// no JSON object can be found or decoded, and apperrors.ErrIncompleteExtraction
// when beneficiary, amount or dueDate is missing after a successful parse.
func ParseExtraction(reply string) (*domain.ExtractionCandidate, error) {
	jsonText, ok := firstJSONObject(stripCodeFences(reply))
	if !ok {
		return nil, fmt.Errorf("%w: reply contains no JSON object", apperrors.ErrAIParse)
	}

	var raw rawExtraction
	if err := json.Unmarshal([]byte(jsonText), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrAIParse, err)
	}

	var missing []string
	if strings.TrimSpace(raw.Beneficiary) == "" {
		missing = append(missing, "beneficiary")
	}
	amount, err := parseAmount(raw.Amount)
	if err != nil {
		missing = append(missing, "amount")
	}
	dueDate, err := parseDueDate(raw.DueDate)
	if err != nil {
		missing = append(missing, "dueDate")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", apperrors.ErrIncompleteExtraction, strings.Join(missing, ", "))
	}

	return &domain.ExtractionCandidate{
		Beneficiary: strings.TrimSpace(raw.Beneficiary),
		Amount:      amount,
		DueDate:     dueDate,
		Category:    strings.TrimSpace(raw.Category),
		Confidence:  raw.Confidence,
		Summary:     strings.TrimSpace(raw.Summary),
		Barcode:     domain.NormalizeBarcode(raw.Barcode),
	}, nil
}

// stripCodeFences removes markdown fence markers so a fenced ```json block
// parses the same as a bare object.
func stripCodeFences(s string) string {
	var sb strings.Builder
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// firstJSONObject returns the first balanced {...} substring, tracking string
// literals and escapes so braces inside values don't end the object early.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// parseAmount accepts a JSON number or a numeric string, tolerating currency
// prefixes and a Brazilian comma decimal separator.
func parseAmount(raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, fmt.Errorf("amount missing")
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return decimal.Zero, err
		}
		s = strings.TrimSpace(strings.TrimPrefix(s, "R$"))
		// "1.234,56" -> "1234.56"
		if strings.Contains(s, ",") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
		text = s
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount is negative")
	}
	return d, nil
}

func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("dueDate missing")
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized dueDate format: %q", s)
}
