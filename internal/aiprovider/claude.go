package aiprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/meuboleto/meuboleto_backend/internal/apperrors"
	"github.com/meuboleto/meuboleto_backend/internal/core/domain"
)

const (
	claudeEndpoint   = "https://api.anthropic.com/v1/messages"
	claudeModel      = "claude-3-5-sonnet-20241022"
	claudeAPIVersion = "2023-06-01"
)

// claudeClient speaks the Anthropic messages envelope with a base64 image
// source block and x-api-key / anthropic-version headers.
type claudeClient struct {
	apiKey     string
	httpClient *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string        `json:"role"`
	Content []claudeBlock `json:"content"`
}

type claudeBlock struct {
	Type   string        `json:"type"`
	Text   string        `json:"text,omitempty"`
	Source *claudeSource `json:"source,omitempty"`
}

type claudeSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

func (c *claudeClient) SubmitForExtraction(ctx context.Context, doc domain.RenderedDocument, prompt string) (string, error) {
	payload := claudeRequest{
		Model:     claudeModel,
		MaxTokens: 1024,
		Messages: []claudeMessage{{
			Role: "user",
			Content: []claudeBlock{
				{Type: "image", Source: &claudeSource{
					Type:      "base64",
					MediaType: doc.Media,
					Data:      base64.StdEncoding.EncodeToString(doc.Data),
				}},
				{Type: "text", Text: prompt},
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal Claude request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build Claude request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", claudeAPIVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: claude: %v", apperrors.ErrRemoteRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: claude returned status %d: %s", apperrors.ErrRemoteRequest, resp.StatusCode, snippet)
	}

	var parsed claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode claude response: %v", apperrors.ErrRemoteRequest, err)
	}
	for _, block := range parsed.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: claude response had no text block", apperrors.ErrRemoteRequest)
}
