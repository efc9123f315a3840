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
	openAIEndpoint = "https://api.openai.com/v1/chat/completions"
	openAIModel    = "gpt-4o"
)

// openAIClient speaks the OpenAI chat-completions envelope with a data-URL
// image part and a Bearer authorization header.
type openAIClient struct {
	apiKey     string
	httpClient *http.Client
}

type openAIRequest struct {
	Model     string          `json:"model"`
	Messages  []openAIMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

type openAIMessage struct {
	Role    string       `json:"role"`
	Content []openAIPart `json:"content"`
}

type openAIPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *openAIClient) SubmitForExtraction(ctx context.Context, doc domain.RenderedDocument, prompt string) (string, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", doc.Media, base64.StdEncoding.EncodeToString(doc.Data))
	payload := openAIRequest{
		Model: openAIModel,
		Messages: []openAIMessage{{
			Role: "user",
			Content: []openAIPart{
				{Type: "text", Text: prompt},
				{Type: "image_url", ImageURL: &openAIImageURL{URL: dataURL}},
			},
		}},
		MaxTokens: 1024,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal OpenAI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openAIEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build OpenAI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", apperrors.ErrRemoteRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w: openai returned status %d: %s", apperrors.ErrRemoteRequest, resp.StatusCode, snippet)
	}

	var parsed openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode openai response: %v", apperrors.ErrRemoteRequest, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: openai response had no choices", apperrors.ErrRemoteRequest)
	}
	return parsed.Choices[0].Message.Content, nil
}
