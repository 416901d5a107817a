package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/wallet-roaster/internal/config"
	apperrors "github.com/wallet-roaster/internal/errors"
	"github.com/wallet-roaster/internal/logging"
)

const geminiProviderName = "gemini"

// GeminiClient is a minimal client for the Gemini generateContent endpoint.
// It satisfies the roast package's TextGenerator interface.
type GeminiClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  *logging.Logger
}

// NewGeminiClient creates a generative text client from configuration
func NewGeminiClient(cfg config.GeminiConfig) *GeminiClient {
	return &GeminiClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		client:  &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logging.GetGlobalLogger().WithField("component", "GeminiClient"),
	}
}

// geminiRequest is the generateContent request body
type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

// geminiResponse is the subset of the generateContent reply we read
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends the prompt to the model and returns the concatenated
// text of the first candidate
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewAuthenticationError(geminiProviderName, fmt.Errorf("API key not configured"))
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", apperrors.NewInternalError("encoding gemini request", err)
	}

	requestURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("building gemini request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil || isTimeout(err) {
			return "", apperrors.NewTimeoutError(geminiProviderName, err)
		}
		return "", apperrors.NewNetworkError(geminiProviderName, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", apperrors.NewAuthenticationError(geminiProviderName, fmt.Errorf("status %d", resp.StatusCode))
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", apperrors.NewRateLimitError(parseRetryAfter(resp))
	case resp.StatusCode != http.StatusOK:
		return "", apperrors.NewNetworkError(geminiProviderName, fmt.Errorf("status %d", resp.StatusCode))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", apperrors.NewMalformedResponseError(geminiProviderName, err.Error())
	}

	if len(parsed.Candidates) == 0 {
		return "", apperrors.NewMalformedResponseError(geminiProviderName, "no candidates in reply")
	}

	var text strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if text.Len() == 0 {
		return "", apperrors.NewMalformedResponseError(geminiProviderName, "empty candidate text")
	}

	return text.String(), nil
}
