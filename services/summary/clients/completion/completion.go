package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/apperr"
)

type Client struct {
	apiKey     string
	url        string
	httpClient *http.Client
	log        *slog.Logger
}

type Request struct {
	Model     string `json:"model"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}

// ProviderError is returned when the provider answers with a non-2xx status.
type ProviderError struct {
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion provider error: %d %s", e.StatusCode, e.Body)
}

func (e *ProviderError) Kind() apperr.Kind { return apperr.KindProvider }

func New(cfg *config.CompletionConfig, log *slog.Logger) *Client {
	log.Debug("creating completion client",
		slog.String("url", cfg.URL),
		slog.Bool("api_key_set", cfg.APIKey != ""))
	return &Client{
		apiKey:     cfg.APIKey,
		url:        cfg.URL,
		httpClient: &http.Client{},
		log:        log,
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

// Complete sends one prompt and returns the provider's text. It never retries.
func (c *Client) Complete(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	if c.apiKey == "" {
		return "", apperr.Configuration("GROQ_API_KEY is not set")
	}

	c.log.Info("Complete called",
		slog.String("model", model),
		slog.Int("prompt_length", len(prompt)),
		slog.Int("max_tokens", maxTokens))

	jsonData, err := json.Marshal(Request{Model: model, Prompt: prompt, MaxTokens: maxTokens})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		c.log.Error("failed to create HTTP request", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("HTTP request failed", slog.String("error", err.Error()))
		return "", apperr.New(apperr.KindProvider, fmt.Errorf("failed to send request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperr.New(apperr.KindProvider, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("completion provider returned error",
			slog.Int("status_code", resp.StatusCode),
			slog.String("response_body", string(body)))
		return "", &ProviderError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	result, err := decodeResult(body)
	if err != nil {
		c.log.Error("failed to decode response", slog.String("error", err.Error()))
		return "", apperr.New(apperr.KindProvider, fmt.Errorf("failed to decode response: %w", err))
	}
	c.log.Info("completion received",
		slog.String("shape", fmt.Sprintf("%T", result)),
		slog.Int("output_length", len(result.Text())))

	return result.Text(), nil
}
