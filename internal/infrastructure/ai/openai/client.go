// Package openai provides recipe generation against OpenAI-compatible
// HTTP APIs (OpenAI, OpenRouter and generic completion endpoints).
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/infrastructure/ai"
	"github.com/pantrywizard/v2/internal/infrastructure/monitoring"
)

const systemPrompt = "You are a health-focused chef AI. Output only valid JSON."

// Client implements the RecipeGenerator interface over a remote LLM API
type Client struct {
	apiURL string
	apiKey string
	model  string
	client *http.Client
	logger *zap.Logger
}

// NewClient creates a new API client
func NewClient(apiURL, apiKey, model string, timeout time.Duration, logger *zap.Logger) *Client {
	logger.Info("API client initialized",
		zap.String("api_url", apiURL),
		zap.String("model", model),
		zap.Bool("api_key_set", apiKey != ""))

	return &Client{
		apiURL: apiURL,
		apiKey: apiKey,
		model:  model,
		client: &http.Client{Timeout: timeout},
		logger: logger.Named("api-client"),
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// apiResponse covers the chat shape plus the plain-text shapes some
// proxies answer with.
type apiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Text    string `json:"text"`
	Content string `json:"content"`
}

// Name identifies the backend in logs and health reports
func (c *Client) Name() string {
	return "api"
}

// HealthCheck verifies the client is configured. No request is made: the
// endpoint is metered and there is no free probe.
func (c *Client) HealthCheck(ctx context.Context) error {
	if c.apiURL == "" || c.apiKey == "" {
		return errors.New("api backend not configured: api_url and api_key are required")
	}
	return nil
}

// GenerateRecipe asks the remote model for one recipe. A missing
// configuration, transport failure or undecodable output resolves to the
// pantry-bowl fallback.
func (c *Client) GenerateRecipe(ctx context.Context, prompt string) (*recipe.Recipe, error) {
	if c.apiURL == "" || c.apiKey == "" {
		monitoring.RecordGenerationFallback(c.Name())
		return ai.FallbackBowl(), nil
	}

	raw, err := c.generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("api generation failed, using fallback", zap.Error(err))
		monitoring.RecordGenerationFallback(c.Name())
		return ai.FallbackBowl(), nil
	}

	rec, err := ai.ParseRecipe(raw)
	if err != nil {
		c.logger.Warn("api response not parsable, using fallback", zap.Error(err))
		monitoring.RecordGenerationFallback(c.Name())
		return ai.FallbackBowl(), nil
	}
	return rec, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	jsonBody, err := json.Marshal(c.buildPayload(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	switch {
	case len(parsed.Choices) > 0:
		return parsed.Choices[0].Message.Content, nil
	case parsed.Text != "":
		return parsed.Text, nil
	case parsed.Content != "":
		return parsed.Content, nil
	default:
		return "", errors.New("response carries no recognizable content field")
	}
}

// buildPayload picks the request shape by endpoint. OpenAI and OpenRouter
// take the chat format; anything else gets a plain completion body.
func (c *Client) buildPayload(prompt string) interface{} {
	lowered := strings.ToLower(c.apiURL)
	if strings.Contains(lowered, "openai") || strings.Contains(lowered, "openrouter") {
		return chatRequest{
			Model: c.model,
			Messages: []chatMessage{
				{Role: "system", Content: systemPrompt},
				{Role: "user", Content: prompt},
			},
			Temperature: 0.7,
			MaxTokens:   1024,
		}
	}
	return completionRequest{
		Prompt:      prompt,
		MaxTokens:   1024,
		Temperature: 0.7,
	}
}
