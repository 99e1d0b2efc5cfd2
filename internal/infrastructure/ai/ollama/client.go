// Package ollama provides recipe generation against a local Ollama server
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/infrastructure/ai"
	"github.com/pantrywizard/v2/internal/infrastructure/monitoring"
)

// Client implements the RecipeGenerator interface using the Ollama API
type Client struct {
	baseURL       string
	model         string
	client        *http.Client
	healthTimeout time.Duration
	logger        *zap.Logger
}

// NewClient creates a new Ollama client
func NewClient(baseURL, model string, timeout, healthTimeout time.Duration, logger *zap.Logger) *Client {
	logger.Info("Ollama client initialized",
		zap.String("base_url", baseURL),
		zap.String("model", model),
		zap.Duration("timeout", timeout))

	return &Client{
		baseURL:       baseURL,
		model:         model,
		client:        &http.Client{Timeout: timeout},
		healthTimeout: healthTimeout,
		logger:        logger.Named("ollama-client"),
	}
}

// Ollama API structures
type generateRequest struct {
	Model   string                 `json:"model"`
	Prompt  string                 `json:"prompt"`
	Stream  bool                   `json:"stream"`
	Options map[string]interface{} `json:"options,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Name identifies the backend in logs and health reports
func (c *Client) Name() string {
	return "ollama"
}

// HealthCheck verifies the Ollama server answers its tags endpoint
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.healthTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// GenerateRecipe asks the model for one recipe. Transport failures, error
// statuses and undecodable output all resolve to the stir-fry fallback so
// a broken model never takes recipe generation down with it.
func (c *Client) GenerateRecipe(ctx context.Context, prompt string) (*recipe.Recipe, error) {
	raw, err := c.generate(ctx, prompt)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("ollama generation failed, using fallback", zap.Error(err))
		monitoring.RecordGenerationFallback(c.Name())
		return ai.FallbackStirFry(), nil
	}

	rec, err := ai.ParseRecipe(raw)
	if err != nil {
		c.logger.Warn("ollama response not parsable, using fallback", zap.Error(err))
		monitoring.RecordGenerationFallback(c.Name())
		return ai.FallbackStirFry(), nil
	}
	return rec, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: map[string]interface{}{
			"temperature": 0.7,
			"top_p":       0.9,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
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

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return genResp.Response, nil
}
