// Package image generates food photos for recipes through Ollama. Image
// generation is strictly best-effort: every failure path resolves to the
// placeholder URL and never surfaces to the recipe flow.
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/ports/outbound"
)

const photographyPrompt = "High quality professional food photography of %s presented on a clean plate. Style: realistic, vibrant colors, appetizing, close-up, natural light, slight bokeh, 4k detail."

// dataURIPattern matches an inline base64 image payload
var dataURIPattern = regexp.MustCompile(`data:image/[^;]+;base64,([A-Za-z0-9+/=]+)`)

// Generator implements the ImageGenerator interface. Mode "ollama" calls
// the configured image model; anything else serves the placeholder.
type Generator struct {
	mode           string
	baseURL        string
	model          string
	placeholderURL string
	store          outbound.ImageStore
	client         *http.Client
	logger         *zap.Logger
}

// NewGenerator creates a food image generator
func NewGenerator(mode, baseURL, model, placeholderURL string, timeout time.Duration, store outbound.ImageStore, logger *zap.Logger) *Generator {
	return &Generator{
		mode:           mode,
		baseURL:        baseURL,
		model:          model,
		placeholderURL: placeholderURL,
		store:          store,
		client:         &http.Client{Timeout: timeout},
		logger:         logger.Named("image-generator"),
	}
}

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// generateResponse distinguishes which field the model answered with;
// absent fields stay nil.
type generateResponse struct {
	Response *string `json:"response"`
	Image    *string `json:"image"`
}

// GenerateFoodImage produces a URL for a photo of the dish. The style hint
// is appended to the photography prompt when present.
func (g *Generator) GenerateFoodImage(ctx context.Context, dishName, styleHint string) string {
	if g.mode != "ollama" {
		return g.placeholderURL
	}

	prompt := fmt.Sprintf(photographyPrompt, dishName)
	if styleHint != "" {
		prompt += " Optional style hint: " + styleHint
	}

	url, err := g.generateWithOllama(ctx, dishName, prompt)
	if err != nil {
		g.logger.Warn("image generation failed, serving placeholder",
			zap.String("dish", dishName),
			zap.Error(err))
		return g.placeholderURL
	}
	return url
}

func (g *Generator) generateWithOllama(ctx context.Context, dishName, prompt string) (string, error) {
	body, err := g.post(ctx, "/api/generate", generateRequest{
		Model:  g.model,
		Prompt: prompt,
		Stream: false,
	})
	if err != nil {
		return "", err
	}

	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	var imageBytes []byte
	switch {
	case resp.Response != nil:
		// Prompt-enhancement models answer with text, never an image
		if strings.Contains(strings.ToLower(g.model), "flux-prompt") {
			g.logger.Info("image model is a prompt enhancer, serving placeholder",
				zap.String("model", g.model))
			return g.placeholderURL, nil
		}
		imageBytes, err = decodeImagePayload(*resp.Response)
		if err != nil {
			return "", err
		}
	case resp.Image != nil:
		imageBytes, err = base64.StdEncoding.DecodeString(*resp.Image)
		if err != nil {
			return "", fmt.Errorf("failed to decode image field: %w", err)
		}
	default:
		// Some setups expose a dedicated image endpoint instead
		imageBytes, err = g.post(ctx, "/api/image", generateRequest{Model: g.model, Prompt: prompt})
		if err != nil {
			return "", err
		}
	}

	return g.store.Save(ctx, ImageFilename(dishName), imageBytes)
}

// decodeImagePayload extracts image bytes from a text response, either a
// data URI or a raw base64 blob. Short plain-text answers mean the model
// did not produce an image at all.
func decodeImagePayload(text string) ([]byte, error) {
	if !strings.Contains(text, "data:image") && len(text) <= 1000 {
		return nil, fmt.Errorf("model returned text instead of an image")
	}

	if m := dataURIPattern.FindStringSubmatch(text); m != nil {
		decoded, err := base64.StdEncoding.DecodeString(m[1])
		if err != nil {
			return nil, fmt.Errorf("failed to decode data URI: %w", err)
		}
		return decoded, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return nil, fmt.Errorf("response is neither a data URI nor raw base64: %w", err)
	}
	return decoded, nil
}

func (g *Generator) post(ctx context.Context, path string, payload generateRequest) ([]byte, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// ImageFilename sanitizes a dish name into a stable jpg filename. Only
// letters, digits, spaces, hyphens and underscores survive; spaces become
// underscores.
func ImageFilename(dishName string) string {
	var b strings.Builder
	for _, r := range dishName {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	safe := strings.TrimRight(b.String(), " ")
	return strings.ReplaceAll(safe, " ", "_") + ".jpg"
}
