// Package ai provides the application layer for recipe generation
package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/domain/user"
	"github.com/pantrywizard/v2/internal/infrastructure/ai/local"
	"github.com/pantrywizard/v2/internal/infrastructure/ai/ollama"
	"github.com/pantrywizard/v2/internal/infrastructure/ai/openai"
	"github.com/pantrywizard/v2/internal/infrastructure/config"
	"github.com/pantrywizard/v2/internal/infrastructure/monitoring"
	"github.com/pantrywizard/v2/internal/ports/outbound"
)

const (
	// maxAttempts bounds generation retries when the model keeps
	// producing recipes the user cooked recently.
	maxAttempts = 3

	// retryDirective is appended to the prompt before each retry.
	retryDirective = "\n\nIMPORTANT: Generate a DIFFERENT recipe that is not similar to the recent recipes listed above."
)

// Service orchestrates recipe generation: prompt construction, backend
// calls and the non-repetition retry loop.
type Service struct {
	generator outbound.RecipeGenerator
	logger    *zap.Logger
}

// NewService creates the generation orchestrator on top of a backend client
func NewService(generator outbound.RecipeGenerator, logger *zap.Logger) *Service {
	return &Service{
		generator: generator,
		logger:    logger.Named("ai-service"),
	}
}

// NewGenerator selects the backend client for the configured mode
func NewGenerator(cfg config.AIConfig, logger *zap.Logger) outbound.RecipeGenerator {
	switch cfg.Mode {
	case "ollama":
		return ollama.NewClient(cfg.OllamaBaseURL, cfg.OllamaModel, cfg.OllamaTimeout, cfg.HealthTimeout, logger)
	case "local":
		return local.NewClient(logger)
	default:
		return openai.NewClient(cfg.APIURL, cfg.APIKey, cfg.APIModel, cfg.APITimeout, logger)
	}
}

// GenerateParams carries the prompt inputs plus the non-repetition state
type GenerateParams struct {
	User         *user.User
	PantryItems  []*pantry.Item
	Extras       []string
	Preferences  map[string]string
	RecentTitles []string
	AvoidRepeats bool
}

// GenerateForUser produces one recipe. When avoid-repeats is on and the
// backend returns a dish too similar to a recent title, the prompt is
// extended with a retry directive and generation runs again, up to
// maxAttempts. The final attempt is returned even when still repetitive.
func (s *Service) GenerateForUser(ctx context.Context, p GenerateParams) (*recipe.Recipe, error) {
	prompt := BuildRecipePrompt(p.User, p.PantryItems, p.Extras, p.Preferences, p.RecentTitles)

	var generated *recipe.Recipe
	for attempt := 0; attempt < maxAttempts; attempt++ {
		monitoring.RecordGenerationAttempt(s.generator.Name())
		rec, err := s.generator.GenerateRecipe(ctx, prompt)
		if err != nil {
			return nil, err
		}
		generated = rec

		if !p.AvoidRepeats || !IsRepeat(rec.Name, p.RecentTitles) {
			return rec, nil
		}

		monitoring.RecordGenerationRejection()
		s.logger.Info("generated recipe repeats a recent dish, retrying",
			zap.String("name", rec.Name),
			zap.Int("attempt", attempt+1),
			zap.String("backend", s.generator.Name()),
		)
		if attempt < maxAttempts-1 {
			prompt += retryDirective
		}
	}

	return generated, nil
}

// HealthCheck reports whether the configured backend is reachable
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.generator.HealthCheck(ctx)
}
