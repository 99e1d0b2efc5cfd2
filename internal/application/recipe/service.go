// Package recipe provides the application layer for recipe generation,
// daily suggestions and history writes.
package recipe

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/application/ai"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/infrastructure/monitoring"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/internal/ports/outbound"
	"github.com/pantrywizard/v2/pkg/errors"
	"github.com/pantrywizard/v2/pkg/nutrition"
)

// recentTitleLimit bounds the non-repetition set to the latest history entries
const recentTitleLimit = 10

// Generator produces one recipe from the assembled prompt inputs
type Generator interface {
	GenerateForUser(ctx context.Context, p ai.GenerateParams) (*recipe.Recipe, error)
}

// RecipeService implements the recipe generation use cases
type RecipeService struct {
	userRepo       outbound.UserRepository
	pantryRepo     outbound.PantryRepository
	historyRepo    outbound.HistoryRepository
	suggestionRepo outbound.SuggestionRepository
	cache          outbound.CacheRepository
	generator      Generator
	images         outbound.ImageGenerator
	logger         *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	userRepo outbound.UserRepository,
	pantryRepo outbound.PantryRepository,
	historyRepo outbound.HistoryRepository,
	suggestionRepo outbound.SuggestionRepository,
	cache outbound.CacheRepository,
	generator Generator,
	images outbound.ImageGenerator,
	logger *zap.Logger,
) inbound.RecipeService {
	return &RecipeService{
		userRepo:       userRepo,
		pantryRepo:     pantryRepo,
		historyRepo:    historyRepo,
		suggestionRepo: suggestionRepo,
		cache:          cache,
		generator:      generator,
		images:         images,
		logger:         logger.Named("recipe-service"),
	}
}

// Generate produces one recipe from the user's pantry, preferences and
// recent history
func (s *RecipeService) Generate(ctx context.Context, userID uuid.UUID, cmd inbound.GenerateRecipeCommand) (*inbound.GeneratedRecipeDTO, error) {
	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if account == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}

	items, err := s.pantryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}
	if cmd.UsePantry && len(items) == 0 {
		return nil, errors.NewEmptyPantryError()
	}
	if !cmd.UsePantry {
		items = nil
	}

	recentTitles, err := s.historyRepo.FindRecentNames(ctx, userID, recentTitleLimit)
	if err != nil {
		return nil, errors.NewDatabaseError("load recent recipe names", err)
	}

	generated, err := s.generator.GenerateForUser(ctx, ai.GenerateParams{
		User:         account,
		PantryItems:  items,
		Extras:       cmd.ExtraIngredients,
		Preferences:  cmd.Preferences,
		RecentTitles: recentTitles,
		AvoidRepeats: cmd.AvoidRepeats,
	})
	if err != nil {
		return nil, errors.Wrap(err, "recipe generation failed")
	}

	imageURL := s.images.GenerateFoodImage(ctx, generated.Name, generated.Description)

	payload, err := json.Marshal(generated)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode recipe")
	}

	s.logger.Info("Recipe generated",
		zap.String("user_id", userID.String()),
		zap.String("name", generated.Name),
	)

	return &inbound.GeneratedRecipeDTO{
		Recipe:   payload,
		ImageURL: imageURL,
	}, nil
}

// Daily returns today's suggestion. The first request of a UTC day generates
// and persists one; every later request that day replays the stored recipe.
func (s *RecipeService) Daily(ctx context.Context, userID uuid.UUID) (*inbound.DailySuggestionDTO, error) {
	now := time.Now()
	start, end := recipe.DayWindowUTC(now)

	cacheKey := dailyCacheKey(userID, start)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var dto inbound.DailySuggestionDTO
		if err := json.Unmarshal(cached, &dto); err == nil {
			return &dto, nil
		}
	}

	existing, err := s.suggestionRepo.FindInWindow(ctx, userID, start, end)
	if err != nil {
		return nil, errors.NewDatabaseError("find daily suggestion", err)
	}
	if existing != nil {
		dto, err := s.suggestionToDTO(ctx, existing)
		if err != nil {
			return nil, err
		}
		s.cacheDaily(ctx, cacheKey, dto, end.Sub(now))
		return dto, nil
	}

	account, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("find user", err)
	}
	if account == nil {
		return nil, errors.NewUserNotFoundError(userID.String())
	}

	items, err := s.pantryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}
	if len(items) == 0 {
		return nil, errors.NewEmptyPantryError()
	}

	recentTitles, err := s.historyRepo.FindRecentNames(ctx, userID, recentTitleLimit)
	if err != nil {
		return nil, errors.NewDatabaseError("load recent recipe names", err)
	}

	generated, err := s.generator.GenerateForUser(ctx, ai.GenerateParams{
		User:         account,
		PantryItems:  items,
		RecentTitles: recentTitles,
		AvoidRepeats: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "recipe generation failed")
	}

	payload, err := json.Marshal(generated)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode recipe")
	}

	suggestion, err := recipe.NewDailySuggestion(userID, string(payload))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create daily suggestion")
	}
	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, errors.NewDatabaseError("save daily suggestion", err)
	}

	s.logger.Info("Daily suggestion generated",
		zap.String("user_id", userID.String()),
		zap.String("name", generated.Name),
	)

	dto := &inbound.DailySuggestionDTO{
		Recipe:      payload,
		ImageURL:    s.images.GenerateFoodImage(ctx, generated.Name, generated.Description),
		SuggestedAt: suggestion.SuggestedAt(),
	}
	s.cacheDaily(ctx, cacheKey, dto, end.Sub(now))
	return dto, nil
}

// Save records a cooked recipe in the user's history
func (s *RecipeService) Save(ctx context.Context, userID uuid.UUID, cmd inbound.SaveRecipeCommand) (*inbound.SavedRecipeDTO, error) {
	recipeName := "Unknown Recipe"
	if name, ok := cmd.RecipeJSON["name"].(string); ok {
		recipeName = name
	}

	calories := deriveCalories(cmd)

	payload, err := json.Marshal(cmd.RecipeJSON)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode recipe snapshot")
	}

	entry, err := recipe.NewHistoryEntry(userID, recipeName, string(payload), calories)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.historyRepo.Create(ctx, entry); err != nil {
		return nil, errors.NewDatabaseError("save recipe history", err)
	}

	monitoring.RecordRecipeSaved()
	s.logger.Info("Recipe saved to history",
		zap.String("user_id", userID.String()),
		zap.String("name", entry.RecipeName()),
	)

	return &inbound.SavedRecipeDTO{
		ID:         entry.ID(),
		RecipeName: entry.RecipeName(),
		Calories:   entry.Calories(),
		CreatedAt:  entry.CreatedAt(),
	}, nil
}

// suggestionToDTO rebuilds the response from a stored suggestion. The image
// URL is re-derived from the stored dish name, without a style hint.
func (s *RecipeService) suggestionToDTO(ctx context.Context, existing *recipe.DailySuggestion) (*inbound.DailySuggestionDTO, error) {
	var snapshot map[string]interface{}
	if err := json.Unmarshal([]byte(existing.RecipeJSON()), &snapshot); err != nil {
		return nil, errors.Wrap(err, "stored daily suggestion is not decodable")
	}

	dishName := "Recipe"
	if name, ok := snapshot["name"].(string); ok {
		dishName = name
	}

	return &inbound.DailySuggestionDTO{
		Recipe:      json.RawMessage(existing.RecipeJSON()),
		ImageURL:    s.images.GenerateFoodImage(ctx, dishName, ""),
		SuggestedAt: existing.SuggestedAt(),
	}, nil
}

func (s *RecipeService) cacheDaily(ctx context.Context, key string, dto *inbound.DailySuggestionDTO, ttl time.Duration) {
	payload, err := json.Marshal(dto)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, ttl); err != nil {
		s.logger.Debug("Daily suggestion cache write failed", zap.Error(err))
	}
}

func dailyCacheKey(userID uuid.UUID, dayStart time.Time) string {
	return "daily:" + userID.String() + ":" + dayStart.Format("2006-01-02")
}

// deriveCalories resolves the calorie figure to store: the explicit request
// value wins, then the snapshot's calories field, then an estimate from its
// ingredient names. A zero at any step falls through to the next.
func deriveCalories(cmd inbound.SaveRecipeCommand) *float64 {
	calories := cmd.Calories

	if !hasCalories(calories) {
		if v, ok := cmd.RecipeJSON["calories"].(float64); ok {
			calories = &v
		}
	}

	if !hasCalories(calories) {
		if _, ok := cmd.RecipeJSON["ingredients"]; ok {
			estimate := nutrition.EstimateCalories(recipe.IngredientNamesFromData(cmd.RecipeJSON))
			calories = &estimate
		}
	}

	return calories
}

func hasCalories(calories *float64) bool {
	return calories != nil && *calories != 0
}
