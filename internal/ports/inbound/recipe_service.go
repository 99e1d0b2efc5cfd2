package inbound

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// RecipeService defines the recipe generation use cases
type RecipeService interface {
	// Generate produces a recipe from the user's pantry and preferences
	Generate(ctx context.Context, userID uuid.UUID, cmd GenerateRecipeCommand) (*GeneratedRecipeDTO, error)
	// Daily returns today's suggestion, generating and persisting one the
	// first time it is asked for on a given UTC day
	Daily(ctx context.Context, userID uuid.UUID) (*DailySuggestionDTO, error)
	// Save records a cooked recipe in the user's history
	Save(ctx context.Context, userID uuid.UUID, cmd SaveRecipeCommand) (*SavedRecipeDTO, error)
}

// GenerateRecipeCommand mirrors the generate request body
type GenerateRecipeCommand struct {
	UsePantry        bool
	ExtraIngredients []string
	Preferences      map[string]string
	AvoidRepeats     bool
}

// SaveRecipeCommand carries the recipe snapshot to persist. Calories is
// optional; nil or zero falls back to the snapshot's calories field, then
// to an estimate from its ingredients.
type SaveRecipeCommand struct {
	RecipeJSON map[string]interface{}
	Calories   *float64
}

// GeneratedRecipeDTO pairs a generated recipe with its image URL
type GeneratedRecipeDTO struct {
	Recipe   json.RawMessage `json:"recipe"`
	ImageURL string          `json:"image_url"`
}

// DailySuggestionDTO is the daily recipe response
type DailySuggestionDTO struct {
	Recipe      json.RawMessage `json:"recipe"`
	ImageURL    string          `json:"image_url"`
	SuggestedAt time.Time       `json:"suggested_at"`
}

// SavedRecipeDTO confirms a history write
type SavedRecipeDTO struct {
	ID         uuid.UUID `json:"id"`
	RecipeName string    `json:"recipe_name"`
	Calories   *float64  `json:"calories"`
	CreatedAt  time.Time `json:"created_at"`
}
