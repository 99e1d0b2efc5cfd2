package inbound

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Period values accepted by HistoryService.List. Anything else returns the
// full history.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// HistoryService defines the history listing and reporting use cases
type HistoryService interface {
	List(ctx context.Context, userID uuid.UUID, period string) ([]HistoryEntryDTO, error)
	WeeklyReport(ctx context.Context, userID uuid.UUID) (*WeeklyReportDTO, error)
}

// HistoryEntryDTO is one saved recipe in the history listing. RecipeJSON is
// the stored snapshot; snapshots that no longer parse render as {}.
type HistoryEntryDTO struct {
	ID         uuid.UUID       `json:"id"`
	RecipeName string          `json:"recipe_name"`
	RecipeJSON json.RawMessage `json:"recipe_json"`
	Calories   *float64        `json:"calories"`
	CreatedAt  time.Time       `json:"created_at"`
}

// IngredientCountDTO is one entry in the weekly report's top ingredients
type IngredientCountDTO struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WeeklyReportDTO summarizes the last seven days of cooked recipes
type WeeklyReportDTO struct {
	TotalCalories      float64              `json:"total_calories"`
	VarietyScore       float64              `json:"variety_score"`
	TopIngredients     []IngredientCountDTO `json:"top_ingredients"`
	MealsCount         int                  `json:"meals_count"`
	AvgCaloriesPerMeal float64              `json:"avg_calories_per_meal"`
}
