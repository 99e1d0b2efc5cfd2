// Package history provides the application layer for history listing and
// the weekly report.
package history

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/internal/ports/outbound"
	"github.com/pantrywizard/v2/pkg/errors"
)

// topIngredientCount caps the weekly report's ingredient leaderboard
const topIngredientCount = 5

// HistoryService implements the history listing and reporting use cases
type HistoryService struct {
	historyRepo outbound.HistoryRepository
	logger      *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(historyRepo outbound.HistoryRepository, logger *zap.Logger) inbound.HistoryService {
	return &HistoryService{
		historyRepo: historyRepo,
		logger:      logger.Named("history-service"),
	}
}

// List returns the user's saved recipes, newest first. Period "week" limits
// the listing to the last 7 days, "month" to the last 30; anything else
// returns everything.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID, period string) ([]inbound.HistoryEntryDTO, error) {
	var since time.Time
	switch period {
	case inbound.PeriodWeek:
		since = time.Now().UTC().Add(-7 * 24 * time.Hour)
	case inbound.PeriodMonth:
		since = time.Now().UTC().Add(-30 * 24 * time.Hour)
	}

	entries, err := s.historyRepo.FindByUser(ctx, userID, since, 0)
	if err != nil {
		return nil, errors.NewDatabaseError("list recipe history", err)
	}

	dtos := make([]inbound.HistoryEntryDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = entryToDTO(entry)
	}
	return dtos, nil
}

// WeeklyReport aggregates the last seven days of saved recipes
func (s *HistoryService) WeeklyReport(ctx context.Context, userID uuid.UUID) (*inbound.WeeklyReportDTO, error) {
	since := time.Now().UTC().Add(-7 * 24 * time.Hour)
	entries, err := s.historyRepo.FindByUser(ctx, userID, since, 0)
	if err != nil {
		return nil, errors.NewDatabaseError("load weekly history", err)
	}

	totalCalories := 0.0
	uniqueNames := make(map[string]struct{}, len(entries))
	ingredientCounts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, entry := range entries {
		if c := entry.Calories(); c != nil {
			totalCalories += *c
		}
		uniqueNames[entry.RecipeName()] = struct{}{}

		for _, name := range recipe.IngredientNamesFromData(entry.RecipeData()) {
			lowered := strings.ToLower(name)
			if lowered == "" {
				continue
			}
			if _, seen := ingredientCounts[lowered]; !seen {
				firstSeen[lowered] = len(firstSeen)
			}
			ingredientCounts[lowered]++
		}
	}

	mealsCount := len(entries)
	avgCalories := 0.0
	varietyScore := 0.0
	if mealsCount > 0 {
		avgCalories = totalCalories / float64(mealsCount)
		varietyScore = float64(len(uniqueNames)) / float64(mealsCount) * 100
	}

	return &inbound.WeeklyReportDTO{
		TotalCalories:      round1(totalCalories),
		VarietyScore:       round1(varietyScore),
		TopIngredients:     topIngredients(ingredientCounts, firstSeen),
		MealsCount:         mealsCount,
		AvgCaloriesPerMeal: round1(avgCalories),
	}, nil
}

// entryToDTO converts an entry for the listing. Snapshots that no longer
// decode render as an empty object; decodable ones pass through as stored.
func entryToDTO(entry *recipe.HistoryEntry) inbound.HistoryEntryDTO {
	snapshot := json.RawMessage("{}")
	var probe map[string]interface{}
	if err := json.Unmarshal([]byte(entry.RecipeJSON()), &probe); err == nil {
		snapshot = json.RawMessage(entry.RecipeJSON())
	}

	return inbound.HistoryEntryDTO{
		ID:         entry.ID(),
		RecipeName: entry.RecipeName(),
		RecipeJSON: snapshot,
		Calories:   entry.Calories(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// topIngredients ranks ingredient usage counts descending; ties keep
// first-seen order so results are stable across runs.
func topIngredients(counts map[string]int, firstSeen map[string]int) []inbound.IngredientCountDTO {
	ranked := make([]inbound.IngredientCountDTO, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, inbound.IngredientCountDTO{Name: name, Count: count})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return firstSeen[ranked[i].Name] < firstSeen[ranked[j].Name]
	})

	if len(ranked) > topIngredientCount {
		ranked = ranked[:topIngredientCount]
	}
	return ranked
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
