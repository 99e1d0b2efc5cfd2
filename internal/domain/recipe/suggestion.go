package recipe

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DailySuggestion is the cached once-per-day recipe recommendation.
// At most one is served per user per UTC day.
type DailySuggestion struct {
	id          uuid.UUID
	userID      uuid.UUID
	recipeJSON  string
	suggestedAt time.Time
}

// NewDailySuggestion creates a daily suggestion stamped with the current UTC time
func NewDailySuggestion(userID uuid.UUID, recipeJSON string) (*DailySuggestion, error) {
	if recipeJSON == "" {
		return nil, ErrRecipeJSONRequired
	}

	return &DailySuggestion{
		id:          uuid.New(),
		userID:      userID,
		recipeJSON:  recipeJSON,
		suggestedAt: time.Now().UTC(),
	}, nil
}

// ReconstructDailySuggestion rebuilds a suggestion from persisted state
func ReconstructDailySuggestion(id, userID uuid.UUID, recipeJSON string, suggestedAt time.Time) *DailySuggestion {
	return &DailySuggestion{
		id:          id,
		userID:      userID,
		recipeJSON:  recipeJSON,
		suggestedAt: suggestedAt,
	}
}

// ID returns the suggestion's ID
func (s *DailySuggestion) ID() uuid.UUID {
	return s.id
}

// UserID returns the owning user's ID
func (s *DailySuggestion) UserID() uuid.UUID {
	return s.userID
}

// RecipeJSON returns the stored recipe text
func (s *DailySuggestion) RecipeJSON() string {
	return s.recipeJSON
}

// SuggestedAt returns when the suggestion was generated
func (s *DailySuggestion) SuggestedAt() time.Time {
	return s.suggestedAt
}

// RecipeData decodes the stored recipe, empty document on failure
func (s *DailySuggestion) RecipeData() map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(s.recipeJSON), &data); err != nil {
		return map[string]interface{}{}
	}
	return data
}

// DayWindowUTC returns the [start, end) bounds of the UTC day containing t.
// The daily suggestion cache is keyed on this window.
func DayWindowUTC(t time.Time) (time.Time, time.Time) {
	utc := t.UTC()
	start := time.Date(utc.Year(), utc.Month(), utc.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}
