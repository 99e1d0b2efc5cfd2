package recipe

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is a saved recipe snapshot: the recipe document as stored
// text plus the calorie figure derived at save time.
type HistoryEntry struct {
	id         uuid.UUID
	userID     uuid.UUID
	recipeName string
	recipeJSON string
	calories   *float64
	createdAt  time.Time
}

// NewHistoryEntry creates a history entry with validation
func NewHistoryEntry(userID uuid.UUID, recipeName, recipeJSON string, calories *float64) (*HistoryEntry, error) {
	if recipeName == "" {
		return nil, ErrRecipeNameRequired
	}
	if recipeJSON == "" {
		return nil, ErrRecipeJSONRequired
	}

	return &HistoryEntry{
		id:         uuid.New(),
		userID:     userID,
		recipeName: recipeName,
		recipeJSON: recipeJSON,
		calories:   calories,
		createdAt:  time.Now().UTC(),
	}, nil
}

// ReconstructHistoryEntry rebuilds an entry from persisted state
func ReconstructHistoryEntry(id, userID uuid.UUID, recipeName, recipeJSON string, calories *float64, createdAt time.Time) *HistoryEntry {
	return &HistoryEntry{
		id:         id,
		userID:     userID,
		recipeName: recipeName,
		recipeJSON: recipeJSON,
		calories:   calories,
		createdAt:  createdAt,
	}
}

// ID returns the entry's ID
func (h *HistoryEntry) ID() uuid.UUID {
	return h.id
}

// UserID returns the owning user's ID
func (h *HistoryEntry) UserID() uuid.UUID {
	return h.userID
}

// RecipeName returns the recipe name recorded at save time
func (h *HistoryEntry) RecipeName() string {
	return h.recipeName
}

// RecipeJSON returns the stored recipe snapshot text
func (h *HistoryEntry) RecipeJSON() string {
	return h.recipeJSON
}

// Calories returns the derived calorie figure, nil when unknown
func (h *HistoryEntry) Calories() *float64 {
	return h.calories
}

// CreatedAt returns when the recipe was saved
func (h *HistoryEntry) CreatedAt() time.Time {
	return h.createdAt
}

// RecipeData decodes the stored snapshot. Snapshots that no longer decode
// yield an empty document rather than an error; history listing must not
// fail over one bad row.
func (h *HistoryEntry) RecipeData() map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(h.recipeJSON), &data); err != nil {
		return map[string]interface{}{}
	}
	return data
}
