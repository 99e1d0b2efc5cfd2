package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/ports/outbound"
)

// SuggestionRepository implements the daily suggestion repository using GORM
type SuggestionRepository struct {
	db *gorm.DB
}

// NewSuggestionRepository creates a new suggestion repository
func NewSuggestionRepository(db *gorm.DB) outbound.SuggestionRepository {
	return &SuggestionRepository{db: db}
}

// Create stores a new daily suggestion
func (r *SuggestionRepository) Create(ctx context.Context, suggestion *recipe.DailySuggestion) error {
	model := SuggestionToModel(suggestion)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindInWindow returns the user's most recent suggestion with suggestedAt
// inside [start, end), or nil when there is none
func (r *SuggestionRepository) FindInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (*recipe.DailySuggestion, error) {
	var model DailySuggestionModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND suggested_at >= ? AND suggested_at < ?", userID, start, end).
		Order("suggested_at DESC").
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToSuggestion(&model), nil
}
