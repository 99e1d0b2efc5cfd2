package gorm

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/ports/outbound"
)

// HistoryRepository implements the recipe history repository using GORM
type HistoryRepository struct {
	db *gorm.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *gorm.DB) outbound.HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create stores a new history entry
func (r *HistoryRepository) Create(ctx context.Context, entry *recipe.HistoryEntry) error {
	model := HistoryEntryToModel(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByUser returns the user's history entries newest first. A zero
// since means no lower bound; a non-positive limit means no limit.
func (r *HistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*recipe.HistoryEntry, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []RecipeHistoryModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}

	entries := make([]*recipe.HistoryEntry, len(models))
	for i := range models {
		entries[i] = ModelToHistoryEntry(&models[i])
	}

	return entries, nil
}

// FindRecentNames returns the names of the user's most recent entries,
// newest first
func (r *HistoryRepository) FindRecentNames(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	var names []string

	query := r.db.WithContext(ctx).Model(&RecipeHistoryModel{}).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Pluck("recipe_name", &names).Error; err != nil {
		return nil, err
	}

	return names, nil
}
