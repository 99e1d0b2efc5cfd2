package gorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/ports/outbound"
)

// PantryRepository implements the pantry repository interface using GORM.
// Every query is scoped to the owning user so one user can never read or
// change another user's items.
type PantryRepository struct {
	db *gorm.DB
}

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) outbound.PantryRepository {
	return &PantryRepository{db: db}
}

// Create creates a new pantry item
func (r *PantryRepository) Create(ctx context.Context, item *pantry.Item) error {
	model := PantryItemToModel(item)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update updates an existing pantry item
func (r *PantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	model := PantryItemToModel(item)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("pantry item not found")
	}

	return nil
}

// Delete removes a pantry item owned by the user
func (r *PantryRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&PantryItemModel{})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errors.New("pantry item not found")
	}

	return nil
}

// FindByID finds a pantry item owned by the user, (nil, nil) when missing
func (r *PantryRepository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	var model PantryItemModel

	result := r.db.WithContext(ctx).
		First(&model, "id = ? AND user_id = ?", itemID, userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return ModelToPantryItem(&model), nil
}

// FindByUser returns all of the user's pantry items, oldest first
func (r *PantryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	var models []PantryItemModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, result.Error
	}

	items := make([]*pantry.Item, len(models))
	for i := range models {
		items[i] = ModelToPantryItem(&models[i])
	}

	return items, nil
}
