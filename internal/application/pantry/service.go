// Package pantry provides the application layer for pantry management
package pantry

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/internal/ports/outbound"
	"github.com/pantrywizard/v2/pkg/errors"
)

// PantryService implements the pantry management use cases. Every operation
// is scoped to the calling user; an item owned by someone else behaves
// exactly like a missing one.
type PantryService struct {
	pantryRepo outbound.PantryRepository
	logger     *zap.Logger
}

// NewPantryService creates a new pantry service
func NewPantryService(pantryRepo outbound.PantryRepository, logger *zap.Logger) inbound.PantryService {
	return &PantryService{
		pantryRepo: pantryRepo,
		logger:     logger.Named("pantry-service"),
	}
}

// List returns every pantry item the user owns, in insertion order
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]inbound.PantryItemDTO, error) {
	items, err := s.pantryRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewDatabaseError("list pantry items", err)
	}

	dtos := make([]inbound.PantryItemDTO, len(items))
	for i, item := range items {
		dtos[i] = entityToDTO(item)
	}
	return dtos, nil
}

// Add creates a pantry item for the user
func (s *PantryService) Add(ctx context.Context, userID uuid.UUID, cmd inbound.AddPantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := pantry.NewItem(userID, cmd.Name, cmd.Quantity, cmd.Unit)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := s.pantryRepo.Create(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("create pantry item", err)
	}

	s.logger.Info("Pantry item added",
		zap.String("user_id", userID.String()),
		zap.String("name", item.Name()),
	)

	dto := entityToDTO(item)
	return &dto, nil
}

// Update applies a partial update to an owned pantry item
func (s *PantryService) Update(ctx context.Context, userID, itemID uuid.UUID, cmd inbound.UpdatePantryItemCommand) (*inbound.PantryItemDTO, error) {
	item, err := s.pantryRepo.FindByID(ctx, userID, itemID)
	if err != nil {
		return nil, errors.NewDatabaseError("find pantry item", err)
	}
	if item == nil {
		return nil, errors.NewPantryItemNotFoundError(itemID.String())
	}

	if cmd.Name != nil {
		if err := item.Rename(*cmd.Name); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Quantity != nil {
		if err := item.SetQuantity(*cmd.Quantity); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}
	if cmd.Unit != nil {
		if err := item.SetUnit(*cmd.Unit); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	if err := s.pantryRepo.Update(ctx, item); err != nil {
		return nil, errors.NewDatabaseError("update pantry item", err)
	}

	dto := entityToDTO(item)
	return &dto, nil
}

// Remove deletes an owned pantry item
func (s *PantryService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.pantryRepo.FindByID(ctx, userID, itemID)
	if err != nil {
		return errors.NewDatabaseError("find pantry item", err)
	}
	if item == nil {
		return errors.NewPantryItemNotFoundError(itemID.String())
	}

	if err := s.pantryRepo.Delete(ctx, userID, itemID); err != nil {
		return errors.NewDatabaseError("delete pantry item", err)
	}

	s.logger.Info("Pantry item removed",
		zap.String("user_id", userID.String()),
		zap.String("item_id", itemID.String()),
	)
	return nil
}

func entityToDTO(item *pantry.Item) inbound.PantryItemDTO {
	return inbound.PantryItemDTO{
		ID:        item.ID(),
		UserID:    item.UserID(),
		Name:      item.Name(),
		Quantity:  item.Quantity(),
		Unit:      item.Unit(),
		CreatedAt: item.CreatedAt(),
	}
}
