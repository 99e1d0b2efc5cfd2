package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// PantryService defines the pantry management use cases
type PantryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]PantryItemDTO, error)
	Add(ctx context.Context, userID uuid.UUID, cmd AddPantryItemCommand) (*PantryItemDTO, error)
	Update(ctx context.Context, userID, itemID uuid.UUID, cmd UpdatePantryItemCommand) (*PantryItemDTO, error)
	Remove(ctx context.Context, userID, itemID uuid.UUID) error
}

// AddPantryItemCommand contains data for adding a pantry item
type AddPantryItemCommand struct {
	Name     string
	Quantity float64
	Unit     string
}

// UpdatePantryItemCommand is a partial update; nil fields stay unchanged
type UpdatePantryItemCommand struct {
	Name     *string
	Quantity *float64
	Unit     *string
}

// PantryItemDTO is the pantry item response shape
type PantryItemDTO struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}
