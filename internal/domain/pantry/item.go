// Package pantry defines the pantry item domain entity
package pantry

import (
	"time"

	"github.com/google/uuid"
)

// Item represents a named ingredient quantity owned by a user.
type Item struct {
	id        uuid.UUID
	userID    uuid.UUID
	name      string
	quantity  float64
	unit      string
	createdAt time.Time
	updatedAt time.Time
}

// NewItem creates a pantry item with validation
func NewItem(userID uuid.UUID, name string, quantity float64, unit string) (*Item, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateQuantity(quantity); err != nil {
		return nil, err
	}
	if err := validateUnit(unit); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Item{
		id:        uuid.New(),
		userID:    userID,
		name:      name,
		quantity:  quantity,
		unit:      unit,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds an item from persisted state without validation
func Reconstruct(id, userID uuid.UUID, name string, quantity float64, unit string, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:        id,
		userID:    userID,
		name:      name,
		quantity:  quantity,
		unit:      unit,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the item's ID
func (i *Item) ID() uuid.UUID {
	return i.id
}

// UserID returns the owning user's ID
func (i *Item) UserID() uuid.UUID {
	return i.userID
}

// Name returns the ingredient name
func (i *Item) Name() string {
	return i.name
}

// Quantity returns the stored amount
func (i *Item) Quantity() float64 {
	return i.quantity
}

// Unit returns the measurement unit
func (i *Item) Unit() string {
	return i.unit
}

// CreatedAt returns when the item was added
func (i *Item) CreatedAt() time.Time {
	return i.createdAt
}

// UpdatedAt returns when the item was last changed
func (i *Item) UpdatedAt() time.Time {
	return i.updatedAt
}

// Rename changes the ingredient name
func (i *Item) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	i.name = name
	i.updatedAt = time.Now().UTC()
	return nil
}

// SetQuantity changes the stored amount
func (i *Item) SetQuantity(quantity float64) error {
	if err := validateQuantity(quantity); err != nil {
		return err
	}
	i.quantity = quantity
	i.updatedAt = time.Now().UTC()
	return nil
}

// SetUnit changes the measurement unit
func (i *Item) SetUnit(unit string) error {
	if err := validateUnit(unit); err != nil {
		return err
	}
	i.unit = unit
	i.updatedAt = time.Now().UTC()
	return nil
}

func validateName(name string) error {
	if name == "" {
		return ErrNameRequired
	}
	if len(name) > 100 {
		return ErrNameTooLong
	}
	return nil
}

func validateQuantity(quantity float64) error {
	if quantity <= 0 {
		return ErrQuantityNotPositive
	}
	return nil
}

func validateUnit(unit string) error {
	if unit == "" {
		return ErrUnitRequired
	}
	if len(unit) > 30 {
		return ErrUnitTooLong
	}
	return nil
}
