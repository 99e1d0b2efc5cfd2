package pantry

import "errors"

// Domain errors for pantry items
var (
	ErrNameRequired        = errors.New("pantry item name is required")
	ErrNameTooLong         = errors.New("pantry item name must be at most 100 characters")
	ErrQuantityNotPositive = errors.New("pantry item quantity must be positive")
	ErrUnitRequired        = errors.New("pantry item unit is required")
	ErrUnitTooLong         = errors.New("pantry item unit must be at most 30 characters")
)
