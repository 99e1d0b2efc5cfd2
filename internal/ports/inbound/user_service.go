// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserService defines the account and authentication use cases
type UserService interface {
	Register(ctx context.Context, cmd RegisterCommand) (*TokenDTO, error)
	Login(ctx context.Context, cmd LoginCommand) (*TokenDTO, error)
	Profile(ctx context.Context, userID uuid.UUID) (*UserProfileDTO, error)
}

// RegisterCommand contains data for creating an account.
// Health fields are optional; zero values mean not provided.
type RegisterCommand struct {
	Name      string
	Email     string
	Password  string
	HeightCm  float64
	WeightKg  float64
	Age       int
	DietType  string
	Allergies string
	Goal      string
}

// LoginCommand carries credentials for an existing account
type LoginCommand struct {
	Email    string
	Password string
}

// TokenDTO is the payload returned by register and login
type TokenDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserProfileDTO is the authenticated profile response. Health fields the
// user never provided render as null, not zero.
type UserProfileDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	HeightCm  *float64  `json:"height_cm"`
	WeightKg  *float64  `json:"weight_kg"`
	Age       *int      `json:"age"`
	DietType  *string   `json:"diet_type"`
	Allergies *string   `json:"allergies"`
	Goal      *string   `json:"goal"`
	CreatedAt time.Time `json:"created_at"`
}
