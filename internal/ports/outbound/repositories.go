// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/domain/user"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *user.User) error
	Update(ctx context.Context, user *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// PantryRepository defines the interface for pantry item persistence.
// Lookups are always scoped by the owning user.
type PantryRepository interface {
	Create(ctx context.Context, item *pantry.Item) error
	Update(ctx context.Context, item *pantry.Item) error
	Delete(ctx context.Context, userID, itemID uuid.UUID) error
	FindByID(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error)
}

// HistoryRepository defines the interface for recipe history persistence
type HistoryRepository interface {
	Create(ctx context.Context, entry *recipe.HistoryEntry) error
	// FindByUser returns entries newest first. A zero since means no lower
	// bound; a non-positive limit means no limit.
	FindByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*recipe.HistoryEntry, error)
	// FindRecentNames returns the names of the user's most recent entries,
	// newest first.
	FindRecentNames(ctx context.Context, userID uuid.UUID, limit int) ([]string, error)
}

// SuggestionRepository defines the interface for daily suggestion persistence
type SuggestionRepository interface {
	Create(ctx context.Context, suggestion *recipe.DailySuggestion) error
	// FindInWindow returns the user's suggestion with suggestedAt inside
	// [start, end), or nil when there is none.
	FindInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (*recipe.DailySuggestion, error)
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}

// RecipeGenerator produces recipe text from a prompt. Implementations parse
// their own raw output and substitute their fallback recipe on any failure,
// so the returned error is reserved for context cancellation.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, prompt string) (*recipe.Recipe, error)
	HealthCheck(ctx context.Context) error
	Name() string
}

// ImageGenerator produces an image URL for a generated dish. Failures
// resolve to a placeholder URL, never an error visible to callers.
type ImageGenerator interface {
	GenerateFoodImage(ctx context.Context, dishName, styleHint string) string
}

// ImageStore persists generated image bytes and returns a serving URL
type ImageStore interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}

// TokenService issues and verifies the signed access tokens returned by
// register and login
type TokenService interface {
	Generate(userID uuid.UUID) (string, error)
	Validate(tokenString string) (uuid.UUID, error)
}
