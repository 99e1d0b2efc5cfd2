package testutils

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pantrywizard/v2/internal/application/ai"
	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/domain/user"
)

// MockUserRepository is a testify mock of outbound.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockPantryRepository is a testify mock of outbound.PantryRepository
type MockPantryRepository struct {
	mock.Mock
}

func (m *MockPantryRepository) Create(ctx context.Context, item *pantry.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockPantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockPantryRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockPantryRepository) FindByID(ctx context.Context, userID, itemID uuid.UUID) (*pantry.Item, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pantry.Item), args.Error(1)
}

func (m *MockPantryRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]*pantry.Item, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*pantry.Item), args.Error(1)
}

// MockHistoryRepository is a testify mock of outbound.HistoryRepository
type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, entry *recipe.HistoryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockHistoryRepository) FindByUser(ctx context.Context, userID uuid.UUID, since time.Time, limit int) ([]*recipe.HistoryEntry, error) {
	args := m.Called(ctx, userID, since, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.HistoryEntry), args.Error(1)
}

func (m *MockHistoryRepository) FindRecentNames(ctx context.Context, userID uuid.UUID, limit int) ([]string, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockSuggestionRepository is a testify mock of outbound.SuggestionRepository
type MockSuggestionRepository struct {
	mock.Mock
}

func (m *MockSuggestionRepository) Create(ctx context.Context, suggestion *recipe.DailySuggestion) error {
	return m.Called(ctx, suggestion).Error(0)
}

func (m *MockSuggestionRepository) FindInWindow(ctx context.Context, userID uuid.UUID, start, end time.Time) (*recipe.DailySuggestion, error) {
	args := m.Called(ctx, userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.DailySuggestion), args.Error(1)
}

// MockTokenService is a testify mock of outbound.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Generate(userID uuid.UUID) (string, error) {
	args := m.Called(userID)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Validate(tokenString string) (uuid.UUID, error) {
	args := m.Called(tokenString)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

// ScriptedGenerator returns a fixed sequence of recipes, repeating the
// final one once the script runs out. It satisfies the recipe service's
// Generator dependency without a backend.
type ScriptedGenerator struct {
	Recipes []*recipe.Recipe
	Calls   int
	Params  []ai.GenerateParams
}

func (g *ScriptedGenerator) GenerateForUser(ctx context.Context, p ai.GenerateParams) (*recipe.Recipe, error) {
	g.Params = append(g.Params, p)
	idx := g.Calls
	if idx >= len(g.Recipes) {
		idx = len(g.Recipes) - 1
	}
	g.Calls++
	return g.Recipes[idx], nil
}

// StaticImageGenerator always resolves to the same URL
type StaticImageGenerator struct {
	URL string
}

func (g *StaticImageGenerator) GenerateFoodImage(ctx context.Context, dishName, styleHint string) string {
	if g.URL == "" {
		return "/static/images/placeholder.jpg"
	}
	return g.URL
}
