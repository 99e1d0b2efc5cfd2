package testutils

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/domain/user"
)

// Factory produces deterministic test data. The same seed yields the same
// sequence of entities so failures reproduce.
type Factory struct {
	faker *gofakeit.Faker
}

// NewFactory creates a factory with the given seed
func NewFactory(seed int64) *Factory {
	return &Factory{faker: gofakeit.New(seed)}
}

// User builds a valid account with a full health profile
func (f *Factory) User(t *testing.T) *user.User {
	t.Helper()

	u, err := user.NewUser(
		f.faker.Name(),
		f.faker.Email(),
		f.faker.Password(true, true, true, false, false, 12),
		user.HealthProfile{
			HeightCm:  float64(f.faker.Number(150, 200)),
			WeightKg:  float64(f.faker.Number(50, 120)),
			Age:       f.faker.Number(18, 80),
			DietType:  f.faker.RandomString([]string{"vegetarian", "vegan", "keto", ""}),
			Allergies: f.faker.RandomString([]string{"peanuts", "shellfish", ""}),
			Goal:      f.faker.RandomString([]string{"lose weight", "build muscle", ""}),
		},
	)
	require.NoError(t, err, "build test user")
	return u
}

// PantryItem builds a pantry item owned by the given user
func (f *Factory) PantryItem(t *testing.T, userID uuid.UUID) *pantry.Item {
	t.Helper()

	item, err := pantry.NewItem(
		userID,
		f.faker.RandomString([]string{"chicken breast", "rice", "broccoli", "eggs", "onion", "olive oil"}),
		float64(f.faker.Number(1, 10)),
		f.faker.RandomString([]string{"g", "kg", "pieces", "cups", "ml"}),
	)
	require.NoError(t, err, "build test pantry item")
	return item
}

// HistoryEntry builds a saved recipe snapshot with the given name
func (f *Factory) HistoryEntry(t *testing.T, userID uuid.UUID, name string, calories *float64) *recipe.HistoryEntry {
	t.Helper()

	entry, err := recipe.NewHistoryEntry(userID, name, RecipeSnapshotJSON(t, name), calories)
	require.NoError(t, err, "build test history entry")
	return entry
}

// Recipe builds a complete generated recipe with the given name
func (f *Factory) Recipe(name string) *recipe.Recipe {
	return &recipe.Recipe{
		Name:        name,
		Description: f.faker.Sentence(8),
		Ingredients: []recipe.Ingredient{
			{Name: "chicken", Amount: "200 g"},
			{Name: "rice", Amount: "1 cup"},
		},
		Steps:               []string{"Cook the chicken", "Boil the rice", "Combine and serve"},
		TimeMinutes:         f.faker.Number(10, 90),
		Difficulty:          f.faker.RandomString([]string{"easy", "medium", "hard"}),
		Calories:            float64(f.faker.Number(150, 900)),
		Macros:              recipe.Macros{ProteinG: 30, CarbsG: 45, FatG: 12},
		HealthJustification: f.faker.Sentence(6),
	}
}

// RecipeSnapshotJSON renders a minimal but complete recipe document for
// storing as a history snapshot
func RecipeSnapshotJSON(t *testing.T, name string) string {
	t.Helper()

	payload, err := json.Marshal(map[string]interface{}{
		"name":        name,
		"description": "A test dish.",
		"ingredients": []map[string]string{
			{"name": "chicken", "amount": "200 g"},
			{"name": "rice", "amount": "1 cup"},
		},
		"steps":        []string{"Cook", "Serve"},
		"time_minutes": 30,
		"difficulty":   "easy",
		"calories":     400,
		"macros":       map[string]float64{"protein_g": 30, "carbs_g": 45, "fat_g": 12},
	})
	require.NoError(t, err)
	return string(payload)
}

// ModelOutput wraps a recipe in the prose a model typically emits around
// its JSON, for exercising the extraction path
func ModelOutput(name string) string {
	return fmt.Sprintf(`Here is your recipe!
{"name":%q,"description":"A test dish.","ingredients":[{"name":"rice","amount":"1 cup"}],"steps":["Cook"],"time_minutes":25,"difficulty":"easy","calories":350,"macros":{"protein_g":12,"carbs_g":60,"fat_g":4},"health_justification":"Light and balanced."}
Enjoy your meal!`, name)
}

// DaysAgo returns a UTC timestamp the given number of days in the past
func DaysAgo(days int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -days)
}
