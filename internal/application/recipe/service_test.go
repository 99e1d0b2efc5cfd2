package recipe

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/infrastructure/persistence/memory"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/pkg/errors"
	"github.com/pantrywizard/v2/test/testutils"
)

type RecipeServiceTestSuite struct {
	suite.Suite
	userRepo       *testutils.MockUserRepository
	pantryRepo     *testutils.MockPantryRepository
	historyRepo    *testutils.MockHistoryRepository
	suggestionRepo *testutils.MockSuggestionRepository
	generator      *testutils.ScriptedGenerator
	service        inbound.RecipeService
	factory        *testutils.Factory
	userID         uuid.UUID
	ctx            context.Context
}

func (suite *RecipeServiceTestSuite) SetupTest() {
	suite.userRepo = new(testutils.MockUserRepository)
	suite.pantryRepo = new(testutils.MockPantryRepository)
	suite.historyRepo = new(testutils.MockHistoryRepository)
	suite.suggestionRepo = new(testutils.MockSuggestionRepository)
	suite.factory = testutils.NewFactory(42)
	suite.generator = &testutils.ScriptedGenerator{
		Recipes: []*recipe.Recipe{suite.factory.Recipe("Lemon Chicken Rice")},
	}
	suite.service = NewRecipeService(
		suite.userRepo,
		suite.pantryRepo,
		suite.historyRepo,
		suite.suggestionRepo,
		memory.NewCacheRepository(),
		suite.generator,
		&testutils.StaticImageGenerator{URL: "/static/images/test.jpg"},
		zaptest.NewLogger(suite.T()),
	)
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func (suite *RecipeServiceTestSuite) stockedPantry() []*pantry.Item {
	return []*pantry.Item{
		suite.factory.PantryItem(suite.T(), suite.userID),
		suite.factory.PantryItem(suite.T(), suite.userID),
	}
}

func (suite *RecipeServiceTestSuite) TestGenerate_EmptyPantry_Fails() {
	suite.userRepo.On("FindByID", mock.Anything, suite.userID).
		Return(suite.factory.User(suite.T()), nil)
	suite.pantryRepo.On("FindByUser", mock.Anything, suite.userID).
		Return([]*pantry.Item{}, nil)

	_, err := suite.service.Generate(suite.ctx, suite.userID, inbound.GenerateRecipeCommand{
		UsePantry:    true,
		AvoidRepeats: true,
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeEmptyPantry))
	suite.Equal(0, suite.generator.Calls)
}

func (suite *RecipeServiceTestSuite) TestGenerate_StockedPantry_ReturnsRecipeWithImage() {
	items := suite.stockedPantry()
	suite.userRepo.On("FindByID", mock.Anything, suite.userID).
		Return(suite.factory.User(suite.T()), nil)
	suite.pantryRepo.On("FindByUser", mock.Anything, suite.userID).
		Return(items, nil)
	suite.historyRepo.On("FindRecentNames", mock.Anything, suite.userID, 10).
		Return([]string{"Old Stew"}, nil)

	dto, err := suite.service.Generate(suite.ctx, suite.userID, inbound.GenerateRecipeCommand{
		UsePantry:        true,
		ExtraIngredients: []string{"lemon"},
		Preferences:      map[string]string{"cuisine": "thai"},
		AvoidRepeats:     true,
	})

	suite.Require().NoError(err)
	suite.Equal("/static/images/test.jpg", dto.ImageURL)

	var doc map[string]interface{}
	suite.Require().NoError(json.Unmarshal(dto.Recipe, &doc))
	suite.Equal("Lemon Chicken Rice", doc["name"])

	suite.Require().Equal(1, suite.generator.Calls)
	params := suite.generator.Params[0]
	suite.Len(params.PantryItems, len(items))
	suite.Equal([]string{"lemon"}, params.Extras)
	suite.Equal([]string{"Old Stew"}, params.RecentTitles)
	suite.True(params.AvoidRepeats)
}

func (suite *RecipeServiceTestSuite) TestGenerate_WithoutPantry_OmitsPantryItems() {
	suite.userRepo.On("FindByID", mock.Anything, suite.userID).
		Return(suite.factory.User(suite.T()), nil)
	suite.pantryRepo.On("FindByUser", mock.Anything, suite.userID).
		Return(suite.stockedPantry(), nil)
	suite.historyRepo.On("FindRecentNames", mock.Anything, suite.userID, 10).
		Return([]string{}, nil)

	_, err := suite.service.Generate(suite.ctx, suite.userID, inbound.GenerateRecipeCommand{
		UsePantry:        false,
		ExtraIngredients: []string{"tofu"},
		AvoidRepeats:     false,
	})

	suite.Require().NoError(err)
	suite.Require().Equal(1, suite.generator.Calls)
	suite.Nil(suite.generator.Params[0].PantryItems)
	suite.False(suite.generator.Params[0].AvoidRepeats)
}

func (suite *RecipeServiceTestSuite) TestGenerate_UnknownUser_Fails() {
	suite.userRepo.On("FindByID", mock.Anything, suite.userID).Return(nil, nil)

	_, err := suite.service.Generate(suite.ctx, suite.userID, inbound.GenerateRecipeCommand{
		UsePantry: true,
	})

	suite.Require().Error(err)
	suite.True(errors.Is(err, errors.CodeUserNotFound))
}

func (suite *RecipeServiceTestSuite) TestDaily_ExistingSuggestion_ReplaysStoredRecipe() {
	stored := recipe.ReconstructDailySuggestion(
		uuid.New(),
		suite.userID,
		testutils.RecipeSnapshotJSON(suite.T(), "Morning Congee"),
		time.Now().UTC().Add(-2*time.Hour),
	)
	suite.suggestionRepo.On("FindInWindow", mock.Anything, suite.userID, mock.Anything, mock.Anything).
		Return(stored, nil)

	dto, err := suite.service.Daily(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.True(dto.SuggestedAt.Equal(stored.SuggestedAt()))

	var doc map[string]interface{}
	suite.Require().NoError(json.Unmarshal(dto.Recipe, &doc))
	suite.Equal("Morning Congee", doc["name"])
	suite.Equal(0, suite.generator.Calls)
	suite.suggestionRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *RecipeServiceTestSuite) TestDaily_FirstRequest_GeneratesOncePerDay() {
	suite.suggestionRepo.On("FindInWindow", mock.Anything, suite.userID, mock.Anything, mock.Anything).
		Return(nil, nil).Once()
	suite.suggestionRepo.On("Create", mock.Anything, mock.AnythingOfType("*recipe.DailySuggestion")).
		Return(nil).Once()
	suite.userRepo.On("FindByID", mock.Anything, suite.userID).
		Return(suite.factory.User(suite.T()), nil)
	suite.pantryRepo.On("FindByUser", mock.Anything, suite.userID).
		Return(suite.stockedPantry(), nil)
	suite.historyRepo.On("FindRecentNames", mock.Anything, suite.userID, 10).
		Return([]string{}, nil)

	first, err := suite.service.Daily(suite.ctx, suite.userID)
	suite.Require().NoError(err)

	// The second request of the same day is served from cache.
	second, err := suite.service.Daily(suite.ctx, suite.userID)
	suite.Require().NoError(err)

	suite.Equal(1, suite.generator.Calls)
	suite.True(second.SuggestedAt.Equal(first.SuggestedAt))
	suite.JSONEq(string(first.Recipe), string(second.Recipe))
	suite.suggestionRepo.AssertExpectations(suite.T())
}

func (suite *RecipeServiceTestSuite) TestSave_ExplicitCalories_WinOverSnapshot() {
	suite.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*recipe.HistoryEntry")).
		Return(nil)

	dto, err := suite.service.Save(suite.ctx, suite.userID, inbound.SaveRecipeCommand{
		RecipeJSON: map[string]interface{}{"name": "Pad Thai", "calories": 400.0},
		Calories:   floatPtr(650),
	})

	suite.Require().NoError(err)
	suite.Equal("Pad Thai", dto.RecipeName)
	suite.Require().NotNil(dto.Calories)
	suite.Equal(650.0, *dto.Calories)
}

func (suite *RecipeServiceTestSuite) TestSave_NoExplicitCalories_UsesSnapshotField() {
	suite.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*recipe.HistoryEntry")).
		Return(nil)

	dto, err := suite.service.Save(suite.ctx, suite.userID, inbound.SaveRecipeCommand{
		RecipeJSON: map[string]interface{}{"name": "Pad Thai", "calories": 400.0},
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(dto.Calories)
	suite.Equal(400.0, *dto.Calories)
}

func (suite *RecipeServiceTestSuite) TestSave_NoCaloriesAnywhere_EstimatesFromIngredients() {
	suite.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*recipe.HistoryEntry")).
		Return(nil)

	dto, err := suite.service.Save(suite.ctx, suite.userID, inbound.SaveRecipeCommand{
		RecipeJSON: map[string]interface{}{
			"name": "Chicken Rice Bowl",
			"ingredients": []interface{}{
				map[string]interface{}{"name": "chicken", "amount": "200 g"},
				map[string]interface{}{"name": "rice", "amount": "1 cup"},
			},
		},
	})

	suite.Require().NoError(err)
	suite.Require().NotNil(dto.Calories)
	// chicken and rice each contribute half their table figure.
	suite.Equal(148.0, *dto.Calories)
}

func (suite *RecipeServiceTestSuite) TestSave_MissingName_DefaultsToUnknownRecipe() {
	suite.historyRepo.On("Create", mock.Anything, mock.AnythingOfType("*recipe.HistoryEntry")).
		Return(nil)

	dto, err := suite.service.Save(suite.ctx, suite.userID, inbound.SaveRecipeCommand{
		RecipeJSON: map[string]interface{}{"calories": 300.0},
	})

	suite.Require().NoError(err)
	suite.Equal("Unknown Recipe", dto.RecipeName)
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}

func floatPtr(v float64) *float64 {
	return &v
}
