package history

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/ports/inbound"
	"github.com/pantrywizard/v2/test/testutils"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	repo    *testutils.MockHistoryRepository
	factory *testutils.Factory
	service inbound.HistoryService
	userID  uuid.UUID
	ctx     context.Context
}

func (suite *HistoryServiceTestSuite) SetupTest() {
	suite.repo = new(testutils.MockHistoryRepository)
	suite.factory = testutils.NewFactory(42)
	suite.service = NewHistoryService(suite.repo, zaptest.NewLogger(suite.T()))
	suite.userID = uuid.New()
	suite.ctx = context.Background()
}

func floatPtr(v float64) *float64 { return &v }

func (suite *HistoryServiceTestSuite) TestList_AllPeriod_PassesZeroSince() {
	entry := suite.factory.HistoryEntry(suite.T(), suite.userID, "Pasta Primavera", floatPtr(520))
	suite.repo.On("FindByUser", mock.Anything, suite.userID, time.Time{}, 0).
		Return([]*recipe.HistoryEntry{entry}, nil)

	entries, err := suite.service.List(suite.ctx, suite.userID, "")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.Equal("Pasta Primavera", entries[0].RecipeName)
	suite.JSONEq(entry.RecipeJSON(), string(entries[0].RecipeJSON))
}

func (suite *HistoryServiceTestSuite) TestList_WeekPeriod_BoundsTheQuery() {
	suite.repo.On("FindByUser", mock.Anything, suite.userID, mock.MatchedBy(func(since time.Time) bool {
		age := time.Since(since)
		return age > 7*24*time.Hour-time.Minute && age < 7*24*time.Hour+time.Minute
	}), 0).Return([]*recipe.HistoryEntry{}, nil)

	entries, err := suite.service.List(suite.ctx, suite.userID, inbound.PeriodWeek)

	suite.Require().NoError(err)
	suite.Empty(entries)
	suite.repo.AssertExpectations(suite.T())
}

func (suite *HistoryServiceTestSuite) TestList_CorruptSnapshot_DecodesToEmptyObject() {
	entry := recipe.ReconstructHistoryEntry(
		uuid.New(), suite.userID, "Mystery Dish", "{not json", nil, time.Now().UTC(),
	)
	suite.repo.On("FindByUser", mock.Anything, suite.userID, time.Time{}, 0).
		Return([]*recipe.HistoryEntry{entry}, nil)

	entries, err := suite.service.List(suite.ctx, suite.userID, "")

	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
	suite.JSONEq("{}", string(entries[0].RecipeJSON))
}

func (suite *HistoryServiceTestSuite) TestWeeklyReport_AveragesAndVariety() {
	entries := []*recipe.HistoryEntry{
		suite.factory.HistoryEntry(suite.T(), suite.userID, "Chicken Rice", floatPtr(400)),
		suite.factory.HistoryEntry(suite.T(), suite.userID, "Chicken Rice", nil),
		suite.factory.HistoryEntry(suite.T(), suite.userID, "Veggie Soup", floatPtr(200)),
	}
	suite.repo.On("FindByUser", mock.Anything, suite.userID, mock.AnythingOfType("time.Time"), 0).
		Return(entries, nil)

	report, err := suite.service.WeeklyReport(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(600.0, report.TotalCalories, "nil calories count as zero")
	suite.Equal(3, report.MealsCount)
	suite.Equal(200.0, report.AvgCaloriesPerMeal)
	suite.Equal(66.7, report.VarietyScore, "2 unique names across 3 meals")

	// Every factory snapshot lists chicken and rice once.
	suite.Require().Len(report.TopIngredients, 2)
	suite.Equal("chicken", report.TopIngredients[0].Name)
	suite.Equal(3, report.TopIngredients[0].Count)
	suite.Equal("rice", report.TopIngredients[1].Name)
}

func (suite *HistoryServiceTestSuite) TestWeeklyReport_NoMeals_AllZero() {
	suite.repo.On("FindByUser", mock.Anything, suite.userID, mock.AnythingOfType("time.Time"), 0).
		Return([]*recipe.HistoryEntry{}, nil)

	report, err := suite.service.WeeklyReport(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(0.0, report.TotalCalories)
	suite.Equal(0, report.MealsCount)
	suite.Equal(0.0, report.AvgCaloriesPerMeal)
	suite.Equal(0.0, report.VarietyScore)
	suite.Empty(report.TopIngredients)
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}
