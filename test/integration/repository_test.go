//go:build integration

package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/domain/user"
	gormRepo "github.com/pantrywizard/v2/internal/infrastructure/persistence/gorm"
	"github.com/pantrywizard/v2/internal/ports/outbound"
	"github.com/pantrywizard/v2/test/testutils"
)

// RepositoryTestSuite runs the gorm repositories against a real postgres
// instance so driver-specific behavior (unique indexes, timestamp
// comparisons) is covered.
type RepositoryTestSuite struct {
	suite.Suite
	testDB      *testutils.TestDatabase
	users       outbound.UserRepository
	pantry      outbound.PantryRepository
	history     outbound.HistoryRepository
	suggestions outbound.SuggestionRepository
	factory     *testutils.Factory
	ctx         context.Context
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.testDB = testutils.SetupPostgres(suite.T())
	suite.users = gormRepo.NewUserRepository(suite.testDB.GormDB)
	suite.pantry = gormRepo.NewPantryRepository(suite.testDB.GormDB)
	suite.history = gormRepo.NewHistoryRepository(suite.testDB.GormDB)
	suite.suggestions = gormRepo.NewSuggestionRepository(suite.testDB.GormDB)
	suite.factory = testutils.NewFactory(7)
	suite.ctx = context.Background()
}

// createUser persists a fresh user and returns it
func (suite *RepositoryTestSuite) createUser() *user.User {
	u := suite.factory.User(suite.T())
	suite.Require().NoError(suite.users.Create(suite.ctx, u))
	return u
}

func (suite *RepositoryTestSuite) TestUserRepository_CreateAndFind() {
	created := suite.createUser()

	byID, err := suite.users.FindByID(suite.ctx, created.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(byID)
	suite.Equal(created.Email(), byID.Email())

	byEmail, err := suite.users.FindByEmail(suite.ctx, created.Email())
	suite.Require().NoError(err)
	suite.Require().NotNil(byEmail)
	suite.Equal(created.ID(), byEmail.ID())

	exists, err := suite.users.ExistsByEmail(suite.ctx, created.Email())
	suite.Require().NoError(err)
	suite.True(exists)

	exists, err = suite.users.ExistsByEmail(suite.ctx, "nobody@example.com")
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *RepositoryTestSuite) TestUserRepository_DuplicateEmail_Rejected() {
	created := suite.createUser()

	dup, err := user.NewUser("Someone Else", created.Email(), "password-123", user.HealthProfile{})
	suite.Require().NoError(err)

	err = suite.users.Create(suite.ctx, dup)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "already exists")
}

func (suite *RepositoryTestSuite) TestUserRepository_FindByID_Unknown_ReturnsNil() {
	found, err := suite.users.FindByID(suite.ctx, uuid.New())
	suite.Require().NoError(err)
	suite.Nil(found)
}

func (suite *RepositoryTestSuite) TestPantryRepository_ScopedToOwner() {
	owner := suite.createUser()
	other := suite.createUser()

	item := suite.factory.PantryItem(suite.T(), owner.ID())
	suite.Require().NoError(suite.pantry.Create(suite.ctx, item))

	ownerItems, err := suite.pantry.FindByUser(suite.ctx, owner.ID())
	suite.Require().NoError(err)
	suite.Len(ownerItems, 1)

	otherItems, err := suite.pantry.FindByUser(suite.ctx, other.ID())
	suite.Require().NoError(err)
	suite.Empty(otherItems)

	// Lookups and deletes through the wrong owner must miss.
	found, err := suite.pantry.FindByID(suite.ctx, other.ID(), item.ID())
	suite.Require().NoError(err)
	suite.Nil(found)

	err = suite.pantry.Delete(suite.ctx, other.ID(), item.ID())
	suite.Require().Error(err)

	suite.Require().NoError(suite.pantry.Delete(suite.ctx, owner.ID(), item.ID()))
	remaining, err := suite.pantry.FindByUser(suite.ctx, owner.ID())
	suite.Require().NoError(err)
	suite.Empty(remaining)
}

func (suite *RepositoryTestSuite) TestHistoryRepository_OrderingAndWindow() {
	owner := suite.createUser()
	snapshot := testutils.RecipeSnapshotJSON(suite.T(), "Archived Dish")

	for i, age := range []int{10, 3, 1} {
		entry := recipe.ReconstructHistoryEntry(
			uuid.New(),
			owner.ID(),
			[]string{"Oldest", "Middle", "Newest"}[i],
			snapshot,
			nil,
			testutils.DaysAgo(age),
		)
		suite.Require().NoError(suite.history.Create(suite.ctx, entry))
	}

	all, err := suite.history.FindByUser(suite.ctx, owner.ID(), time.Time{}, 0)
	suite.Require().NoError(err)
	suite.Require().Len(all, 3)
	suite.Equal("Newest", all[0].RecipeName())
	suite.Equal("Oldest", all[2].RecipeName())

	// A week-long lower bound drops the ten-day-old entry.
	lastWeek, err := suite.history.FindByUser(suite.ctx, owner.ID(), testutils.DaysAgo(7), 0)
	suite.Require().NoError(err)
	suite.Len(lastWeek, 2)

	names, err := suite.history.FindRecentNames(suite.ctx, owner.ID(), 2)
	suite.Require().NoError(err)
	suite.Equal([]string{"Newest", "Middle"}, names)
}

func (suite *RepositoryTestSuite) TestSuggestionRepository_FindInWindow() {
	owner := suite.createUser()
	snapshot := testutils.RecipeSnapshotJSON(suite.T(), "Daily Dish")

	stored := recipe.ReconstructDailySuggestion(
		uuid.New(), owner.ID(), snapshot, time.Now().UTC(),
	)
	suite.Require().NoError(suite.suggestions.Create(suite.ctx, stored))

	start, end := recipe.DayWindowUTC(time.Now())
	found, err := suite.suggestions.FindInWindow(suite.ctx, owner.ID(), start, end)
	suite.Require().NoError(err)
	suite.Require().NotNil(found)
	suite.Equal(stored.ID(), found.ID())

	// Yesterday's window is empty.
	previous, err := suite.suggestions.FindInWindow(
		suite.ctx, owner.ID(), start.Add(-24*time.Hour), start,
	)
	suite.Require().NoError(err)
	suite.Nil(previous)

	// Another user's window is empty too.
	other := suite.createUser()
	foreign, err := suite.suggestions.FindInWindow(suite.ctx, other.ID(), start, end)
	suite.Require().NoError(err)
	suite.Nil(foreign)
}

func TestRepositoryTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed repository tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}
