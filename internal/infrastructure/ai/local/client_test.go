package local

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zaptest"

	"github.com/pantrywizard/v2/internal/domain/recipe"
)

type LocalClientTestSuite struct {
	suite.Suite
	client *Client
}

func (suite *LocalClientTestSuite) SetupTest() {
	suite.client = NewClient(zaptest.NewLogger(suite.T()))
}

func promptWithPantry(pantryLine string) string {
	return fmt.Sprintf("You are a health-focused chef AI.\n\nPantry ingredients available (list): %s\nRecent cooked recipes (titles): None\n", pantryLine)
}

func (suite *LocalClientTestSuite) TestGenerateRecipe_SamePrompt_IsDeterministic() {
	// Arrange
	prompt := promptWithPantry("rice (2 cups), tofu (200 g)")

	// Act
	first, err := suite.client.GenerateRecipe(context.Background(), prompt)
	suite.Require().NoError(err)
	second, err := suite.client.GenerateRecipe(context.Background(), prompt)
	suite.Require().NoError(err)

	// Assert
	suite.Equal(first, second)
}

func (suite *LocalClientTestSuite) TestGenerateRecipe_RecoversPantryIngredients() {
	// Arrange
	prompt := promptWithPantry("rice (2 cups), tofu (200 g), basil")

	// Act
	rec, err := suite.client.GenerateRecipe(context.Background(), prompt)

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]recipe.Ingredient{
		{Name: "rice", Amount: "2 cups"},
		{Name: "tofu", Amount: "200 g"},
		{Name: "basil", Amount: "as needed"},
	}, rec.Ingredients)
	suite.Contains(rec.Name, "Rice")
	// rice is the only table match: 130 * 0.5
	suite.InDelta(65, rec.Calories, 0.001)
}

func (suite *LocalClientTestSuite) TestGenerateRecipe_NoPantryLine_UsesMixedVegetables() {
	// Act
	rec, err := suite.client.GenerateRecipe(context.Background(), "no pantry information at all")

	// Assert
	suite.Require().NoError(err)
	suite.Equal([]recipe.Ingredient{{Name: "mixed vegetables", Amount: "2 cups"}}, rec.Ingredients)
	suite.Contains(rec.Name, "Mixed Vegetable")
}

func (suite *LocalClientTestSuite) TestGenerateRecipe_PlaceholderPantryLine_UsesMixedVegetables() {
	// Arrange
	prompt := promptWithPantry("No specific ingredients listed (use common pantry staples)")

	// Act
	rec, err := suite.client.GenerateRecipe(context.Background(), prompt)

	// Assert
	suite.Require().NoError(err)
	suite.Equal("mixed vegetables", rec.Ingredients[0].Name)
}

func (suite *LocalClientTestSuite) TestGenerateRecipe_CanceledContext_ReturnsError() {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Act
	rec, err := suite.client.GenerateRecipe(ctx, "anything")

	// Assert
	suite.Error(err)
	suite.Nil(rec)
}

func (suite *LocalClientTestSuite) TestHealthCheck_AlwaysHealthy() {
	suite.NoError(suite.client.HealthCheck(context.Background()))
}

func TestLocalClientTestSuite(t *testing.T) {
	suite.Run(t, new(LocalClientTestSuite))
}
