package ai

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/user"
)

type PromptTestSuite struct {
	suite.Suite
	user *user.User
}

func (suite *PromptTestSuite) SetupTest() {
	u, err := user.NewUser("Dana", "dana@example.com", "password123", user.HealthProfile{
		HeightCm:  170,
		WeightKg:  65,
		Age:       30,
		DietType:  "vegetarian",
		Allergies: "peanuts",
		Goal:      "weight loss",
	})
	suite.Require().NoError(err)
	suite.user = u
}

func (suite *PromptTestSuite) pantryItem(name string, quantity float64, unit string) *pantry.Item {
	item, err := pantry.NewItem(uuid.New(), name, quantity, unit)
	suite.Require().NoError(err)
	return item
}

func (suite *PromptTestSuite) TestBuildRecipePrompt_FullProfile_RendersAllSections() {
	// Arrange
	items := []*pantry.Item{
		suite.pantryItem("rice", 2, "cups"),
		suite.pantryItem("tofu", 200, "g"),
	}

	// Act
	prompt := BuildRecipePrompt(suite.user, items, nil, map[string]string{
		"cuisine":     "thai",
		"spice_level": "hot",
	}, []string{"Tofu Curry", "Rice Bowl"})

	// Assert
	suite.Contains(prompt, "You are a health-focused chef AI. Output only valid JSON.")
	suite.Contains(prompt, "- Name: Dana")
	suite.Contains(prompt, "- Age: 30")
	suite.Contains(prompt, "- Height_cm: 170")
	suite.Contains(prompt, "- Weight_kg: 65")
	suite.Contains(prompt, "- BMI: 22.5")
	suite.Contains(prompt, "- Diet: vegetarian")
	suite.Contains(prompt, "- Allergies: peanuts")
	suite.Contains(prompt, "- Health goal: weight loss")
	suite.Contains(prompt, "Pantry ingredients available (list): rice (2 cups), tofu (200 g)")
	suite.Contains(prompt, "Recent cooked recipes (titles): Tofu Curry, Rice Bowl")
	suite.Contains(prompt, "Preferred cuisine: thai")
	suite.Contains(prompt, "Spice level: hot")
	suite.Contains(prompt, `"macros": {"protein_g":20, "carbs_g":50, "fat_g":10}`)
}

func (suite *PromptTestSuite) TestBuildRecipePrompt_EmptyProfile_UsesPlaceholders() {
	// Arrange
	u, err := user.NewUser("Sam", "sam@example.com", "password123", user.HealthProfile{})
	suite.Require().NoError(err)

	// Act
	prompt := BuildRecipePrompt(u, nil, nil, nil, nil)

	// Assert
	suite.Contains(prompt, "- Age: Not specified")
	suite.Contains(prompt, "- Height_cm: Not specified")
	suite.Contains(prompt, "- Weight_kg: Not specified")
	suite.Contains(prompt, "- BMI: 0.0")
	suite.Contains(prompt, "- Diet: No restrictions")
	suite.Contains(prompt, "- Allergies: None")
	suite.Contains(prompt, "- Health goal: General health")
	suite.Contains(prompt, "Pantry ingredients available (list): No specific ingredients listed (use common pantry staples)")
	suite.Contains(prompt, "Recent cooked recipes (titles): None")
	suite.Contains(prompt, "Preferred cuisine: any")
	suite.Contains(prompt, "Spice level: medium")
}

func (suite *PromptTestSuite) TestBuildRecipePrompt_ExtrasAppendedWithoutQuantities() {
	// Arrange
	items := []*pantry.Item{suite.pantryItem("pasta", 500, "g")}

	// Act
	prompt := BuildRecipePrompt(suite.user, items, []string{"basil", " ", "parmesan"}, nil, nil)

	// Assert
	suite.Contains(prompt, "Pantry ingredients available (list): pasta (500 g), basil, parmesan")
}

func (suite *PromptTestSuite) TestBuildRecipePrompt_ExplicitEmptyPreferenceIsKept() {
	// Act
	prompt := BuildRecipePrompt(suite.user, nil, nil, map[string]string{"cuisine": ""}, nil)

	// Assert
	suite.Contains(prompt, "Preferred cuisine: \nSpice level: medium")
}

func TestPromptTestSuite(t *testing.T) {
	suite.Run(t, new(PromptTestSuite))
}

func TestIsRepeat(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		recent    []string
		want      bool
	}{
		{
			name:      "identical name is a repeat",
			candidate: "Chicken Stir-Fry",
			recent:    []string{"chicken stir-fry"},
			want:      true,
		},
		{
			name:      "near-identical name is a repeat",
			candidate: "Chicken Stir Fry",
			recent:    []string{"Chicken Stir-Fry"},
			want:      true,
		},
		{
			name:      "different dish is not a repeat",
			candidate: "Lentil Soup",
			recent:    []string{"Chicken Stir-Fry", "Beef Tacos"},
			want:      false,
		},
		{
			name:      "no history is never a repeat",
			candidate: "Anything",
			recent:    nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, IsRepeat(tt.candidate, tt.recent))
		})
	}
}

func TestRetryDirectiveText(t *testing.T) {
	require.True(t, strings.HasPrefix(retryDirective, "\n\n"))
	require.Contains(t, retryDirective, "Generate a DIFFERENT recipe")
}
