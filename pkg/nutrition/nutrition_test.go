package nutrition

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBMI(t *testing.T) {
	testCases := []struct {
		name     string
		heightCm float64
		weightKg float64
		expected float64
	}{
		{"TypicalAdult", 175, 70, 22.9},
		{"RoundsToOneDecimal", 180, 80, 24.7},
		{"ShortAndLight", 150, 45, 20.0},
		{"ZeroHeight", 0, 70, 0},
		{"ZeroWeight", 175, 0, 0},
		{"NegativeHeight", -175, 70, 0},
		{"BothZero", 0, 0, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, BMI(tc.heightCm, tc.weightKg), 0.001)
		})
	}
}

func TestEstimateCalories(t *testing.T) {
	testCases := []struct {
		name        string
		ingredients []string
		expected    float64
	}{
		{
			name:        "SingleMatch",
			ingredients: []string{"chicken breast"},
			expected:    83, // 165 * 0.5 = 82.5, rounds half away from zero
		},
		{
			name:        "FirstKeywordWins",
			ingredients: []string{"butter chicken"},
			expected:    83, // chicken (165) precedes butter (717) in the table
		},
		{
			name:        "OneMatchPerIngredient",
			ingredients: []string{"rice", "egg", "spinach"},
			expected:    112, // (130+70+23) * 0.5 = 111.5
		},
		{
			name:        "NoMatchesUsesDefault",
			ingredients: []string{"dragonfruit", "quinoa", "tahini"},
			expected:    150, // 3 * 50
		},
		{
			name:        "EmptyList",
			ingredients: nil,
			expected:    0,
		},
		{
			name:        "CaseInsensitive",
			ingredients: []string{"CHICKEN Thighs"},
			expected:    83,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EstimateCalories(tc.ingredients))
		})
	}
}
