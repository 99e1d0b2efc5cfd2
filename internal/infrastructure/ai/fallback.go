package ai

import "github.com/pantrywizard/v2/internal/domain/recipe"

// FallbackStirFry is the recipe served when the ollama or local backend
// cannot produce usable output. Each call returns a fresh value.
func FallbackStirFry() *recipe.Recipe {
	return &recipe.Recipe{
		Name:        "Simple Pantry Stir-Fry",
		Description: "A quick and healthy stir-fry using your available ingredients.",
		Ingredients: []recipe.Ingredient{{Name: "mixed vegetables", Amount: "2 cups"}},
		Steps: []string{
			"Heat oil in a pan",
			"Add vegetables and stir-fry for 5 minutes",
			"Season with salt and pepper",
			"Serve hot",
		},
		TimeMinutes:         15,
		Difficulty:          "easy",
		Calories:            200,
		Macros:              recipe.Macros{ProteinG: 10, CarbsG: 30, FatG: 5},
		HealthJustification: "A balanced meal with vegetables providing essential nutrients.",
	}
}

// FallbackBowl is the recipe served when the API backend cannot produce
// usable output.
func FallbackBowl() *recipe.Recipe {
	return &recipe.Recipe{
		Name:        "Healthy Pantry Bowl",
		Description: "A nutritious bowl made from your available ingredients.",
		Ingredients: []recipe.Ingredient{{Name: "available ingredients", Amount: "as needed"}},
		Steps: []string{
			"Prepare your ingredients",
			"Combine in a bowl",
			"Season to taste",
			"Enjoy!",
		},
		TimeMinutes:         20,
		Difficulty:          "easy",
		Calories:            250,
		Macros:              recipe.Macros{ProteinG: 15, CarbsG: 35, FatG: 8},
		HealthJustification: "A balanced meal using fresh ingredients from your pantry.",
	}
}
