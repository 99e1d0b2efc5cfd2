// Package local provides an in-process recipe generator. It needs no model
// server and answers deterministically from the prompt contents, which
// makes it the backend of choice for development and tests.
package local

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/pkg/nutrition"
)

const pantryLinePrefix = "Pantry ingredients available (list): "

// Client implements the RecipeGenerator interface without any model
type Client struct {
	logger *zap.Logger
}

// NewClient creates the in-process generator
func NewClient(logger *zap.Logger) *Client {
	return &Client{logger: logger.Named("local-client")}
}

type dishTemplate struct {
	nameFormat  string
	steps       []string
	timeMinutes int
	difficulty  string
	macros      recipe.Macros
}

// dishTemplates are cycled by prompt hash. Retry prompts differ from the
// original prompt, so a repetition retry lands on a different template.
var dishTemplates = []dishTemplate{
	{
		nameFormat: "%s Stir-Fry",
		steps: []string{
			"Heat a little oil in a large pan",
			"Add the chopped ingredients and stir-fry over high heat for 5 minutes",
			"Season with salt and pepper",
			"Serve hot",
		},
		timeMinutes: 15,
		difficulty:  "easy",
		macros:      recipe.Macros{ProteinG: 12, CarbsG: 28, FatG: 6},
	},
	{
		nameFormat: "Hearty %s Soup",
		steps: []string{
			"Bring a pot of water to a simmer",
			"Add the ingredients and cook gently for 25 minutes",
			"Season to taste and blend if you prefer it smooth",
			"Ladle into bowls",
		},
		timeMinutes: 35,
		difficulty:  "easy",
		macros:      recipe.Macros{ProteinG: 9, CarbsG: 22, FatG: 4},
	},
	{
		nameFormat: "Roasted %s Bowl",
		steps: []string{
			"Preheat the oven to 200C",
			"Toss the ingredients with oil and spread on a tray",
			"Roast for 20 minutes until browned",
			"Assemble everything in a bowl and serve",
		},
		timeMinutes: 30,
		difficulty:  "medium",
		macros:      recipe.Macros{ProteinG: 14, CarbsG: 40, FatG: 9},
	},
	{
		nameFormat: "%s Skillet",
		steps: []string{
			"Warm a skillet over medium heat",
			"Cook the ingredients together, stirring now and then, for 15 minutes",
			"Adjust the seasoning",
			"Serve straight from the pan",
		},
		timeMinutes: 25,
		difficulty:  "easy",
		macros:      recipe.Macros{ProteinG: 16, CarbsG: 26, FatG: 10},
	},
	{
		nameFormat: "Herbed %s Salad",
		steps: []string{
			"Chop the ingredients into bite-sized pieces",
			"Whisk a simple dressing of oil and whatever acid you have",
			"Toss everything together with plenty of herbs",
			"Rest for 5 minutes before serving",
		},
		timeMinutes: 10,
		difficulty:  "easy",
		macros:      recipe.Macros{ProteinG: 6, CarbsG: 14, FatG: 7},
	},
}

// Name identifies the backend in logs and health reports
func (c *Client) Name() string {
	return "local"
}

// HealthCheck always succeeds: there is nothing remote to be down
func (c *Client) HealthCheck(ctx context.Context) error {
	return nil
}

// GenerateRecipe composes a recipe from the pantry line of the prompt.
// The template is chosen by hashing the whole prompt, so identical
// prompts produce identical recipes.
func (c *Client) GenerateRecipe(ctx context.Context, prompt string) (*recipe.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ingredients := parsePantryLine(prompt)
	hero := "Mixed Vegetable"
	if len(ingredients) > 0 {
		hero = titleCase(ingredients[0].Name)
	} else {
		ingredients = []recipe.Ingredient{{Name: "mixed vegetables", Amount: "2 cups"}}
	}

	tpl := dishTemplates[promptHash(prompt)%uint32(len(dishTemplates))]

	names := make([]string, len(ingredients))
	for i, ing := range ingredients {
		names[i] = ing.Name
	}

	rec := &recipe.Recipe{
		Name:                fmt.Sprintf(tpl.nameFormat, hero),
		Description:         fmt.Sprintf("A wholesome dish built around %s from your pantry.", ingredients[0].Name),
		Ingredients:         ingredients,
		Steps:               tpl.steps,
		TimeMinutes:         tpl.timeMinutes,
		Difficulty:          tpl.difficulty,
		Calories:            nutrition.EstimateCalories(names),
		Macros:              tpl.macros,
		HealthJustification: "Uses what you already have with a sensible balance of protein, carbs and fat.",
	}

	c.logger.Debug("local recipe composed", zap.String("name", rec.Name))
	return rec, nil
}

// parsePantryLine recovers ingredient names and amounts from the prompt's
// pantry list. Entries look like "rice (2 cups)"; entries without a
// parenthesized amount are kept as free-form names.
func parsePantryLine(prompt string) []recipe.Ingredient {
	var line string
	for _, l := range strings.Split(prompt, "\n") {
		if strings.HasPrefix(l, pantryLinePrefix) {
			line = strings.TrimPrefix(l, pantryLinePrefix)
			break
		}
	}
	if line == "" || strings.HasPrefix(line, "No specific ingredients") {
		return nil
	}

	var ingredients []recipe.Ingredient
	for _, entry := range strings.Split(line, ", ") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, amount := entry, "as needed"
		if open := strings.Index(entry, " ("); open != -1 && strings.HasSuffix(entry, ")") {
			name = entry[:open]
			amount = entry[open+2 : len(entry)-1]
		}
		ingredients = append(ingredients, recipe.Ingredient{Name: name, Amount: amount})
	}
	return ingredients
}

func promptHash(prompt string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(prompt))
	return h.Sum32()
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
