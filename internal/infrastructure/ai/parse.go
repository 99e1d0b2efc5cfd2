// Package ai provides shared response parsing for the recipe generation
// backends. Models wrap their JSON in prose often enough that every client
// funnels raw output through ExtractJSON and ParseRecipe.
package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pantrywizard/v2/internal/domain/recipe"
)

// requiredFields must all be present in a generated recipe object.
// health_justification is optional.
var requiredFields = []string{
	"name",
	"description",
	"ingredients",
	"steps",
	"time_minutes",
	"difficulty",
	"calories",
	"macros",
}

// ExtractJSON returns the substring spanning the first opening brace to the
// last closing brace. When no such span exists the input is returned
// unchanged so the caller's JSON decode produces the real error.
func ExtractJSON(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return text
	}
	return text[start : end+1]
}

// ParseRecipe validates raw model output and decodes it into a Recipe.
// All required fields must be present. A macros value that is not an
// object is replaced with zeroed macros rather than rejected.
func ParseRecipe(raw string) (*recipe.Recipe, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(ExtractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("invalid JSON response: %w", err)
	}

	for _, field := range requiredFields {
		if _, ok := data[field]; !ok {
			return nil, fmt.Errorf("missing required field: %s", field)
		}
	}

	if _, ok := data["macros"].(map[string]interface{}); !ok {
		data["macros"] = map[string]interface{}{"protein_g": 0, "carbs_g": 0, "fat_g": 0}
	}

	// Round-trip through JSON so the decode applies the Recipe schema
	// to the cleaned map.
	cleaned, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("re-encode recipe: %w", err)
	}

	var rec recipe.Recipe
	if err := json.Unmarshal(cleaned, &rec); err != nil {
		return nil, fmt.Errorf("recipe shape mismatch: %w", err)
	}
	return &rec, nil
}
