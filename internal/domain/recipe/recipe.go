// Package recipe defines the generated recipe shape and the entities that
// track cooked recipes and daily suggestions.
package recipe

// Recipe is the generated artifact returned by the AI pipeline. Its JSON
// shape is part of the API contract and of the generation prompt.
type Recipe struct {
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	Ingredients         []Ingredient `json:"ingredients"`
	Steps               []string     `json:"steps"`
	TimeMinutes         int          `json:"time_minutes"`
	Difficulty          string       `json:"difficulty"`
	Calories            float64      `json:"calories"`
	Macros              Macros       `json:"macros"`
	HealthJustification string       `json:"health_justification"`
}

// Ingredient is a named amount inside a generated recipe
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Macros holds the macronutrient split of a recipe
type Macros struct {
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
}

// IngredientNames returns the ingredient names in order
func (r *Recipe) IngredientNames() []string {
	names := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		names[i] = ing.Name
	}
	return names
}

// IngredientNamesFromData extracts ingredient names from an arbitrary
// decoded recipe document. Saved snapshots are free-form JSON, so entries
// that are not objects or carry no name yield an empty string rather than
// an error; callers decide whether to filter those out.
func IngredientNamesFromData(data map[string]interface{}) []string {
	raw, ok := data["ingredients"].([]interface{})
	if !ok {
		return nil
	}

	names := make([]string, len(raw))
	for i, entry := range raw {
		if m, ok := entry.(map[string]interface{}); ok {
			if name, ok := m["name"].(string); ok {
				names[i] = name
			}
		}
	}
	return names
}
