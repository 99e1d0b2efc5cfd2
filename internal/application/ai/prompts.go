package ai

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/user"
	"github.com/pantrywizard/v2/pkg/nutrition"
)

// recipePromptTemplate is the generation prompt. The model is instructed to
// answer with bare JSON; everything downstream depends on that shape.
const recipePromptTemplate = `You are a health-focused chef AI. Output only valid JSON.

User profile:
- Name: %s
- Age: %s
- Height_cm: %s
- Weight_kg: %s
- BMI: %s
- Diet: %s
- Allergies: %s
- Health goal: %s

Pantry ingredients available (list): %s
Recent cooked recipes (titles): %s
Preferred cuisine: %s
Spice level: %s

Task:
- Using only the given pantry ingredients, generate ONE healthy recipe optimized for the user's health goal.
- Avoid allergies and disliked items.
- Ensure variety: do not repeat any recipe title that is similar to the recent titles.
- If a required staple is missing (salt, oil, water), assume small amounts are available.
- Make the recipe practical and easy to follow.

Return JSON EXACTLY in this shape:
{
  "name": "Dish name",
  "description": "Short description 1-2 sentences",
  "ingredients": [
    {"name":"onion", "amount":"1 medium"},
    ...
  ],
  "steps": [
    "Step 1 ...",
    ...
  ],
  "time_minutes": 30,
  "difficulty": "easy|medium|hard",
  "calories": 420,
  "macros": {"protein_g":20, "carbs_g":50, "fat_g":10},
  "health_justification": "Brief sentence explaining why this suits the user's goals."
}`

// BuildRecipePrompt renders the generation prompt from the user's health
// profile, the ingredient list and recent recipe titles. Extras are
// free-form ingredient names without quantities.
func BuildRecipePrompt(u *user.User, items []*pantry.Item, extras []string, preferences map[string]string, recentTitles []string) string {
	profile := u.Profile()
	bmi := nutrition.BMI(profile.HeightCm, profile.WeightKg)

	entries := make([]string, 0, len(items)+len(extras))
	for _, item := range items {
		entries = append(entries, fmt.Sprintf("%s (%g %s)", item.Name(), item.Quantity(), item.Unit()))
	}
	for _, extra := range extras {
		if extra = strings.TrimSpace(extra); extra != "" {
			entries = append(entries, extra)
		}
	}
	pantryList := strings.Join(entries, ", ")
	if pantryList == "" {
		pantryList = "No specific ingredients listed (use common pantry staples)"
	}

	recent := "None"
	if len(recentTitles) > 0 {
		recent = strings.Join(recentTitles, ", ")
	}

	cuisine := "any"
	if v, ok := preferences["cuisine"]; ok {
		cuisine = v
	}
	spiceLevel := "medium"
	if v, ok := preferences["spice_level"]; ok {
		spiceLevel = v
	}

	return fmt.Sprintf(recipePromptTemplate,
		u.Name(),
		orNotSpecified(float64(profile.Age)),
		orNotSpecified(profile.HeightCm),
		orNotSpecified(profile.WeightKg),
		strconv.FormatFloat(bmi, 'f', 1, 64),
		orDefault(profile.DietType, "No restrictions"),
		orDefault(profile.Allergies, "None"),
		orDefault(profile.Goal, "General health"),
		pantryList,
		recent,
		cuisine,
		spiceLevel,
	)
}

func orNotSpecified(v float64) string {
	if v <= 0 {
		return "Not specified"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
