// Package nutrition provides heuristic nutrition calculations used by the
// recipe pipeline and the reporting layer.
package nutrition

import (
	"math"
	"strings"
)

// BMI calculates body mass index from height (cm) and weight (kg),
// rounded to one decimal. Returns 0 unless both inputs are positive.
func BMI(heightCm, weightKg float64) float64 {
	if heightCm <= 0 || weightKg <= 0 {
		return 0
	}
	heightM := heightCm / 100.0
	return math.Round(weightKg/(heightM*heightM)*10) / 10
}

// calorieEntry maps an ingredient keyword to a rough calorie figure.
// Scan order matters: the first keyword contained in the ingredient
// name wins, so the table is a slice rather than a map.
type calorieEntry struct {
	keyword  string
	calories float64
}

// Rough per-unit figures (per 100g/100ml or per piece).
var calorieTable = []calorieEntry{
	{"chicken", 165},
	{"beef", 250},
	{"pork", 242},
	{"fish", 206},
	{"rice", 130},
	{"pasta", 131},
	{"potato", 77},
	{"onion", 40},
	{"tomato", 18},
	{"carrot", 41},
	{"broccoli", 34},
	{"spinach", 23},
	{"egg", 70},
	{"cheese", 113},
	{"milk", 42},
	{"oil", 884},
	{"butter", 717},
}

// EstimateCalories gives a rough calorie estimate for a list of ingredient
// names. Each name contributes half of its first matching table entry;
// amounts are not parsed. When nothing matches, the estimate defaults to
// 50 calories per ingredient. The result is rounded to a whole number.
func EstimateCalories(ingredientNames []string) float64 {
	total := 0.0

	for _, name := range ingredientNames {
		lowered := strings.ToLower(name)
		for _, entry := range calorieTable {
			if strings.Contains(lowered, entry.keyword) {
				total += entry.calories * 0.5
				break
			}
		}
	}

	if total == 0 {
		total = float64(len(ingredientNames)) * 50
	}

	return math.Round(total)
}
