package recipe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecipeJSONShape(t *testing.T) {
	t.Run("MarshalledRecipe_ShouldUseContractFieldNames", func(t *testing.T) {
		// Arrange
		r := Recipe{
			Name:                "Tomato Rice",
			Description:         "Comfort food",
			Ingredients:         []Ingredient{{Name: "rice", Amount: "1 cup"}},
			Steps:               []string{"Cook rice"},
			TimeMinutes:         25,
			Difficulty:          "easy",
			Calories:            420,
			Macros:              Macros{ProteinG: 20, CarbsG: 50, FatG: 10},
			HealthJustification: "Balanced",
		}

		// Act
		raw, err := json.Marshal(r)
		require.NoError(t, err)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(raw, &data))

		// Assert
		assert.Contains(t, data, "time_minutes")
		assert.Contains(t, data, "health_justification")
		macros, ok := data["macros"].(map[string]interface{})
		require.True(t, ok)
		assert.Contains(t, macros, "protein_g")
		assert.Contains(t, macros, "carbs_g")
		assert.Contains(t, macros, "fat_g")
	})
}

func TestIngredientNames(t *testing.T) {
	t.Run("Recipe_ShouldListNamesInOrder", func(t *testing.T) {
		r := Recipe{Ingredients: []Ingredient{
			{Name: "rice", Amount: "1 cup"},
			{Name: "egg", Amount: "2"},
		}}

		assert.Equal(t, []string{"rice", "egg"}, r.IngredientNames())
	})

	t.Run("DecodedDocument_ShouldExtractNames", func(t *testing.T) {
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(`{
			"name": "Tomato Rice",
			"ingredients": [
				{"name": "rice", "amount": "1 cup"},
				{"name": "tomato", "amount": "2"}
			]
		}`), &data))

		assert.Equal(t, []string{"rice", "tomato"}, IngredientNamesFromData(data))
	})

	t.Run("MalformedEntries_ShouldYieldEmptyNames", func(t *testing.T) {
		var data map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(`{
			"ingredients": [
				{"name": "rice"},
				"just a string",
				{"amount": "2"}
			]
		}`), &data))

		assert.Equal(t, []string{"rice", "", ""}, IngredientNamesFromData(data))
	})

	t.Run("NoIngredientsKey_ShouldReturnNil", func(t *testing.T) {
		assert.Nil(t, IngredientNamesFromData(map[string]interface{}{"name": "x"}))
	})
}
