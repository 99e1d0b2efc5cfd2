package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pantrywizard/v2/internal/ports/inbound"
)

// RecipeHandlers handles recipe generation and history write requests
type RecipeHandlers struct {
	recipes inbound.RecipeService
	logger  *zap.Logger
}

// NewRecipeHandlers creates the recipe handlers
func NewRecipeHandlers(recipes inbound.RecipeService, logger *zap.Logger) *RecipeHandlers {
	return &RecipeHandlers{
		recipes: recipes,
		logger:  logger.Named("recipe-handlers"),
	}
}

// GenerateRequest is the recipe generation request body. UsePantry and
// AvoidRepeats default to true when absent, which is why they are
// pointers here.
type GenerateRequest struct {
	UsePantry        *bool             `json:"use_pantry"`
	ExtraIngredients []string          `json:"extra_ingredients" validate:"max=50,dive,min=1,max=200"`
	Preferences      map[string]string `json:"preferences"`
	AvoidRepeats     *bool             `json:"avoid_repeats"`
}

// SaveRequest is the save-to-history request body
type SaveRequest struct {
	RecipeJSON map[string]interface{} `json:"recipe_json" validate:"required"`
	Calories   *float64               `json:"calories" validate:"omitempty,gte=0"`
}

// Generate handles POST /api/recipes/generate
func (h *RecipeHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	var req GenerateRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	result, err := h.recipes.Generate(r.Context(), userID, inbound.GenerateRecipeCommand{
		UsePantry:        defaultTrue(req.UsePantry),
		ExtraIngredients: req.ExtraIngredients,
		Preferences:      req.Preferences,
		AvoidRepeats:     defaultTrue(req.AvoidRepeats),
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Daily handles GET /api/recipes/daily
func (h *RecipeHandlers) Daily(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	result, err := h.recipes.Daily(r.Context(), userID)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Save handles POST /api/recipes/save
func (h *RecipeHandlers) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := authenticatedUser(w, r)
	if !ok {
		return
	}

	var req SaveRequest
	if appErr := decodeAndValidate(r, &req); appErr != nil {
		respondError(w, r, h.logger, appErr)
		return
	}

	result, err := h.recipes.Save(r.Context(), userID, inbound.SaveRecipeCommand{
		RecipeJSON: req.RecipeJSON,
		Calories:   req.Calories,
	})
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, result)
}

func defaultTrue(v *bool) bool {
	return v == nil || *v
}
