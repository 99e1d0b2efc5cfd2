package gorm

import (
	"github.com/pantrywizard/v2/internal/domain/pantry"
	"github.com/pantrywizard/v2/internal/domain/recipe"
	"github.com/pantrywizard/v2/internal/domain/user"
)

// UserToModel converts a domain user to a GORM model
func UserToModel(u *user.User) *UserModel {
	profile := u.Profile()
	return &UserModel{
		ID:           u.ID(),
		Name:         u.Name(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		HeightCm:     profile.HeightCm,
		WeightKg:     profile.WeightKg,
		Age:          profile.Age,
		DietType:     profile.DietType,
		Allergies:    profile.Allergies,
		Goal:         profile.Goal,
		CreatedAt:    u.CreatedAt(),
		UpdatedAt:    u.UpdatedAt(),
	}
}

// ModelToUser converts a GORM model to a domain user
func ModelToUser(model *UserModel) *user.User {
	return user.Reconstruct(
		model.ID,
		model.Name,
		model.Email,
		model.PasswordHash,
		user.HealthProfile{
			HeightCm:  model.HeightCm,
			WeightKg:  model.WeightKg,
			Age:       model.Age,
			DietType:  model.DietType,
			Allergies: model.Allergies,
			Goal:      model.Goal,
		},
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// PantryItemToModel converts a domain pantry item to a GORM model
func PantryItemToModel(item *pantry.Item) *PantryItemModel {
	return &PantryItemModel{
		ID:        item.ID(),
		UserID:    item.UserID(),
		Name:      item.Name(),
		Quantity:  item.Quantity(),
		Unit:      item.Unit(),
		CreatedAt: item.CreatedAt(),
		UpdatedAt: item.UpdatedAt(),
	}
}

// ModelToPantryItem converts a GORM model to a domain pantry item
func ModelToPantryItem(model *PantryItemModel) *pantry.Item {
	return pantry.Reconstruct(
		model.ID,
		model.UserID,
		model.Name,
		model.Quantity,
		model.Unit,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// HistoryEntryToModel converts a domain history entry to a GORM model
func HistoryEntryToModel(entry *recipe.HistoryEntry) *RecipeHistoryModel {
	return &RecipeHistoryModel{
		ID:         entry.ID(),
		UserID:     entry.UserID(),
		RecipeName: entry.RecipeName(),
		RecipeJSON: entry.RecipeJSON(),
		Calories:   entry.Calories(),
		CreatedAt:  entry.CreatedAt(),
	}
}

// ModelToHistoryEntry converts a GORM model to a domain history entry
func ModelToHistoryEntry(model *RecipeHistoryModel) *recipe.HistoryEntry {
	return recipe.ReconstructHistoryEntry(
		model.ID,
		model.UserID,
		model.RecipeName,
		model.RecipeJSON,
		model.Calories,
		model.CreatedAt,
	)
}

// SuggestionToModel converts a domain daily suggestion to a GORM model
func SuggestionToModel(s *recipe.DailySuggestion) *DailySuggestionModel {
	return &DailySuggestionModel{
		ID:          s.ID(),
		UserID:      s.UserID(),
		RecipeJSON:  s.RecipeJSON(),
		SuggestedAt: s.SuggestedAt(),
	}
}

// ModelToSuggestion converts a GORM model to a domain daily suggestion
func ModelToSuggestion(model *DailySuggestionModel) *recipe.DailySuggestion {
	return recipe.ReconstructDailySuggestion(
		model.ID,
		model.UserID,
		model.RecipeJSON,
		model.SuggestedAt,
	)
}
