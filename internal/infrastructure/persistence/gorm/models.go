// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel represents the GORM model for users. Health profile columns
// use zero values for "not provided".
type UserModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	HeightCm     float64   `gorm:"default:0"`
	WeightKg     float64   `gorm:"default:0"`
	Age          int       `gorm:"default:0"`
	DietType     string    `gorm:"type:varchar(50)"`
	Allergies    string    `gorm:"type:text"`
	Goal         string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Relationships
	PantryItems []PantryItemModel    `gorm:"foreignKey:UserID"`
	History     []RecipeHistoryModel `gorm:"foreignKey:UserID"`
}

// PantryItemModel represents the GORM model for pantry items
type PantryItemModel struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;index"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Quantity  float64   `gorm:"not null"`
	Unit      string    `gorm:"type:varchar(30);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RecipeHistoryModel represents the GORM model for saved recipe snapshots.
// RecipeJSON holds the recipe document exactly as it was saved; it is
// never re-encoded on the way out.
type RecipeHistoryModel struct {
	ID         uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID     uuid.UUID `gorm:"type:char(36);not null;index:idx_history_user_created"`
	RecipeName string    `gorm:"type:varchar(255);not null"`
	RecipeJSON string    `gorm:"type:text;not null"`
	Calories   *float64
	CreatedAt  time.Time `gorm:"index:idx_history_user_created"`
}

// DailySuggestionModel represents the GORM model for daily recipe
// suggestions, looked up by user and UTC day window
type DailySuggestionModel struct {
	ID          uuid.UUID `gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID `gorm:"type:char(36);not null;index:idx_suggestion_user_at"`
	RecipeJSON  string    `gorm:"type:text;not null"`
	SuggestedAt time.Time `gorm:"index:idx_suggestion_user_at"`
}

// BeforeCreate hook for UserModel
func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for PantryItemModel
func (p *PantryItemModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for RecipeHistoryModel
func (r *RecipeHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeCreate hook for DailySuggestionModel
func (d *DailySuggestionModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName methods for custom table names
func (UserModel) TableName() string {
	return "users"
}

func (PantryItemModel) TableName() string {
	return "pantry_items"
}

func (RecipeHistoryModel) TableName() string {
	return "recipe_history"
}

func (DailySuggestionModel) TableName() string {
	return "daily_suggestions"
}

// Migrate runs auto-migration for all models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&PantryItemModel{},
		&RecipeHistoryModel{},
		&DailySuggestionModel{},
	)
}
