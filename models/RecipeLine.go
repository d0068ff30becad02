package models

import (
	"gorm.io/gorm"
)

type RecipeLine struct {
	gorm.Model
	RecipeID     uint    `gorm:"not null;index" json:"recipe_id"`
	IngredientID uint    `gorm:"not null;index" json:"ingredient_id"`
	QuantityUsed float64 `gorm:"not null" json:"quantity_used"`

	// Resolved at read time so costs follow the current ingredient price.
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient,omitempty"`
}
