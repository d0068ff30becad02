package models

import (
	"gorm.io/gorm"
)

type Recipe struct {
	gorm.Model
	Name  string       `gorm:"type:varchar(100);not null" json:"name"`
	Lines []RecipeLine `gorm:"foreignKey:RecipeID" json:"lines"`
}

// QuantitiesByIngredient indexes the recipe's loaded lines by ingredient id.
// When an ingredient appears more than once the quantities are summed.
func (r Recipe) QuantitiesByIngredient() map[uint]float64 {
	quantities := make(map[uint]float64, len(r.Lines))
	for _, line := range r.Lines {
		quantities[line.IngredientID] += line.QuantityUsed
	}
	return quantities
}
