package models

import "gorm.io/gorm"

// Ingredient is a purchasable item with an on-hand quantity, a unit of measure
// and the price paid per unit.
type Ingredient struct {
	gorm.Model
	Name      string  `gorm:"type:varchar(100);not null" json:"name"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Unit      string  `gorm:"type:varchar(16);not null" json:"unit"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
