// Package costing turns recipe lines into monetary cost. Prices are read from
// the ingredient attached to each line, so callers must load lines at the
// moment they want the cost computed.
package costing

import (
	"context"
	"fmt"

	"kitchencost/models"
)

// LineSource loads the lines of a recipe with their ingredients resolved.
type LineSource interface {
	LinesFor(ctx context.Context, recipeID uint) ([]models.RecipeLine, error)
}

// LineCost is quantity used times the ingredient's unit price. A line whose
// ingredient could not be resolved costs nothing.
func LineCost(line models.RecipeLine) float64 {
	if line.Ingredient == nil {
		return 0
	}
	return line.QuantityUsed * line.Ingredient.UnitPrice
}

// CostOfLines sums LineCost over lines. No rounding is applied.
func CostOfLines(lines []models.RecipeLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += LineCost(line)
	}
	return total
}

// CostOfRecipe is CostOfLines over the recipe's loaded lines.
func CostOfRecipe(recipe models.Recipe) float64 {
	return CostOfLines(recipe.Lines)
}

// Format renders a cost with two decimals for display.
func Format(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// LineBreakdown is the cost contribution of one recipe line.
type LineBreakdown struct {
	IngredientID   uint    `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Unit           string  `json:"unit"`
	QuantityUsed   float64 `json:"quantity_used"`
	UnitPrice      float64 `json:"unit_price"`
	Cost           float64 `json:"cost"`
}

// Breakdown itemises a recipe's cost line by line.
type Breakdown struct {
	RecipeID uint            `json:"recipe_id"`
	Lines    []LineBreakdown `json:"lines"`
	Total    float64         `json:"total"`
}

// Itemise builds a Breakdown from already loaded lines.
func Itemise(recipeID uint, lines []models.RecipeLine) Breakdown {
	breakdown := Breakdown{RecipeID: recipeID, Lines: make([]LineBreakdown, 0, len(lines))}
	for _, line := range lines {
		entry := LineBreakdown{
			IngredientID: line.IngredientID,
			QuantityUsed: line.QuantityUsed,
			Cost:         LineCost(line),
		}
		if line.Ingredient != nil {
			entry.IngredientName = line.Ingredient.Name
			entry.Unit = line.Ingredient.Unit
			entry.UnitPrice = line.Ingredient.UnitPrice
		}
		breakdown.Lines = append(breakdown.Lines, entry)
		breakdown.Total += entry.Cost
	}
	return breakdown
}

// Engine computes costs from lines fetched at call time.
type Engine struct {
	source LineSource
}

func New(source LineSource) *Engine {
	return &Engine{source: source}
}

// RecipeCost loads the recipe's lines and sums their cost.
func (e *Engine) RecipeCost(ctx context.Context, recipeID uint) (float64, error) {
	lines, err := e.source.LinesFor(ctx, recipeID)
	if err != nil {
		return 0, fmt.Errorf("cost recipe %d: %w", recipeID, err)
	}
	return CostOfLines(lines), nil
}

// Breakdown loads the recipe's lines and itemises their cost.
func (e *Engine) Breakdown(ctx context.Context, recipeID uint) (Breakdown, error) {
	lines, err := e.source.LinesFor(ctx, recipeID)
	if err != nil {
		return Breakdown{}, fmt.Errorf("itemise recipe %d: %w", recipeID, err)
	}
	return Itemise(recipeID, lines), nil
}
