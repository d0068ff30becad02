package models

import "testing"

func TestQuantitiesByIngredient(t *testing.T) {
	t.Parallel()

	recipe := Recipe{
		Name: "Bread",
		Lines: []RecipeLine{
			{IngredientID: 1, QuantityUsed: 500},
			{IngredientID: 2, QuantityUsed: 10},
			{IngredientID: 1, QuantityUsed: 20},
		},
	}

	got := recipe.QuantitiesByIngredient()
	if len(got) != 2 {
		t.Fatalf("expected two ingredient keys, got %d", len(got))
	}
	if got[1] != 520 {
		t.Fatalf("expected quantities for ingredient 1 to be summed, got %v", got[1])
	}
	if got[2] != 10 {
		t.Fatalf("expected quantity 10 for ingredient 2, got %v", got[2])
	}
}

func TestQuantitiesByIngredientEmpty(t *testing.T) {
	t.Parallel()

	if got := (Recipe{}).QuantitiesByIngredient(); len(got) != 0 {
		t.Fatalf("expected empty map for recipe without lines, got %v", got)
	}
}
