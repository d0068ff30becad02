package costing

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchencost/internal/db/dbtest"
	"kitchencost/internal/store"
	"kitchencost/models"
)

type stubSource struct {
	lines map[uint][]models.RecipeLine
	err   error
	calls int
}

func (s *stubSource) LinesFor(ctx context.Context, recipeID uint) ([]models.RecipeLine, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.lines[recipeID], nil
}

func line(ingredientID uint, quantity, price float64) models.RecipeLine {
	return models.RecipeLine{
		IngredientID: ingredientID,
		QuantityUsed: quantity,
		Ingredient:   &models.Ingredient{Name: "x", Unit: "g", UnitPrice: price},
	}
}

func TestCostOfRecipeWithoutLinesIsZero(t *testing.T) {
	t.Parallel()

	assert.Zero(t, CostOfRecipe(models.Recipe{Name: "Empty"}))
	assert.Zero(t, CostOfLines(nil))
}

func TestCostOfLinesSums(t *testing.T) {
	t.Parallel()

	lines := []models.RecipeLine{line(1, 500, 0.01), line(2, 2, 1.5), line(3, 0.25, 8)}
	assert.InDelta(t, 5+3+2, CostOfLines(lines), 1e-9)
}

func TestLineWithoutIngredientCostsNothing(t *testing.T) {
	t.Parallel()

	dangling := models.RecipeLine{IngredientID: 9, QuantityUsed: 100}
	assert.Zero(t, LineCost(dangling))
	assert.InDelta(t, 1.0, CostOfLines([]models.RecipeLine{dangling, line(1, 1, 1)}), 1e-12)
}

func TestCostIsLinearInQuantities(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 50; trial++ {
		lines := make([]models.RecipeLine, rng.Intn(8))
		for i := range lines {
			lines[i] = line(uint(i+1), rng.Float64()*1000, rng.Float64()*5)
		}
		base := CostOfLines(lines)

		for _, k := range []float64{0.5, 2, 3.25, 10} {
			scaled := make([]models.RecipeLine, len(lines))
			for i, l := range lines {
				scaled[i] = l
				scaled[i].QuantityUsed = l.QuantityUsed * k
			}
			got := CostOfLines(scaled)
			assert.InDelta(t, base*k, got, 1e-9*math.Max(1, math.Abs(base*k)), "trial %d k=%v", trial, k)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "5.00", Format(5))
	assert.Equal(t, "0.13", Format(0.125000001))
	assert.Equal(t, "10.00", Format(9.999))
}

func TestEngineReadsLinesEachCall(t *testing.T) {
	t.Parallel()

	src := &stubSource{lines: map[uint][]models.RecipeLine{7: {line(1, 500, 0.01)}}}
	engine := New(src)

	cost, err := engine.RecipeCost(context.Background(), 7)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, cost, 1e-9)

	src.lines[7][0].Ingredient.UnitPrice = 0.02
	cost, err = engine.RecipeCost(context.Background(), 7)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, cost, 1e-9)
	assert.Equal(t, 2, src.calls)
}

func TestEnginePropagatesSourceErrors(t *testing.T) {
	t.Parallel()

	engine := New(&stubSource{err: store.ErrNotFound})

	_, err := engine.RecipeCost(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = engine.Breakdown(context.Background(), 1)
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestItemise(t *testing.T) {
	t.Parallel()

	lines := []models.RecipeLine{
		{IngredientID: 1, QuantityUsed: 500, Ingredient: &models.Ingredient{Name: "Flour", Unit: "g", UnitPrice: 0.01}},
		{IngredientID: 2, QuantityUsed: 3},
	}
	got := Itemise(4, lines)
	require.Len(t, got.Lines, 2)
	assert.Equal(t, uint(4), got.RecipeID)
	assert.Equal(t, "Flour", got.Lines[0].IngredientName)
	assert.InDelta(t, 5.0, got.Lines[0].Cost, 1e-9)
	assert.Empty(t, got.Lines[1].IngredientName)
	assert.Zero(t, got.Lines[1].Cost)
	assert.InDelta(t, 5.0, got.Total, 1e-9)
}

func TestBreadScenario(t *testing.T) {
	ctx := context.Background()
	database := dbtest.Open(t)
	ingredients := store.NewIngredientStore(database)
	recipes := store.NewRecipeStore(database)
	engine := New(recipes)

	flour, err := ingredients.Create(ctx, store.IngredientInput{Name: "Flour", Quantity: 1000, Unit: "g", UnitPrice: 0.01})
	require.NoError(t, err)
	bread, err := recipes.Create(ctx, "Bread")
	require.NoError(t, err)
	require.NoError(t, recipes.SetLines(ctx, bread.ID, []store.LineSpec{{IngredientID: flour.ID, QuantityUsed: 500}}))

	cost, err := engine.RecipeCost(ctx, bread.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.00", Format(cost))
	assert.InDelta(t, 5.0, cost, 1e-9)

	_, err = ingredients.Update(ctx, flour.ID, store.IngredientInput{Name: "Flour", Quantity: 1000, Unit: "g", UnitPrice: 0.02})
	require.NoError(t, err)

	cost, err = engine.RecipeCost(ctx, bread.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, cost, 1e-9)

	require.NoError(t, recipes.Replace(ctx, bread.ID, "Bread", nil))

	cost, err = engine.RecipeCost(ctx, bread.ID)
	require.NoError(t, err)
	assert.Zero(t, cost)

	lines, err := recipes.LinesFor(ctx, bread.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}
