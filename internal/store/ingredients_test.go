package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kitchencost/internal/db/dbtest"
)

func TestParseIngredientInput(t *testing.T) {
	t.Parallel()

	in, err := ParseIngredientInput("  Flour ", "1000", " g ", "0.01")
	require.NoError(t, err)
	assert.Equal(t, IngredientInput{Name: "Flour", Quantity: 1000, Unit: "g", UnitPrice: 0.01}, in)
}

func TestParseIngredientInputReportsEveryField(t *testing.T) {
	t.Parallel()

	_, err := ParseIngredientInput("", "lots", "", "-1")
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"name":       "is required",
		"quantity":   "must be a number",
		"unit":       "is required",
		"unit_price": "must not be negative",
	}, verr.Fields)
}

func TestParseIngredientInputRejectsNonFinite(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"NaN", "Inf", "-Inf"} {
		_, err := ParseIngredientInput("Salt", raw, "g", "1")
		require.Error(t, err, raw)
		assert.Contains(t, FieldErrors(err), "quantity", raw)
	}
}

func TestParseIngredientInputRequiresNumbers(t *testing.T) {
	t.Parallel()

	_, err := ParseIngredientInput("Salt", "", "g", " ")
	require.Error(t, err)
	assert.Equal(t, "is required", FieldErrors(err)["quantity"])
	assert.Equal(t, "is required", FieldErrors(err)["unit_price"])
}

func TestIngredientStoreCreateGetList(t *testing.T) {
	ctx := context.Background()
	s := NewIngredientStore(dbtest.Open(t))

	flour, err := s.Create(ctx, IngredientInput{Name: "Flour", Quantity: 1000, Unit: "g", UnitPrice: 0.01})
	require.NoError(t, err)
	require.NotZero(t, flour.ID)

	milk, err := s.Create(ctx, IngredientInput{Name: "Milk", Quantity: 2000, Unit: "ml", UnitPrice: 0.005})
	require.NoError(t, err)
	assert.NotEqual(t, flour.ID, milk.ID)

	got, err := s.Get(ctx, flour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.Name)
	assert.Equal(t, 1000.0, got.Quantity)
	assert.Equal(t, "g", got.Unit)
	assert.Equal(t, 0.01, got.UnitPrice)

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, flour.ID, all[0].ID)
	assert.Equal(t, milk.ID, all[1].ID)
}

func TestIngredientStoreCreateValidates(t *testing.T) {
	s := NewIngredientStore(dbtest.Open(t))

	_, err := s.Create(context.Background(), IngredientInput{Name: " ", Unit: "g", UnitPrice: -2})
	require.Error(t, err)
	fields := FieldErrors(err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "unit_price")
}

func TestIngredientStoreGetMissing(t *testing.T) {
	s := NewIngredientStore(dbtest.Open(t))

	_, err := s.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIngredientStoreUpdateOverwritesEveryField(t *testing.T) {
	ctx := context.Background()
	s := NewIngredientStore(dbtest.Open(t))

	created, err := s.Create(ctx, IngredientInput{Name: "Flour", Quantity: 1000, Unit: "g", UnitPrice: 0.01})
	require.NoError(t, err)

	updates := []IngredientInput{
		{Name: "Bread Flour", Quantity: 250.5, Unit: "kg", UnitPrice: 0.02},
		{Name: "Bread Flour", Quantity: 0, Unit: "kg", UnitPrice: 0},
		{Name: "Farinha", Quantity: 12, Unit: "un", UnitPrice: 3.75},
	}
	for _, in := range updates {
		updated, err := s.Update(ctx, created.ID, in)
		require.NoError(t, err)
		assert.Equal(t, in.Name, updated.Name)

		got, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, in, IngredientInput{Name: got.Name, Quantity: got.Quantity, Unit: got.Unit, UnitPrice: got.UnitPrice})
	}
}

func TestIngredientStoreUpdateMissing(t *testing.T) {
	s := NewIngredientStore(dbtest.Open(t))

	_, err := s.Update(context.Background(), 99, IngredientInput{Name: "Ghost", Unit: "g"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestIngredientStoreFindByName(t *testing.T) {
	ctx := context.Background()
	s := NewIngredientStore(dbtest.Open(t))

	created, err := s.Create(ctx, IngredientInput{Name: "Butter", Quantity: 500, Unit: "g", UnitPrice: 0.04})
	require.NoError(t, err)

	found, err := s.FindByName(ctx, "  butter ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = s.FindByName(ctx, "margarine")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoresWithoutDatabase(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, err := NewIngredientStore(nil).List(ctx)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)

	_, err = NewRecipeStore(nil).ListWithLines(ctx)
	assert.ErrorIs(t, err, gorm.ErrInvalidDB)
}

func TestValidationErrorMessage(t *testing.T) {
	t.Parallel()

	verr := &ValidationError{}
	assert.NoError(t, verr.Err())

	verr.Add("unit", "is required")
	verr.Add("name", "is required")
	verr.Add("name", "ignored")
	assert.EqualError(t, verr.Err(), "store: invalid input (name: is required; unit: is required)")
	assert.Nil(t, FieldErrors(errors.New("boom")))
}

func TestIngredientStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewIngredientStore(dbtest.Open(t))

	first, created, err := s.Upsert(ctx, IngredientInput{Name: "Sugar", Quantity: 1000, Unit: "g", UnitPrice: 0.004})
	require.NoError(t, err)
	assert.True(t, created)

	second, created, err := s.Upsert(ctx, IngredientInput{Name: "SUGAR", Quantity: 2000, Unit: "g", UnitPrice: 0.005})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "SUGAR", got.Name)
	assert.Equal(t, 0.005, got.UnitPrice)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, _, err = s.Upsert(ctx, IngredientInput{Name: "", Unit: "g"})
	assert.Contains(t, FieldErrors(err), "name")
}
