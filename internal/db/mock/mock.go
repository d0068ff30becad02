// Package mock provides an in-memory database seeded with a small pantry and
// a few recipes, used for demos and local development.
package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kitchencost/internal/db"
	applog "kitchencost/internal/log"
	"kitchencost/internal/store"
)

var instances atomic.Int64

// New returns an in-memory sqlite database seeded with representative data.
// Each call yields an independent database.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	cfg := db.GormConfig()
	cfg.Logger = logger.Default.LogMode(logger.Silent)

	dsn := fmt.Sprintf("file:kitchencost-mock-%d?mode=memory&cache=shared", instances.Add(1))
	database, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		_ = db.Close(database)
		return nil, err
	}

	if err := seed(ctx, database); err != nil {
		_ = db.Close(database)
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return database, nil
}

type seedLine struct {
	ingredient string
	quantity   float64
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	ingredients := store.NewIngredientStore(database)
	recipes := store.NewRecipeStore(database)

	pantry := []store.IngredientInput{
		{Name: "Farinha de trigo", Quantity: 5000, Unit: "g", UnitPrice: 0.01},
		{Name: "Água", Quantity: 10000, Unit: "ml", UnitPrice: 0.001},
		{Name: "Sal", Quantity: 1000, Unit: "g", UnitPrice: 0.002},
		{Name: "Fermento biológico", Quantity: 500, Unit: "g", UnitPrice: 0.08},
		{Name: "Manteiga", Quantity: 1000, Unit: "g", UnitPrice: 0.045},
		{Name: "Açúcar", Quantity: 2000, Unit: "g", UnitPrice: 0.005},
		{Name: "Ovos", Quantity: 30, Unit: "un", UnitPrice: 0.75},
		{Name: "Leite", Quantity: 4000, Unit: "ml", UnitPrice: 0.005},
	}
	ids := make(map[string]uint, len(pantry))
	for _, in := range pantry {
		ingredient, err := ingredients.Create(ctx, in)
		if err != nil {
			return fmt.Errorf("seed ingredient %q: %w", in.Name, err)
		}
		ids[in.Name] = ingredient.ID
	}

	book := []struct {
		name  string
		lines []seedLine
	}{
		{name: "Pão francês", lines: []seedLine{
			{"Farinha de trigo", 500},
			{"Água", 320},
			{"Sal", 10},
			{"Fermento biológico", 10},
		}},
		{name: "Bolo simples", lines: []seedLine{
			{"Farinha de trigo", 300},
			{"Açúcar", 250},
			{"Ovos", 4},
			{"Manteiga", 100},
			{"Leite", 240},
		}},
		{name: "Manteiga de ervas"},
	}
	for _, entry := range book {
		specs := make([]store.LineSpec, 0, len(entry.lines))
		for _, line := range entry.lines {
			specs = append(specs, store.LineSpec{IngredientID: ids[line.ingredient], QuantityUsed: line.quantity})
		}
		if _, err := recipes.CreateWithLines(ctx, entry.name, specs); err != nil {
			return fmt.Errorf("seed recipe %q: %w", entry.name, err)
		}
	}

	applog.Debug(ctx, "mock database seeded", "ingredients", len(pantry), "recipes", len(book))
	return nil
}
