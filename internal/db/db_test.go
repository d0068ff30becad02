package db

import (
	"path/filepath"
	"testing"

	"kitchencost/internal/config"
	"kitchencost/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestInitializeRequiresURLForPostgres(t *testing.T) {
	t.Parallel()

	db, err := Initialize(config.DatabaseConfig{Driver: config.DriverPostgres, URL: ""})
	if err == nil {
		t.Fatal("expected error when postgres URL is empty")
	}
	if db != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestInitializeRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	if _, err := Initialize(config.DatabaseConfig{Driver: "mysql", URL: "x"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestAutoMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := AutoMigrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestAutoMigrateWithSQLite(t *testing.T) {
	t.Parallel()

	sqliteDB, err := gorm.Open(sqlite.Open("file:automigrate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() { Close(sqliteDB) })

	if err := AutoMigrate(sqliteDB); err != nil {
		t.Fatalf("automigrate sqlite database: %v", err)
	}

	for _, model := range []any{&models.Ingredient{}, &models.Recipe{}, &models.RecipeLine{}} {
		if !sqliteDB.Migrator().HasTable(model) {
			t.Fatalf("expected table for %T to exist", model)
		}
	}
}

func TestConfigureOpensSQLiteFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "kitchen.db")
	database, err := Configure(config.DatabaseConfig{URL: "sqlite://" + path})
	if err != nil {
		t.Fatalf("Configure returned error: %v", err)
	}
	t.Cleanup(func() { Close(database) })

	if err := database.Create(&models.Ingredient{Name: "Flour", Quantity: 1000, Unit: "g", UnitPrice: 0.01}).Error; err != nil {
		t.Fatalf("insert ingredient: %v", err)
	}
	var count int64
	if err := database.Model(&models.Ingredient{}).Count(&count).Error; err != nil {
		t.Fatalf("count ingredients: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one ingredient, got %d", count)
	}
}

func TestConfigurePropagatesInitializationError(t *testing.T) {
	t.Parallel()

	if _, err := Configure(config.DatabaseConfig{Driver: config.DriverPostgres}); err == nil {
		t.Fatal("expected configuration error when initialize fails")
	}
}

func TestMustConfigurePanicsOnError(t *testing.T) {
	t.Parallel()

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic when configuration fails")
		}
	}()

	MustConfigure(config.DatabaseConfig{Driver: config.DriverPostgres})
}

func TestCloseIgnoresUnopenedHandles(t *testing.T) {
	t.Parallel()

	if err := Close(nil); err != nil {
		t.Fatalf("Close(nil) returned error: %v", err)
	}
	if err := Close(&gorm.DB{}); err != nil {
		t.Fatalf("Close(zero value) returned error: %v", err)
	}
}
