package store

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"kitchencost/models"
)

// LineSpec stages one recipe line: use QuantityUsed units of IngredientID.
type LineSpec struct {
	IngredientID uint
	QuantityUsed float64
}

// RecipeStore persists recipes and their lines.
type RecipeStore struct {
	db *gorm.DB
}

func NewRecipeStore(db *gorm.DB) *RecipeStore {
	return &RecipeStore{db: db}
}

func (s *RecipeStore) List(ctx context.Context) ([]models.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// ListWithLines returns every recipe with its lines and their current
// ingredients loaded.
func (s *RecipeStore) ListWithLines(ctx context.Context) ([]models.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var recipes []models.Recipe
	if err := withLines(s.db.WithContext(ctx)).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("list recipes with lines: %w", err)
	}
	return recipes, nil
}

func (s *RecipeStore) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// GetWithLines is Get with the recipe's lines and ingredients loaded.
func (s *RecipeStore) GetWithLines(ctx context.Context, id uint) (*models.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var recipe models.Recipe
	if err := withLines(s.db.WithContext(ctx)).First(&recipe, id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

// Create inserts a recipe without lines.
func (s *RecipeStore) Create(ctx context.Context, name string) (*models.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	return createRecipe(s.db.WithContext(ctx), name)
}

// CreateWithLines inserts a recipe and its lines in one transaction.
func (s *RecipeStore) CreateWithLines(ctx context.Context, name string, specs []LineSpec) (*models.Recipe, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var recipe *models.Recipe
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := createRecipe(tx, name)
		if err != nil {
			return err
		}
		if err := setLines(tx, created.ID, specs); err != nil {
			return err
		}
		recipe = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// Rename changes the recipe's name and nothing else.
func (s *RecipeStore) Rename(ctx context.Context, id uint, name string) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return renameRecipe(tx, id, name)
	})
}

// SetLines replaces the full set of lines for a recipe. The delete and the
// re-insert commit together; specs with a non-positive quantity are dropped.
func (s *RecipeStore) SetLines(ctx context.Context, id uint, specs []LineSpec) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireRecipe(tx, id); err != nil {
			return err
		}
		return setLines(tx, id, specs)
	})
}

// Replace renames the recipe and replaces its lines in one transaction.
func (s *RecipeStore) Replace(ctx context.Context, id uint, name string, specs []LineSpec) error {
	if s.db == nil {
		return gorm.ErrInvalidDB
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := renameRecipe(tx, id, name); err != nil {
			return err
		}
		return setLines(tx, id, specs)
	})
}

// LinesFor returns the recipe's lines, oldest first, each with its current
// ingredient resolved.
func (s *RecipeStore) LinesFor(ctx context.Context, id uint) ([]models.RecipeLine, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	tx := s.db.WithContext(ctx)
	if err := requireRecipe(tx, id); err != nil {
		return nil, err
	}
	var lines []models.RecipeLine
	if err := tx.Preload("Ingredient").Where("recipe_id = ?", id).Order("id asc").Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("load lines for recipe %d: %w", id, err)
	}
	return lines, nil
}

func withLines(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("Lines.Ingredient")
}

func requireRecipe(tx *gorm.DB, id uint) error {
	var recipe models.Recipe
	if err := tx.Select("id").First(&recipe, id).Error; err != nil {
		return translate(err)
	}
	return nil
}

func validateRecipeName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		verr := &ValidationError{}
		verr.Add("name", "is required")
		return "", verr
	}
	return trimmed, nil
}

func createRecipe(tx *gorm.DB, name string) (*models.Recipe, error) {
	trimmed, err := validateRecipeName(name)
	if err != nil {
		return nil, err
	}
	recipe := &models.Recipe{Name: trimmed}
	if err := tx.Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return recipe, nil
}

func renameRecipe(tx *gorm.DB, id uint, name string) error {
	trimmed, err := validateRecipeName(name)
	if err != nil {
		return err
	}
	var recipe models.Recipe
	if err := tx.First(&recipe, id).Error; err != nil {
		return translate(err)
	}
	if err := tx.Model(&recipe).Update("name", trimmed).Error; err != nil {
		return fmt.Errorf("rename recipe %d: %w", id, err)
	}
	return nil
}

func setLines(tx *gorm.DB, recipeID uint, specs []LineSpec) error {
	lines, err := buildLines(recipeID, specs)
	if err != nil {
		return err
	}
	if err := tx.Unscoped().Where("recipe_id = ?", recipeID).Delete(&models.RecipeLine{}).Error; err != nil {
		return fmt.Errorf("delete lines for recipe %d: %w", recipeID, err)
	}
	if len(lines) == 0 {
		return nil
	}
	if err := tx.Create(&lines).Error; err != nil {
		return fmt.Errorf("create lines for recipe %d: %w", recipeID, err)
	}
	return nil
}

func buildLines(recipeID uint, specs []LineSpec) ([]models.RecipeLine, error) {
	verr := &ValidationError{}
	lines := make([]models.RecipeLine, 0, len(specs))
	for _, spec := range specs {
		field := "quantity_" + strconv.FormatUint(uint64(spec.IngredientID), 10)
		switch {
		case spec.IngredientID == 0:
			verr.Add("ingredient", "ingredient id is required")
			continue
		case math.IsInf(spec.QuantityUsed, 0):
			verr.Add(field, "must be a finite number")
			continue
		case !(spec.QuantityUsed > 0):
			continue
		}
		lines = append(lines, models.RecipeLine{
			RecipeID:     recipeID,
			IngredientID: spec.IngredientID,
			QuantityUsed: spec.QuantityUsed,
		})
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
