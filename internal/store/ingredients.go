package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"kitchencost/models"
)

// IngredientInput carries the four user-editable ingredient fields.
type IngredientInput struct {
	Name      string
	Quantity  float64
	Unit      string
	UnitPrice float64
}

// ParseIngredientInput coerces raw form values into an IngredientInput. Every
// field is required and numbers must parse as finite, non-negative reals.
func ParseIngredientInput(name, quantity, unit, unitPrice string) (IngredientInput, error) {
	verr := &ValidationError{}
	input := IngredientInput{
		Name: strings.TrimSpace(name),
		Unit: strings.TrimSpace(unit),
	}

	input.Quantity = parseAmount(verr, "quantity", quantity)
	input.UnitPrice = parseAmount(verr, "unit_price", unitPrice)

	if err := input.validate(verr); err != nil {
		return IngredientInput{}, err
	}
	return input, nil
}

// ParseQuantity coerces a single numeric form value. Blank input reports
// ok=false without error so callers can treat it as absent.
func ParseQuantity(raw string) (value float64, ok bool, err error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false, nil
	}
	parsed, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false, fmt.Errorf("%q is not a number", trimmed)
	}
	return parsed, true, nil
}

func parseAmount(verr *ValidationError, field, raw string) float64 {
	value, ok, err := ParseQuantity(raw)
	switch {
	case err != nil:
		verr.Add(field, "must be a number")
	case !ok:
		verr.Add(field, "is required")
	case value < 0:
		verr.Add(field, "must not be negative")
	}
	return value
}

func (in IngredientInput) validate(verr *ValidationError) error {
	if strings.TrimSpace(in.Name) == "" {
		verr.Add("name", "is required")
	}
	if strings.TrimSpace(in.Unit) == "" {
		verr.Add("unit", "is required")
	}
	if in.Quantity < 0 || math.IsNaN(in.Quantity) || math.IsInf(in.Quantity, 0) {
		verr.Add("quantity", "must be a non-negative number")
	}
	if in.UnitPrice < 0 || math.IsNaN(in.UnitPrice) || math.IsInf(in.UnitPrice, 0) {
		verr.Add("unit_price", "must be a non-negative number")
	}
	return verr.Err()
}

// IngredientStore persists ingredients. It never deletes.
type IngredientStore struct {
	db *gorm.DB
}

func NewIngredientStore(db *gorm.DB) *IngredientStore {
	return &IngredientStore{db: db}
}

// List returns every ingredient in storage order.
func (s *IngredientStore) List(ctx context.Context) ([]models.Ingredient, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientStore) Get(ctx context.Context, id uint) (*models.Ingredient, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

// FindByName looks an ingredient up by name, ignoring case and surrounding
// whitespace.
func (s *IngredientStore) FindByName(ctx context.Context, name string) (*models.Ingredient, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Order("id asc").
		First(&ingredient).Error
	if err != nil {
		return nil, translate(err)
	}
	return &ingredient, nil
}

func (s *IngredientStore) Create(ctx context.Context, in IngredientInput) (*models.Ingredient, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if err := in.validate(&ValidationError{}); err != nil {
		return nil, err
	}

	ingredient := &models.Ingredient{
		Name:      in.Name,
		Quantity:  in.Quantity,
		Unit:      in.Unit,
		UnitPrice: in.UnitPrice,
	}
	if err := s.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

// Update overwrites all four fields of an existing ingredient.
func (s *IngredientStore) Update(ctx context.Context, id uint, in IngredientInput) (*models.Ingredient, error) {
	if s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	if err := in.validate(&ValidationError{}); err != nil {
		return nil, err
	}

	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ingredient, id).Error; err != nil {
			return translate(err)
		}
		updates := map[string]any{
			"name":       in.Name,
			"quantity":   in.Quantity,
			"unit":       in.Unit,
			"unit_price": in.UnitPrice,
		}
		if err := tx.Model(&ingredient).Updates(updates).Error; err != nil {
			return fmt.Errorf("update ingredient %d: %w", id, err)
		}
		ingredient.Name = in.Name
		ingredient.Quantity = in.Quantity
		ingredient.Unit = in.Unit
		ingredient.UnitPrice = in.UnitPrice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Upsert updates the ingredient whose name matches in.Name, ignoring case, or
// creates it when none does. Lookup and write share one transaction.
func (s *IngredientStore) Upsert(ctx context.Context, in IngredientInput) (*models.Ingredient, bool, error) {
	if s.db == nil {
		return nil, false, gorm.ErrInvalidDB
	}
	if err := in.validate(&ValidationError{}); err != nil {
		return nil, false, err
	}

	var (
		ingredient models.Ingredient
		created    bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("lower(name) = ?", strings.ToLower(strings.TrimSpace(in.Name))).Order("id asc").First(&ingredient).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			ingredient = models.Ingredient{Name: in.Name, Quantity: in.Quantity, Unit: in.Unit, UnitPrice: in.UnitPrice}
			if err := tx.Create(&ingredient).Error; err != nil {
				return fmt.Errorf("create ingredient %q: %w", in.Name, err)
			}
			created = true
			return nil
		case err != nil:
			return fmt.Errorf("find ingredient %q: %w", in.Name, err)
		}
		updates := map[string]any{
			"name":       in.Name,
			"quantity":   in.Quantity,
			"unit":       in.Unit,
			"unit_price": in.UnitPrice,
		}
		if err := tx.Model(&ingredient).Updates(updates).Error; err != nil {
			return fmt.Errorf("update ingredient %q: %w", in.Name, err)
		}
		ingredient.Name = in.Name
		ingredient.Quantity = in.Quantity
		ingredient.Unit = in.Unit
		ingredient.UnitPrice = in.UnitPrice
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &ingredient, created, nil
}
