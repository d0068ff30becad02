package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"kitchencost/internal/costing"
	applog "kitchencost/internal/log"
	"kitchencost/internal/store"
	"kitchencost/internal/views/components"
	"kitchencost/internal/views/pages"
	"kitchencost/models"
)

// recipeSubmission is a parsed recipe form. Selected and Quantities echo the
// raw input back when the form has to be shown again.
type recipeSubmission struct {
	Name       string
	Specs      []store.LineSpec
	Selected   map[uint]bool
	Quantities map[uint]string
}

// ListRecipes renders every recipe with its cost at current prices.
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.ListWithLines(r.Context())
	if err != nil {
		h.fail(w, r, err, "list recipes")
		return
	}
	rows := make([]pages.RecipeRow, 0, len(recipes))
	for _, recipe := range recipes {
		rows = append(rows, pages.RecipeRow{ID: recipe.ID, Name: recipe.Name, Cost: costing.CostOfRecipe(recipe)})
	}
	h.renderPage(w, r, http.StatusOK, pages.RecipesPage(pages.RecipesView{Flash: h.popFlash(r), Recipes: rows}))
}

// NewRecipeForm renders the creation form listing every ingredient.
func (h *Handler) NewRecipeForm(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredients.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "list ingredients")
		return
	}
	h.renderPage(w, r, http.StatusOK, pages.RecipeFormPage(newRecipeView(ingredients)))
}

// CreateRecipe stores a recipe and its lines from the submitted form.
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ingredients, err := h.ingredients.List(ctx)
	if err != nil {
		h.fail(w, r, err, "list ingredients")
		return
	}

	view := newRecipeView(ingredients)
	submission, err := readRecipeForm(r, ingredients)
	if err != nil {
		h.recipeFormError(w, r, view, submission, err)
		return
	}

	recipe, err := h.recipes.CreateWithLines(ctx, submission.Name, submission.Specs)
	if err != nil {
		h.recipeFormError(w, r, view, submission, err)
		return
	}

	cost, err := h.costs.RecipeCost(ctx, recipe.ID)
	if err != nil {
		applog.Warn(ctx, "recipe created but cost unavailable", "id", recipe.ID, "error", err)
		h.putFlash(r, fmt.Sprintf("Receita %q cadastrada.", recipe.Name))
	} else {
		applog.Info(ctx, "recipe created", "id", recipe.ID, "name", recipe.Name, "lines", len(submission.Specs), "cost", costing.Format(cost))
		h.putFlash(r, fmt.Sprintf("Receita %q cadastrada. Custo total: %s", recipe.Name, pages.Money(cost)))
	}
	redirect(w, r, "/receitas")
}

// EditRecipeForm renders the recipe with its current quantities and a cost
// breakdown at current prices.
func (h *Handler) EditRecipeForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "Receita não encontrada.")
		return
	}
	ctx := r.Context()
	recipe, err := h.recipes.GetWithLines(ctx, id)
	if err != nil {
		h.fail(w, r, err, "load recipe", "id", id)
		return
	}
	ingredients, err := h.ingredients.List(ctx)
	if err != nil {
		h.fail(w, r, err, "list ingredients")
		return
	}

	view := editRecipeView(id, ingredients)
	view.Name = recipe.Name
	view.Selected, view.Quantities = pages.RecipeSelection(*recipe)
	breakdown := costing.Itemise(recipe.ID, recipe.Lines)
	view.Breakdown = &breakdown
	h.renderPage(w, r, http.StatusOK, pages.RecipeFormPage(view))
}

// UpdateRecipe renames the recipe and replaces all of its lines.
func (h *Handler) UpdateRecipe(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "Receita não encontrada.")
		return
	}
	ctx := r.Context()
	if _, err := h.recipes.Get(ctx, id); err != nil {
		h.fail(w, r, err, "load recipe", "id", id)
		return
	}
	ingredients, err := h.ingredients.List(ctx)
	if err != nil {
		h.fail(w, r, err, "list ingredients")
		return
	}

	view := editRecipeView(id, ingredients)
	submission, err := readRecipeForm(r, ingredients)
	if err != nil {
		h.recipeFormError(w, r, view, submission, err)
		return
	}

	if err := h.recipes.Replace(ctx, id, submission.Name, submission.Specs); err != nil {
		h.recipeFormError(w, r, view, submission, err)
		return
	}

	applog.Info(ctx, "recipe updated", "id", id, "name", submission.Name, "lines", len(submission.Specs))
	h.putFlash(r, fmt.Sprintf("Receita %q atualizada.", strings.TrimSpace(submission.Name)))
	redirect(w, r, "/receitas")
}

func (h *Handler) recipeFormError(w http.ResponseWriter, r *http.Request, view pages.RecipeFormView, submission recipeSubmission, err error) {
	fields := store.FieldErrors(err)
	if fields == nil {
		h.fail(w, r, err, "save recipe")
		return
	}
	applog.Debug(r.Context(), "recipe form rejected", "fields", fields)
	view.Name = submission.Name
	view.Selected = submission.Selected
	view.Quantities = submission.Quantities
	view.Errors = fields
	h.renderPage(w, r, http.StatusUnprocessableEntity, pages.RecipeFormPage(view))
}

// readRecipeForm stages one line per known ingredient whose ingredient_{id}
// checkbox is present. A blank quantity stages nothing; a quantity that is
// not a number is rejected.
func readRecipeForm(r *http.Request, ingredients []models.Ingredient) (recipeSubmission, error) {
	submission := recipeSubmission{
		Selected:   make(map[uint]bool),
		Quantities: make(map[uint]string),
	}
	if err := r.ParseForm(); err != nil {
		return submission, malformedForm()
	}

	verr := &store.ValidationError{}
	submission.Name = r.PostForm.Get("name")
	if strings.TrimSpace(submission.Name) == "" {
		verr.Add("name", "is required")
	}

	for _, ingredient := range ingredients {
		key := components.IDString(ingredient.ID)
		raw := r.PostForm.Get("quantity_" + key)
		submission.Quantities[ingredient.ID] = raw
		if _, checked := r.PostForm["ingredient_"+key]; !checked {
			continue
		}
		submission.Selected[ingredient.ID] = true

		quantity, ok, err := store.ParseQuantity(raw)
		switch {
		case err != nil:
			verr.Add("quantity_"+key, "must be a number")
			continue
		case !ok:
			continue
		}
		submission.Specs = append(submission.Specs, store.LineSpec{IngredientID: ingredient.ID, QuantityUsed: quantity})
	}
	return submission, verr.Err()
}

func newRecipeView(ingredients []models.Ingredient) pages.RecipeFormView {
	return pages.RecipeFormView{Title: "Cadastrar receita", Action: "/cadastrar_receita", Ingredients: ingredients}
}

func editRecipeView(id uint, ingredients []models.Ingredient) pages.RecipeFormView {
	return pages.RecipeFormView{
		Title:       "Editar receita",
		Action:      "/editar_receita/" + components.IDString(id),
		Ingredients: ingredients,
	}
}
