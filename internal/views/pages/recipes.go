package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"kitchencost/internal/costing"
	"kitchencost/internal/views/components"
	"kitchencost/internal/views/layout"
	"kitchencost/models"
)

// RecipeRow is one entry of the recipe list.
type RecipeRow struct {
	ID   uint
	Name string
	Cost float64
}

// RecipesView lists every recipe with its computed cost.
type RecipesView struct {
	Flash   string
	Recipes []RecipeRow
}

func RecipesPage(view RecipesView) Page {
	return Page{Title: "Receitas", Section: layout.SectionRecipes, Content: recipesContent(view)}
}

func recipesContent(view RecipesView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Render(ctx, components.Flash(view.Flash))
		hw.Raw(`<h1>Receitas</h1>`)
		if len(view.Recipes) == 0 {
			hw.Raw(`<p class="empty">Nenhuma receita cadastrada. <a href="/cadastrar_receita">Cadastrar a primeira</a>.</p>`)
			return hw.Err()
		}
		hw.Raw(`<table><thead><tr><th>Receita</th><th class="num">Custo total</th><th></th></tr></thead><tbody>`)
		for _, recipe := range view.Recipes {
			hw.Raw(`<tr><td>`)
			hw.Text(DefaultDash(recipe.Name))
			hw.Raw(`</td><td class="num">`)
			hw.Text(Money(recipe.Cost))
			hw.Raw(`</td><td><a`)
			hw.Attr("href", "/editar_receita/"+components.IDString(recipe.ID))
			hw.Raw(`>Editar</a></td></tr>`)
		}
		hw.Raw(`</tbody></table>`)
		return hw.Err()
	})
}

// RecipeFormView drives both the creation and the edit form. Selected and
// Quantities are keyed by ingredient id.
type RecipeFormView struct {
	Title       string
	Action      string
	Name        string
	Ingredients []models.Ingredient
	Selected    map[uint]bool
	Quantities  map[uint]string
	Errors      map[string]string
	Breakdown   *costing.Breakdown
}

// RecipeSelection pre-populates checkbox and quantity values from a recipe's
// loaded lines.
func RecipeSelection(recipe models.Recipe) (map[uint]bool, map[uint]string) {
	selected := make(map[uint]bool, len(recipe.Lines))
	quantities := make(map[uint]string, len(recipe.Lines))
	for id, quantity := range recipe.QuantitiesByIngredient() {
		selected[id] = true
		quantities[id] = FormatQuantity(quantity)
	}
	return selected, quantities
}

func RecipeFormPage(view RecipeFormView) Page {
	return Page{Title: view.Title, Section: layout.SectionRecipes, Content: recipeFormContent(view)}
}

func recipeFormContent(view RecipeFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<h1>`)
		hw.Text(view.Title)
		hw.Raw(`</h1>`)
		hw.Render(ctx, components.ErrorSummary(view.Errors, recipeErrorOrder(view)))
		hw.Raw(`<form method="post"`)
		hw.Attr("action", view.Action)
		hw.Raw(`>`)
		hw.Render(ctx, components.Input(components.InputField{Label: "Nome da receita", Name: "name", Value: view.Name, Error: view.Errors["name"]}))
		if len(view.Ingredients) == 0 {
			hw.Raw(`<p class="empty">Cadastre ingredientes antes de montar receitas.</p>`)
		} else {
			hw.Raw(`<table><thead><tr><th>Usar</th><th>Ingrediente</th><th>Quantidade usada</th><th class="num">Preço unitário</th></tr></thead><tbody>`)
			for _, ingredient := range view.Ingredients {
				hw.Render(ctx, recipeIngredientRow(view, ingredient))
			}
			hw.Raw(`</tbody></table>`)
		}
		hw.Raw(`<button type="submit">Salvar</button></form>`)
		if view.Breakdown != nil {
			hw.Render(ctx, breakdownTable(*view.Breakdown))
		}
		return hw.Err()
	})
}

func recipeErrorOrder(view RecipeFormView) []string {
	order := []string{"form", "name", "ingredient"}
	for _, ingredient := range view.Ingredients {
		order = append(order, "quantity_"+components.IDString(ingredient.ID))
	}
	return order
}

func recipeIngredientRow(view RecipeFormView, ingredient models.Ingredient) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := components.IDString(ingredient.ID)
		hw := components.NewWriter(w)
		hw.Raw(`<tr><td><input type="checkbox" value="on"`)
		hw.Attr("name", "ingredient_"+id)
		if view.Selected[ingredient.ID] {
			hw.Raw(` checked`)
		}
		hw.Raw(`></td><td>`)
		hw.Text(ingredient.Name)
		hw.Raw(` (`)
		hw.Text(DefaultDash(ingredient.Unit))
		hw.Raw(`)</td><td><input type="number" step="any" min="0" class="input"`)
		hw.Attr("name", "quantity_"+id)
		hw.Attr("value", view.Quantities[ingredient.ID])
		hw.Raw(`>`)
		hw.Render(ctx, components.FieldError(view.Errors["quantity_"+id]))
		hw.Raw(`</td><td class="num">`)
		hw.Text(Money(ingredient.UnitPrice))
		hw.Raw(`</td></tr>`)
		return hw.Err()
	})
}

func breakdownTable(breakdown costing.Breakdown) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<section class="breakdown"><h2>Custo atual</h2>`)
		hw.Raw(`<table><thead><tr><th>Ingrediente</th><th class="num">Quantidade</th><th class="num">Preço unitário</th><th class="num">Custo</th></tr></thead><tbody>`)
		for _, line := range breakdown.Lines {
			hw.Raw(`<tr><td>`)
			hw.Text(DefaultDash(line.IngredientName))
			hw.Raw(`</td><td class="num">`)
			hw.Text(FormatQuantity(line.QuantityUsed) + " " + line.Unit)
			hw.Raw(`</td><td class="num">`)
			hw.Text(Money(line.UnitPrice))
			hw.Raw(`</td><td class="num">`)
			hw.Text(Money(line.Cost))
			hw.Raw(`</td></tr>`)
		}
		hw.Raw(`</tbody><tfoot><tr><th colspan="3">Total</th><th class="num" data-total>`)
		hw.Text(Money(breakdown.Total))
		hw.Raw(`</th></tr></tfoot></table></section>`)
		return hw.Err()
	})
}
