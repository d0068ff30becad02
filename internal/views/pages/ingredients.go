package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"kitchencost/internal/views/components"
	"kitchencost/internal/views/layout"
	"kitchencost/models"
)

var ingredientFieldOrder = []string{"form", "name", "quantity", "unit", "unit_price"}

// IngredientsView lists every ingredient.
type IngredientsView struct {
	Flash       string
	Ingredients []models.Ingredient
}

func IngredientsPage(view IngredientsView) Page {
	return Page{Title: "Ingredientes", Section: layout.SectionIngredients, Content: ingredientsContent(view)}
}

func ingredientsContent(view IngredientsView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Render(ctx, components.Flash(view.Flash))
		hw.Raw(`<h1>Ingredientes</h1>`)
		if len(view.Ingredients) == 0 {
			hw.Raw(`<p class="empty">Nenhum ingrediente cadastrado. <a href="/cadastro">Cadastrar o primeiro</a>.</p>`)
			return hw.Err()
		}
		hw.Raw(`<table><thead><tr><th>Nome</th><th class="num">Quantidade</th><th>Unidade</th><th class="num">Preço unitário</th><th></th></tr></thead><tbody>`)
		for _, ingredient := range view.Ingredients {
			hw.Raw(`<tr><td>`)
			hw.Text(DefaultDash(ingredient.Name))
			hw.Raw(`</td><td class="num">`)
			hw.Text(FormatQuantity(ingredient.Quantity))
			hw.Raw(`</td><td>`)
			hw.Text(DefaultDash(ingredient.Unit))
			hw.Raw(`</td><td class="num">`)
			hw.Text(Money(ingredient.UnitPrice))
			hw.Raw(`</td><td><a`)
			hw.Attr("href", "/editar_ingrediente/"+components.IDString(ingredient.ID))
			hw.Raw(`>Editar</a></td></tr>`)
		}
		hw.Raw(`</tbody></table>`)
		return hw.Err()
	})
}

// IngredientFormValues holds the raw field values echoed back into the form.
type IngredientFormValues struct {
	Name      string
	Quantity  string
	Unit      string
	UnitPrice string
}

// IngredientValues pre-populates the form from a stored ingredient.
func IngredientValues(ingredient models.Ingredient) IngredientFormValues {
	return IngredientFormValues{
		Name:      ingredient.Name,
		Quantity:  FormatQuantity(ingredient.Quantity),
		Unit:      ingredient.Unit,
		UnitPrice: FormatQuantity(ingredient.UnitPrice),
	}
}

// IngredientFormView drives both the registration and the edit form.
type IngredientFormView struct {
	Title  string
	Action string
	Values IngredientFormValues
	Errors map[string]string
}

func IngredientFormPage(view IngredientFormView) Page {
	return Page{Title: view.Title, Section: layout.SectionIngredients, Content: ingredientFormContent(view)}
}

func ingredientFormContent(view IngredientFormView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := components.NewWriter(w)
		hw.Raw(`<h1>`)
		hw.Text(view.Title)
		hw.Raw(`</h1>`)
		hw.Render(ctx, components.ErrorSummary(view.Errors, ingredientFieldOrder))
		hw.Raw(`<form method="post"`)
		hw.Attr("action", view.Action)
		hw.Raw(`>`)
		hw.Render(ctx, components.Input(components.InputField{Label: "Nome", Name: "name", Value: view.Values.Name, Error: view.Errors["name"]}))
		hw.Render(ctx, components.Input(components.InputField{Label: "Quantidade", Name: "quantity", Type: "number", Step: "any", Value: view.Values.Quantity, Error: view.Errors["quantity"]}))
		hw.Render(ctx, components.Input(components.InputField{Label: "Unidade (g, ml, un)", Name: "unit", Value: view.Values.Unit, Error: view.Errors["unit"]}))
		hw.Render(ctx, components.Input(components.InputField{Label: "Preço unitário (R$)", Name: "unit_price", Type: "number", Step: "any", Value: view.Values.UnitPrice, Error: view.Errors["unit_price"]}))
		hw.Raw(`<button type="submit">Salvar</button></form>`)
		return hw.Err()
	})
}
