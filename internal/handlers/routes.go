package handlers

import (
	"github.com/go-chi/chi/v5"
)

// Register mounts every route on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.Health)

	r.Get("/", h.ListIngredients)
	r.Get("/cadastro", h.NewIngredientForm)
	r.Post("/cadastro", h.RegisterIngredient)
	r.Get("/editar_ingrediente/{id}", h.EditIngredientForm)
	r.Post("/editar_ingrediente/{id}", h.UpdateIngredient)

	r.Get("/receitas", h.ListRecipes)
	r.Get("/cadastrar_receita", h.NewRecipeForm)
	r.Post("/cadastrar_receita", h.CreateRecipe)
	r.Get("/editar_receita/{id}", h.EditRecipeForm)
	r.Post("/editar_receita/{id}", h.UpdateRecipe)

	r.Get("/importar", h.ImportForm)
	r.Post("/importar", h.ImportPriceList)

	r.Route("/api", func(r chi.Router) {
		r.Get("/receitas", h.RecipeCostsJSON)
		r.Get("/receitas/{id}", h.RecipeBreakdownJSON)
	})
}
