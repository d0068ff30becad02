package handlers

import (
	"errors"
	"net/http"

	"kitchencost/internal/costing"
	applog "kitchencost/internal/log"
	"kitchencost/internal/store"
)

type recipeCostResponse struct {
	ID   uint    `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type recipeBreakdownResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	costing.Breakdown
}

// RecipeCostsJSON lists every recipe with its cost at current prices.
func (h *Handler) RecipeCostsJSON(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.recipes.ListWithLines(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to list recipes", "error", err)
		writeJSONError(w, http.StatusInternalServerError, "unable to load recipes")
		return
	}
	responses := make([]recipeCostResponse, 0, len(recipes))
	for _, recipe := range recipes {
		responses = append(responses, recipeCostResponse{ID: recipe.ID, Name: recipe.Name, Cost: costing.CostOfRecipe(recipe)})
	}
	writeJSON(w, http.StatusOK, responses)
}

// RecipeBreakdownJSON itemises one recipe's cost line by line.
func (h *Handler) RecipeBreakdownJSON(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSONError(w, http.StatusNotFound, "recipe not found")
		return
	}
	ctx := r.Context()
	recipe, err := h.recipes.Get(ctx, id)
	if err == nil {
		var breakdown costing.Breakdown
		breakdown, err = h.costs.Breakdown(ctx, id)
		if err == nil {
			writeJSON(w, http.StatusOK, recipeBreakdownResponse{ID: recipe.ID, Name: recipe.Name, Breakdown: breakdown})
			return
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "recipe not found")
		return
	}
	applog.Error(ctx, "failed to itemise recipe", "error", err, "id", id)
	writeJSONError(w, http.StatusInternalServerError, "unable to compute recipe cost")
}
