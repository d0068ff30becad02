package handlers

import (
	"fmt"
	"net/http"

	applog "kitchencost/internal/log"
	"kitchencost/internal/store"
	"kitchencost/internal/views/components"
	"kitchencost/internal/views/pages"
)

// ListIngredients renders every ingredient.
func (h *Handler) ListIngredients(w http.ResponseWriter, r *http.Request) {
	ingredients, err := h.ingredients.List(r.Context())
	if err != nil {
		h.fail(w, r, err, "list ingredients")
		return
	}
	h.renderPage(w, r, http.StatusOK, pages.IngredientsPage(pages.IngredientsView{
		Flash:       h.popFlash(r),
		Ingredients: ingredients,
	}))
}

// NewIngredientForm renders the empty registration form.
func (h *Handler) NewIngredientForm(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, http.StatusOK, pages.IngredientFormPage(newIngredientView(pages.IngredientFormValues{}, nil)))
}

// RegisterIngredient creates an ingredient from the submitted form.
func (h *Handler) RegisterIngredient(w http.ResponseWriter, r *http.Request) {
	values, input, err := readIngredientForm(r)
	if err != nil {
		h.ingredientFormError(w, r, newIngredientView(values, nil), err)
		return
	}

	ingredient, err := h.ingredients.Create(r.Context(), input)
	if err != nil {
		h.ingredientFormError(w, r, newIngredientView(values, nil), err)
		return
	}

	applog.Info(r.Context(), "ingredient registered", "id", ingredient.ID, "name", ingredient.Name)
	h.putFlash(r, fmt.Sprintf("Ingrediente %q cadastrado.", ingredient.Name))
	redirect(w, r, "/")
}

// EditIngredientForm renders the edit form pre-populated with the stored values.
func (h *Handler) EditIngredientForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "Ingrediente não encontrado.")
		return
	}
	ingredient, err := h.ingredients.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, err, "load ingredient", "id", id)
		return
	}
	h.renderPage(w, r, http.StatusOK, pages.IngredientFormPage(editIngredientView(id, pages.IngredientValues(*ingredient), nil)))
}

// UpdateIngredient overwrites an ingredient with the submitted form.
func (h *Handler) UpdateIngredient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.notFound(w, r, "Ingrediente não encontrado.")
		return
	}
	if _, err := h.ingredients.Get(r.Context(), id); err != nil {
		h.fail(w, r, err, "load ingredient", "id", id)
		return
	}

	values, input, err := readIngredientForm(r)
	if err != nil {
		h.ingredientFormError(w, r, editIngredientView(id, values, nil), err)
		return
	}

	ingredient, err := h.ingredients.Update(r.Context(), id, input)
	if err != nil {
		h.ingredientFormError(w, r, editIngredientView(id, values, nil), err)
		return
	}

	applog.Info(r.Context(), "ingredient updated", "id", ingredient.ID, "name", ingredient.Name)
	h.putFlash(r, fmt.Sprintf("Ingrediente %q atualizado.", ingredient.Name))
	redirect(w, r, "/")
}

func (h *Handler) ingredientFormError(w http.ResponseWriter, r *http.Request, view pages.IngredientFormView, err error) {
	fields := store.FieldErrors(err)
	if fields == nil {
		h.fail(w, r, err, "save ingredient")
		return
	}
	applog.Debug(r.Context(), "ingredient form rejected", "fields", fields)
	view.Errors = fields
	h.renderPage(w, r, http.StatusUnprocessableEntity, pages.IngredientFormPage(view))
}

func readIngredientForm(r *http.Request) (pages.IngredientFormValues, store.IngredientInput, error) {
	if err := r.ParseForm(); err != nil {
		return pages.IngredientFormValues{}, store.IngredientInput{}, malformedForm()
	}
	values := pages.IngredientFormValues{
		Name:      r.PostForm.Get("name"),
		Quantity:  r.PostForm.Get("quantity"),
		Unit:      r.PostForm.Get("unit"),
		UnitPrice: r.PostForm.Get("unit_price"),
	}
	input, err := store.ParseIngredientInput(values.Name, values.Quantity, values.Unit, values.UnitPrice)
	return values, input, err
}

func malformedForm() error {
	verr := &store.ValidationError{}
	verr.Add("form", "could not be read")
	return verr
}

func newIngredientView(values pages.IngredientFormValues, errs map[string]string) pages.IngredientFormView {
	return pages.IngredientFormView{Title: "Cadastrar ingrediente", Action: "/cadastro", Values: values, Errors: errs}
}

func editIngredientView(id uint, values pages.IngredientFormValues, errs map[string]string) pages.IngredientFormView {
	return pages.IngredientFormView{
		Title:  "Editar ingrediente",
		Action: "/editar_ingrediente/" + components.IDString(id),
		Values: values,
		Errors: errs,
	}
}
