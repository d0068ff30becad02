package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"kitchencost/internal/costing"
	applog "kitchencost/internal/log"
	"kitchencost/internal/store"
	"kitchencost/internal/views/pages"
	"kitchencost/models"
)

const sessionFlashKey = "flash"

// IngredientStore is the ingredient persistence the handlers need.
type IngredientStore interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	Get(ctx context.Context, id uint) (*models.Ingredient, error)
	Create(ctx context.Context, in store.IngredientInput) (*models.Ingredient, error)
	Update(ctx context.Context, id uint, in store.IngredientInput) (*models.Ingredient, error)
	Upsert(ctx context.Context, in store.IngredientInput) (*models.Ingredient, bool, error)
}

// RecipeStore is the recipe persistence the handlers need.
type RecipeStore interface {
	ListWithLines(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	GetWithLines(ctx context.Context, id uint) (*models.Recipe, error)
	CreateWithLines(ctx context.Context, name string, specs []store.LineSpec) (*models.Recipe, error)
	Replace(ctx context.Context, id uint, name string, specs []store.LineSpec) error
}

// Dependencies are the collaborators injected into Handler.
type Dependencies struct {
	Ingredients IngredientStore
	Recipes     RecipeStore
	Costs       *costing.Engine
	Sessions    *scs.SessionManager
	// Ping checks storage readiness for the health probe.
	Ping func(ctx context.Context) error
}

// Handler serves the HTML screens and the JSON API.
type Handler struct {
	ingredients IngredientStore
	recipes     RecipeStore
	costs       *costing.Engine
	sessions    *scs.SessionManager
	ping        func(ctx context.Context) error
}

func New(deps Dependencies) *Handler {
	return &Handler{
		ingredients: deps.Ingredients,
		recipes:     deps.Recipes,
		costs:       deps.Costs,
		sessions:    deps.Sessions,
		ping:        deps.Ping,
	}
}

// renderPage writes the page with status, sending only the content fragment to
// htmx requests. Output is buffered so a render failure can still become a 500.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, status int, page pages.Page) {
	var component templ.Component = page.Document()
	if wantsFragment(r) {
		component = page.Content
	}
	renderComponent(w, r, status, component)
}

func renderComponent(w http.ResponseWriter, r *http.Request, status int, component templ.Component) {
	var buf bytes.Buffer
	if err := component.Render(r.Context(), &buf); err != nil {
		applog.Error(r.Context(), "failed to render page", "error", err, "path", r.URL.Path)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		applog.Debug(r.Context(), "failed to write page", "error", err)
	}
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request, message string) {
	h.renderPage(w, r, http.StatusNotFound, pages.NotFoundPage(message))
}

// fail maps a store error onto a response: ErrNotFound becomes 404, anything
// else is logged and becomes 500.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, action string, args ...any) {
	if errors.Is(err, store.ErrNotFound) {
		applog.Debug(r.Context(), action+": not found", args...)
		h.notFound(w, r, "O registro solicitado não existe.")
		return
	}
	applog.Error(r.Context(), action+" failed", append(args, "error", err)...)
	h.renderPage(w, r, http.StatusInternalServerError, pages.ServerErrorPage())
}

// pathID parses the {id} route parameter. ok is false for anything that is
// not a positive integer.
func pathID(r *http.Request) (uint, bool) {
	raw := chi.URLParam(r, "id")
	value, err := strconv.ParseUint(raw, 10, 0)
	if err != nil || value == 0 {
		return 0, false
	}
	return uint(value), true
}

func (h *Handler) putFlash(r *http.Request, message string) {
	if h.sessions == nil {
		return
	}
	h.sessions.Put(r.Context(), sessionFlashKey, message)
}

func (h *Handler) popFlash(r *http.Request) string {
	if h.sessions == nil {
		return ""
	}
	return h.sessions.PopString(r.Context(), sessionFlashKey)
}

func redirect(w http.ResponseWriter, r *http.Request, target string) {
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
