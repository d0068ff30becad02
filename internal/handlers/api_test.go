package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitchencost/internal/store"
)

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rr := app.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp healthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Time.IsZero())
}

func TestHealthUnavailable(t *testing.T) {
	t.Parallel()

	cases := map[string]Dependencies{
		"no database": {},
		"ping fails":  {Ping: func(ctx context.Context) error { return errors.New("down") }},
	}
	for name, deps := range cases {
		rr := httptest.NewRecorder()
		New(deps).Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code, name)

		var resp healthResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), name)
		assert.Equal(t, "unavailable", resp.Status, name)
	}
}

func TestRecipeCostsJSON(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	flour := app.seedIngredient(t, "Farinha", 1000, "g", 0.01)
	_, err := app.recipes.CreateWithLines(ctx, "Pão", []store.LineSpec{{IngredientID: flour.ID, QuantityUsed: 500}})
	require.NoError(t, err)
	_, err = app.recipes.Create(ctx, "Vazia")
	require.NoError(t, err)

	rr := app.do(t, http.MethodGet, "/api/receitas", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []recipeCostResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "Pão", resp[0].Name)
	assert.InDelta(t, 5.0, resp[0].Cost, 1e-9)
	assert.Zero(t, resp[1].Cost)
}

func TestRecipeBreakdownJSON(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	flour := app.seedIngredient(t, "Farinha", 1000, "g", 0.01)
	salt := app.seedIngredient(t, "Sal", 500, "g", 0.002)
	recipe, err := app.recipes.CreateWithLines(ctx, "Pão", []store.LineSpec{
		{IngredientID: flour.ID, QuantityUsed: 500},
		{IngredientID: salt.ID, QuantityUsed: 10},
	})
	require.NoError(t, err)

	rr := app.do(t, http.MethodGet, "/api/receitas/"+idString(recipe.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp recipeBreakdownResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, recipe.ID, resp.ID)
	assert.Equal(t, "Pão", resp.Name)
	require.Len(t, resp.Lines, 2)
	assert.Equal(t, "Farinha", resp.Lines[0].IngredientName)
	assert.InDelta(t, 5.02, resp.Total, 1e-9)

	missing := app.do(t, http.MethodGet, "/api/receitas/4040", nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "application/json", missing.Header().Get("Content-Type"))
}

func uploadRequest(t *testing.T, filename, content string, dryRun bool) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("price_list", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	if dryRun {
		require.NoError(t, writer.WriteField("dry_run", "on"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/importar", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestImportPriceListUpsertsIngredients(t *testing.T) {
	app := newTestApp(t)
	app.seedIngredient(t, "Farinha", 1000, "g", 0.01)

	csv := "nome;quantidade;unidade;preco\nfarinha;1000;g;0,02\nManteiga;500;g;0,04\nOvos;12;un;caro\n"
	rr := httptest.NewRecorder()
	app.handler.ServeHTTP(rr, uploadRequest(t, "precos.csv", csv, false))
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "1 criados, 1 atualizados.")
	assert.Contains(t, body, "line 4")

	all, err := app.ingredients.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 0.02, all[0].UnitPrice)
}

func TestImportPriceListDryRun(t *testing.T) {
	app := newTestApp(t)

	rr := httptest.NewRecorder()
	app.handler.ServeHTTP(rr, uploadRequest(t, "precos.csv", "name,quantity,unit,unit_price\nSalt,500,g,0.002\n", true))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Nada foi gravado")

	all, err := app.ingredients.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestImportPriceListRejectsUnreadableFiles(t *testing.T) {
	app := newTestApp(t)

	rr := httptest.NewRecorder()
	app.handler.ServeHTTP(rr, uploadRequest(t, "precos.csv", "foo,bar\n1,2\n", false))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/importar", nil)
	app.handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestImportFormRenders(t *testing.T) {
	h := New(Dependencies{})
	router := chi.NewRouter()
	h.Register(router)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/importar", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `enctype="multipart/form-data"`)
}
