package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"kitchencost/internal/db/dbtest"
	applog "kitchencost/internal/log"
)

func TestNewRequiresDatabase(t *testing.T) {
	_, err := New(Config{Addr: ":8080"})
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	srv, err := New(Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}, Database: dbtest.Open(t)})
	require.NoError(t, err)

	assert.Equal(t, ":8080", srv.httpServer.Addr)
	require.NotNil(t, srv.Handler())

	form := url.Values{"name": {"Farinha"}, "quantity": {"1000"}, "unit": {"g"}, "unit_price": {"0.01"}}
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cadastro", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	require.Equal(t, http.StatusSeeOther, rr.Code)
	cookies := rr.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	assert.Equal(t, "kitchencost_session", cookies[0].Name)
	assert.True(t, cookies[0].Secure)
	assert.True(t, cookies[0].HttpOnly)
}

func TestRouterServesRoutes(t *testing.T) {
	srv, err := New(Config{Addr: ":9090", Database: dbtest.Open(t)})
	require.NoError(t, err)

	cases := map[string]int{
		"/healthz":           http.StatusOK,
		"/":                  http.StatusOK,
		"/cadastro":          http.StatusOK,
		"/receitas":          http.StatusOK,
		"/cadastrar_receita": http.StatusOK,
		"/importar":          http.StatusOK,
		"/api/receitas":      http.StatusOK,
		"/editar_receita/1":  http.StatusNotFound,
		"/nao-existe":        http.StatusNotFound,
	}
	for path, want := range cases {
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, rr.Code, path)
	}

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/receitas", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRequestLoggerRecordsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	original := applog.Logger()
	applog.ReplaceLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { applog.ReplaceLogger(original) })

	srv, err := New(Config{Database: dbtest.Open(t)})
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/editar_ingrediente/77", nil))
	require.Equal(t, http.StatusNotFound, rr.Code)

	out := buf.String()
	assert.Contains(t, out, `msg="http request"`)
	assert.Contains(t, out, "status=404")
	assert.Contains(t, out, "path=/editar_ingrediente/77")
	assert.Contains(t, out, "request_id=")
}

func TestStartStopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t,
		goleak.IgnoreCurrent(),
		goleak.IgnoreAnyFunction("github.com/alexedwards/scs/v2/memstore.(*MemStore).startCleanup"),
		goleak.IgnoreAnyFunction("database/sql.(*DB).connectionOpener"),
	)

	srv, err := New(Config{Addr: "127.0.0.1:0", Database: dbtest.Open(t)})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Start() }()

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, srv.Stop())

	select {
	case err := <-done:
		assert.True(t, errors.Is(err, http.ErrServerClosed), "unexpected start error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
