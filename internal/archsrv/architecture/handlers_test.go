package architecture

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/archsrv/internal/archsrv/config"
	"github.com/tansive/archsrv/internal/archsrv/db"
	"github.com/tansive/archsrv/internal/archsrv/db/dbmanager"
	"github.com/tidwall/gjson"
)

type testEnv struct {
	pool   dbmanager.Pool
	router *chi.Mux
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	c := config.Default()
	c.DB.URL = "sqlite://" + filepath.Join(t.TempDir(), "arch.db")
	pool, err := db.NewPool(log.Logger.WithContext(context.Background()), c)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	r := chi.NewRouter()
	Router(r, NewHandlers(pool, c.MaxRequestBodySize))
	return &testEnv{pool: pool, router: r}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func (e *testEnv) list(t *testing.T) gjson.Result {
	t.Helper()
	rr := e.do(t, http.MethodGet, "/architectures", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	result := gjson.Parse(rr.Body.String())
	require.True(t, result.IsArray(), rr.Body.String())
	return result
}

func requireStatusTrue(t *testing.T, rr *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":true}`, rr.Body.String())
}

func TestInitAndList(t *testing.T) {
	env := newTestEnv(t)

	// no table yet
	rr := env.do(t, http.MethodGet, "/architectures", "")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "StorageError", gjson.Get(rr.Body.String(), "kind").String())

	requireStatusTrue(t, env.do(t, http.MethodGet, "/init", ""))
	rr = env.do(t, http.MethodGet, "/architectures", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestCreateUpdateDelete(t *testing.T) {
	env := newTestEnv(t)
	requireStatusTrue(t, env.do(t, http.MethodGet, "/init", ""))

	requireStatusTrue(t, env.do(t, http.MethodPost, "/create", validBody))
	list := env.list(t)
	require.Len(t, list.Array(), 1)
	assert.JSONEq(t, validBody, list.Array()[0].Raw)

	update := `{"arch_id":1,"name":"x86_64","status":false,"version":"2.0","putch":"b"}`
	requireStatusTrue(t, env.do(t, http.MethodPost, "/update", update))
	requireStatusTrue(t, env.do(t, http.MethodPost, "/update", update))
	list = env.list(t)
	require.Len(t, list.Array(), 1)
	assert.JSONEq(t, update, list.Array()[0].Raw)

	// no matching row is not an error
	requireStatusTrue(t, env.do(t, http.MethodPost, "/update", `{"arch_id":9,"name":"n","status":true,"version":"v","putch":"p"}`))

	requireStatusTrue(t, env.do(t, http.MethodGet, "/delete?id=1", ""))
	assert.Empty(t, env.list(t).Array())
	requireStatusTrue(t, env.do(t, http.MethodGet, "/delete?id=1", ""))
}

func TestCreateRejectsInput(t *testing.T) {
	env := newTestEnv(t)
	requireStatusTrue(t, env.do(t, http.MethodGet, "/init", ""))

	rr := env.do(t, http.MethodPost, "/create", `{"arch_id":1,"status":true,"version":"1.0","putch":"a"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "DeserializationError", gjson.Get(rr.Body.String(), "kind").String())
	assert.Equal(t, int64(0), gjson.Get(rr.Body.String(), "result").Int())

	long := `{"arch_id":1,"name":"x86","status":true,"version":"` + strings.Repeat("9", 40) + `","putch":"a"}`
	rr = env.do(t, http.MethodPost, "/create", long)
	if rr.Code != http.StatusOK {
		// engines that enforce VARCHAR lengths reject the value as a client error
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "ConstraintViolation", gjson.Get(rr.Body.String(), "kind").String())
	}

	rr = env.do(t, http.MethodGet, "/delete", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "InvalidParameter", gjson.Get(rr.Body.String(), "kind").String())

	rr = env.do(t, http.MethodGet, "/delete?id=x", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// rejected requests do not leak connections
	requests, returns := env.pool.Stats()
	assert.Equal(t, requests, returns)
}

func TestWrongMethod(t *testing.T) {
	env := newTestEnv(t)
	rr := env.do(t, http.MethodGet, "/create", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	rr = env.do(t, http.MethodPost, "/architectures", validBody)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}
