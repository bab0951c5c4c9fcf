package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/iyhunko/product-catalog/internal/config"
	routerpkg "github.com/iyhunko/product-catalog/internal/http"
	"github.com/iyhunko/product-catalog/internal/http/controller"
	"github.com/iyhunko/product-catalog/internal/http/middleware"
	"github.com/iyhunko/product-catalog/internal/model"
	"github.com/iyhunko/product-catalog/internal/repository/memory"
	"github.com/iyhunko/product-catalog/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func setupRouter(t *testing.T, conf *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := memory.NewProductRepository()
	productSvc := service.NewProductService(repo, nil)
	return routerpkg.InitRouter(conf, gin.New(), controller.New(repo), controller.NewProductController(productSvc))
}

func call(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRouter_ProductLifecycle(t *testing.T) {
	router := setupRouter(t, &config.Config{})

	// create
	w, env := call(t, router, http.MethodPost, routerpkg.ProductsPath, `{"name":"Lamp","price":19.99,"image":"http://x/lamp.png"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.Product
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "Lamp", created.Name)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	// list
	w, env = call(t, router, http.MethodGet, routerpkg.ProductsPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Product
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	// update price only
	w, env = call(t, router, http.MethodPut, routerpkg.ProductsPath+"/"+created.ID.Hex(), `{"price":9.99}`)
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Product
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, 9.99, updated.Price)
	assert.Equal(t, "Lamp", updated.Name)
	assert.Equal(t, "http://x/lamp.png", updated.Image)
	assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	// delete
	w, env = call(t, router, http.MethodDelete, routerpkg.ProductsPath+"/"+created.ID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Product has been deleted", env.Message)

	// list is empty again
	w, env = call(t, router, http.MethodGet, routerpkg.ProductsPath, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, string(env.Data))

	// delete is idempotent
	w, env = call(t, router, http.MethodDelete, routerpkg.ProductsPath+"/"+created.ID.Hex(), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	// update of a deleted product succeeds with null data
	w, env = call(t, router, http.MethodPut, routerpkg.ProductsPath+"/"+created.ID.Hex(), `{"price":1}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "null", string(env.Data))
}

func TestRouter_Ping(t *testing.T) {
	router := setupRouter(t, &config.Config{})

	w, _ := call(t, router, http.MethodGet, "/ping", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRouter_RequestIDHeader(t *testing.T) {
	router := setupRouter(t, &config.Config{})

	req := httptest.NewRequest(http.MethodGet, routerpkg.ProductsPath, nil)
	req.Header.Set(middleware.RequestIDHeader, "trace-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "trace-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Preflight(t *testing.T) {
	router := setupRouter(t, &config.Config{})

	req := httptest.NewRequest(http.MethodOptions, routerpkg.ProductsPath, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_NotFound(t *testing.T) {
	router := setupRouter(t, &config.Config{})

	for _, path := range []string{"/api/unknown", "/", "/products/1"} {
		w, env := call(t, router, http.MethodGet, path, "")

		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.False(t, env.Success)
		assert.Equal(t, "Not Found", env.Message)
	}
}

func TestRouter_ProductionFrontend(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>catalog</html>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log('app')"), 0o600))

	router := setupRouter(t, &config.Config{Env: config.ProductionEnv, StaticDir: dir})

	t.Run("serves existing file", func(t *testing.T) {
		w, _ := call(t, router, http.MethodGet, "/assets/app.js", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "console.log('app')", w.Body.String())
	})

	t.Run("falls back to index for client routes", func(t *testing.T) {
		for _, path := range []string{"/", "/create", "/products/edit/42"} {
			w, _ := call(t, router, http.MethodGet, path, "")

			assert.Equal(t, http.StatusOK, w.Code, path)
			assert.Contains(t, w.Body.String(), "catalog", path)
		}
	})

	t.Run("api paths keep json 404", func(t *testing.T) {
		w, env := call(t, router, http.MethodGet, "/api/unknown", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Not Found", env.Message)
	})

	t.Run("api routes still work", func(t *testing.T) {
		w, env := call(t, router, http.MethodGet, routerpkg.ProductsPath, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Success)
	})

	t.Run("non GET methods are not served", func(t *testing.T) {
		w, _ := call(t, router, http.MethodPost, "/create", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
