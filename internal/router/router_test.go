package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"campus-market/internal/api"
	"campus-market/internal/apiclient"
	"campus-market/internal/config"
	"campus-market/internal/handler"
	"campus-market/internal/provider"
	"campus-market/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, backend http.HandlerFunc, mediaDir string) (http.Handler, storage.Store) {
	t.Helper()
	return newTestRouterWithMedia(t, backend, mediaDir, "")
}

func newTestRouterWithMedia(t *testing.T, backend http.HandlerFunc, mediaDir, mediaPath string) (http.Handler, storage.Store) {
	t.Helper()

	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	logger := zerolog.Nop()
	store := storage.NewMemoryStore()
	client := apiclient.New(config.APIConfig{BaseURL: srv.URL, LoginPath: "/login"}, store, nil, logger)
	catalogue := api.NewCatalogue(client)

	return New(Deps{
		Pages:     handler.NewPageHandler("/login", nil, logger),
		Catalogue: catalogue,
		Session:   api.NewSession(store, catalogue.Auth, logger),
		Theme:     provider.ThemeLight,
		LoginPath: "/login",
		MediaDir:  mediaDir,
		MediaPath: mediaPath,
		Logger:    logger,
	}), store
}

func TestRoutes_Table(t *testing.T) {
	routes := Routes(handler.NewPageHandler("/login", nil, zerolog.Nop()))

	paths := map[string]string{}
	for _, rt := range routes {
		require.NotNil(t, rt.Handler, rt.Path)
		paths[rt.Path] = rt.Name
	}

	assert.Equal(t, map[string]string{
		"/":              "home",
		"/marketplace":   "marketplace",
		"/product/{id}":  "product",
		"/profile":       "profile",
		"/list-item":     "list-item",
		"/auth/callback": "auth-callback",
	}, paths)
}

func TestRoute_Pattern(t *testing.T) {
	assert.Equal(t, "GET /{$}", Route{Path: "/", Method: http.MethodGet}.pattern())
	assert.Equal(t, "POST /list-item", Route{Path: "/list-item", Method: http.MethodPost}.pattern())
}

func TestNew_Routing(t *testing.T) {
	backend := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/products":
			w.Write([]byte(`[{"id":"p1","title":"Desk"}]`))
		case "/api/products/p1":
			w.Write([]byte(`{"id":"p1","title":"Desk"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}
	}
	h, _ := newTestRouter(t, backend, "")

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedPage   string
	}{
		{name: "Home", method: http.MethodGet, path: "/", expectedStatus: http.StatusOK, expectedPage: "home"},
		{name: "Marketplace", method: http.MethodGet, path: "/marketplace", expectedStatus: http.StatusOK, expectedPage: "marketplace"},
		{name: "Product", method: http.MethodGet, path: "/product/p1", expectedStatus: http.StatusOK, expectedPage: "product"},
		{name: "Login page", method: http.MethodGet, path: "/login", expectedStatus: http.StatusOK, expectedPage: "login"},
		{name: "List item signed out", method: http.MethodGet, path: "/list-item", expectedStatus: http.StatusFound},
		{name: "Unknown path", method: http.MethodGet, path: "/nope", expectedStatus: http.StatusNotFound},
		{name: "Wrong method", method: http.MethodDelete, path: "/marketplace", expectedStatus: http.StatusMethodNotAllowed},
		{name: "Health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "Preflight", method: http.MethodOptions, path: "/marketplace", expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
			if tt.expectedPage != "" {
				var v map[string]any
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
				assert.Equal(t, tt.expectedPage, v["page"])
				assert.Equal(t, "light", v["theme"])
			}
		})
	}
}

func TestNew_ProvidersApplyToPages(t *testing.T) {
	h, store := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, "")
	require.NoError(t, store.Set(context.Background(), storage.UserKey, `{"id":"u1","name":"Ada"}`))

	req := httptest.NewRequest(http.MethodGet, "/?theme=dark", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var v map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, "dark", v["theme"])
	assert.Equal(t, "Ada", v["user"].(map[string]any)["name"])
}

func TestNew_UnauthorizedRedirectsToLogin(t *testing.T) {
	h, store := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"token expired"}`))
	}, "")
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.TokenKey, "stale"))
	require.NoError(t, store.Set(ctx, storage.UserKey, `{"id":"u1"}`))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/marketplace", nil))

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	_, ok, _ := store.Get(ctx, storage.TokenKey)
	assert.False(t, ok)
	_, ok, _ = store.Get(ctx, storage.UserKey)
	assert.False(t, ok)
}

func TestNew_ServesUploads(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.png"), []byte("png"), 0o644))
	h, _ := newTestRouter(t, func(w http.ResponseWriter, r *http.Request) {}, dir)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/a.png", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png", w.Body.String())
}

func TestNew_ServesUploadsAtConfiguredPath(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.jpg"), []byte("jpg"), 0o644))
	h, _ := newTestRouterWithMedia(t, func(w http.ResponseWriter, r *http.Request) {}, dir, "/media/")

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/media/b.jpg", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jpg", w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/uploads/b.jpg", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_PathsAreReserved(t *testing.T) {
	for _, rt := range Routes(handler.NewPageHandler("/login", nil, zerolog.Nop())) {
		assert.True(t, config.IsReservedPath(rt.Path), rt.Path)
	}
	assert.True(t, config.IsReservedPath("/health"))
	assert.True(t, config.IsReservedPath("/logout"))
}
