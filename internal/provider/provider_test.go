package provider

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"campus-market/internal/api"
	"campus-market/internal/apiclient"
	"campus-market/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeProvider(t *testing.T) {
	tests := []struct {
		name     string
		fallback Theme
		query    string
		cookie   string
		expected Theme
	}{
		{name: "Fallback", fallback: ThemeLight, expected: ThemeLight},
		{name: "Dark fallback", fallback: ThemeDark, expected: ThemeDark},
		{name: "Cookie wins over fallback", fallback: ThemeLight, cookie: "dark", expected: ThemeDark},
		{name: "Query wins over cookie", fallback: ThemeLight, cookie: "dark", query: "light", expected: ThemeLight},
		{name: "Invalid query ignored", fallback: ThemeLight, cookie: "dark", query: "sepia", expected: ThemeDark},
		{name: "Invalid cookie ignored", fallback: ThemeDark, cookie: "neon", expected: ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen Theme
			h := ThemeProvider(tt.fallback)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = ThemeFrom(r.Context())
			}))

			target := "/"
			if tt.query != "" {
				target += "?theme=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: ThemeCookie, Value: tt.cookie})
			}
			w := httptest.NewRecorder()

			h.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, seen)
			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, string(tt.expected), cookies[0].Value)
		})
	}
}

func TestThemeFrom_Default(t *testing.T) {
	assert.Equal(t, ThemeLight, ThemeFrom(context.Background()))
}

type brokenStore struct {
	storage.Store
}

func (brokenStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("storage offline")
}

func TestMarketplaceProvider(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	catalogue := api.NewCatalogue(nil)
	session := api.NewSession(store, catalogue.Auth, zerolog.Nop())

	var requestNav apiclient.Navigator
	serve := func(s *api.Session) *Marketplace {
		var state *Marketplace
		h := MarketplaceProvider(catalogue, s, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state = MarketplaceFrom(r.Context())
			requestNav = apiclient.NavigatorFrom(r.Context())
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		return state
	}

	t.Run("Signed out", func(t *testing.T) {
		state := serve(session)
		require.NotNil(t, state)
		assert.Same(t, catalogue, state.Catalogue)
		assert.False(t, state.SignedIn())
	})

	t.Run("Signed in", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, storage.UserKey, `{"id":"u1","name":"Ada"}`))
		defer store.Remove(ctx, storage.UserKey)

		state := serve(session)
		require.True(t, state.SignedIn())
		assert.Equal(t, "Ada", state.User.Name)
	})

	t.Run("Each request gets its own navigator", func(t *testing.T) {
		first := serve(session)
		require.NotNil(t, first.Navigation)
		assert.Same(t, first.Navigation, requestNav)

		first.Navigation.Navigate("/login")
		assert.Equal(t, "/login", first.RedirectTarget())

		second := serve(session)
		assert.NotSame(t, first.Navigation, second.Navigation)
		assert.Equal(t, "", second.RedirectTarget())
	})

	t.Run("Storage failure continues signed out", func(t *testing.T) {
		broken := api.NewSession(brokenStore{Store: store}, catalogue.Auth, zerolog.Nop())
		state := serve(broken)
		require.NotNil(t, state)
		assert.False(t, state.SignedIn())
	})
}

func TestMarketplaceFrom_Missing(t *testing.T) {
	var m *Marketplace
	assert.Nil(t, MarketplaceFrom(context.Background()))
	assert.False(t, m.SignedIn())
	assert.Equal(t, "", m.RedirectTarget())
}
