package provider

import (
	"context"
	"net/http"

	"campus-market/internal/api"
	"campus-market/internal/apiclient"
	"campus-market/internal/model"

	"github.com/rs/zerolog"
)

// Marketplace is the per-request view of shared marketplace state.
type Marketplace struct {
	Catalogue  *api.Catalogue
	Session    *api.Session
	User       *model.User
	// Navigation records where the API client sent this request after a 401.
	Navigation *apiclient.LocationRecorder
}

// SignedIn reports whether a user record is stored.
func (m *Marketplace) SignedIn() bool {
	return m != nil && m.User != nil
}

// RedirectTarget returns the location the API client navigated to during
// this request, or "" if it did not.
func (m *Marketplace) RedirectTarget() string {
	if m == nil || m.Navigation == nil {
		return ""
	}
	return m.Navigation.Location()
}

type marketplaceKey struct{}

// MarketplaceProvider attaches the catalogue, the session, the stored user
// and a fresh navigator to each request. The navigator is also placed where
// the API client finds it, so a 401 during the request is recorded on it.
// A storage failure is logged and the request continues signed out.
func MarketplaceProvider(catalogue *api.Catalogue, session *api.Session, logger zerolog.Logger) func(http.Handler) http.Handler {
	logger = logger.With().Str("component", "marketplace-provider").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := session.Current(r.Context())
			if err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("failed to load signed-in user")
				user = nil
			}

			nav := &apiclient.LocationRecorder{}
			state := &Marketplace{
				Catalogue:  catalogue,
				Session:    session,
				User:       user,
				Navigation: nav,
			}
			ctx := apiclient.WithNavigator(r.Context(), nav)
			next.ServeHTTP(w, r.WithContext(WithMarketplace(ctx, state)))
		})
	}
}

// WithMarketplace returns a context carrying state.
func WithMarketplace(ctx context.Context, state *Marketplace) context.Context {
	return context.WithValue(ctx, marketplaceKey{}, state)
}

// MarketplaceFrom returns the state attached by MarketplaceProvider, or nil.
func MarketplaceFrom(ctx context.Context) *Marketplace {
	m, _ := ctx.Value(marketplaceKey{}).(*Marketplace)
	return m
}
