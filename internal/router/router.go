package router

import (
	"net/http"

	"campus-market/internal/api"
	"campus-market/internal/handler"
	"campus-market/internal/middleware"
	"campus-market/internal/provider"

	"github.com/rs/zerolog"
)

// Route maps a URL path to a page.
type Route struct {
	Name    string
	Path    string
	Method  string
	Handler http.HandlerFunc
}

// pattern returns the ServeMux pattern for the route. "/" matches only the
// root, not every unmatched path.
func (rt Route) pattern() string {
	path := rt.Path
	if path == "/" {
		path = "/{$}"
	}
	return rt.Method + " " + path
}

// Routes returns the application's page table.
func Routes(pages *handler.PageHandler) []Route {
	return []Route{
		{Name: "home", Path: "/", Method: http.MethodGet, Handler: pages.Home},
		{Name: "marketplace", Path: "/marketplace", Method: http.MethodGet, Handler: pages.Marketplace},
		{Name: "product", Path: "/product/{id}", Method: http.MethodGet, Handler: pages.Product},
		{Name: "profile", Path: "/profile", Method: http.MethodGet, Handler: pages.Profile},
		{Name: "list-item", Path: "/list-item", Method: http.MethodGet, Handler: pages.ListItemForm},
		{Name: "list-item", Path: "/list-item", Method: http.MethodPost, Handler: pages.ListItem},
		{Name: "auth-callback", Path: "/auth/callback", Method: http.MethodGet, Handler: pages.AuthCallback},
	}
}

// Deps holds everything New needs to mount the application.
type Deps struct {
	Pages     *handler.PageHandler
	Catalogue *api.Catalogue
	Session   *api.Session
	Theme     provider.Theme
	LoginPath string
	// MediaDir, when set, is served under MediaPath ("/uploads/" if empty).
	MediaDir  string
	MediaPath string
	Logger    zerolog.Logger
}

// New creates the HTTP handler: the page table plus login, logout, health
// and uploads, wrapped in the theme and marketplace providers and the
// standard middleware.
func New(deps Deps) http.Handler {
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	for _, rt := range Routes(deps.Pages) {
		mux.HandleFunc(rt.pattern(), rt.Handler)
	}

	loginPath := deps.LoginPath
	if loginPath == "" {
		loginPath = "/login"
	}
	mux.HandleFunc("GET "+loginPath, deps.Pages.Login)
	mux.HandleFunc("POST "+loginPath, deps.Pages.SubmitLogin)
	mux.HandleFunc("POST /logout", deps.Pages.Logout)

	if deps.MediaDir != "" {
		mediaPath := deps.MediaPath
		if mediaPath == "" {
			mediaPath = "/uploads/"
		}
		mux.Handle("GET "+mediaPath, http.StripPrefix(mediaPath, http.FileServer(http.Dir(deps.MediaDir))))
	}

	// Recovery -> RequestID -> Logging -> CORS -> Theme -> Marketplace
	return middleware.Chain(mux,
		middleware.Recovery(deps.Logger),
		middleware.RequestID,
		middleware.Logging(deps.Logger),
		middleware.CORS,
		provider.ThemeProvider(deps.Theme),
		provider.MarketplaceProvider(deps.Catalogue, deps.Session, deps.Logger),
	)
}
