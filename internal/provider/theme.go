// Package provider supplies the ambient state every page renders with: the
// visitor's theme and the marketplace state (catalogue, session, signed-in
// user).
package provider

import (
	"context"
	"net/http"
	"time"
)

// Theme is the colour scheme the visitor has chosen.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ThemeCookie persists the visitor's choice.
const ThemeCookie = "theme"

type themeKey struct{}

// ParseTheme returns the theme named s, or ok=false for anything else.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), true
	}
	return "", false
}

// ThemeProvider resolves the theme from ?theme=, then the theme cookie, then
// fallback. The resolved theme is stored in the request context and the
// cookie is refreshed.
func ThemeProvider(fallback Theme) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			theme := fallback
			if c, err := r.Cookie(ThemeCookie); err == nil {
				if t, ok := ParseTheme(c.Value); ok {
					theme = t
				}
			}
			if t, ok := ParseTheme(r.URL.Query().Get("theme")); ok {
				theme = t
			}

			http.SetCookie(w, &http.Cookie{
				Name:     ThemeCookie,
				Value:    string(theme),
				Path:     "/",
				MaxAge:   int((365 * 24 * time.Hour).Seconds()),
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(WithTheme(r.Context(), theme)))
		})
	}
}

// WithTheme returns a context carrying theme.
func WithTheme(ctx context.Context, theme Theme) context.Context {
	return context.WithValue(ctx, themeKey{}, theme)
}

// ThemeFrom returns the theme in ctx, defaulting to light.
func ThemeFrom(ctx context.Context) Theme {
	if t, ok := ctx.Value(themeKey{}).(Theme); ok {
		return t
	}
	return ThemeLight
}
