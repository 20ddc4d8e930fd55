package apiclient

import (
	"context"
	"sync"
)

// Navigator moves the user to another location in the app.
type Navigator interface {
	Navigate(path string)
}

// LocationRecorder is a Navigator that remembers the most recent target.
type LocationRecorder struct {
	mu       sync.RWMutex
	location string
	count    int
}

// Navigate records path as the current location.
func (l *LocationRecorder) Navigate(path string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.location = path
	l.count++
}

// Location returns the last recorded target, or "" if none.
func (l *LocationRecorder) Location() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.location
}

// Count returns how many times Navigate has been called.
func (l *LocationRecorder) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.count
}

type navigatorKey struct{}

// WithNavigator returns a context whose requests navigate nav on a 401
// instead of the client's own navigator.
func WithNavigator(ctx context.Context, nav Navigator) context.Context {
	return context.WithValue(ctx, navigatorKey{}, nav)
}

// NavigatorFrom returns the navigator attached by WithNavigator, or nil.
func NavigatorFrom(ctx context.Context) Navigator {
	nav, _ := ctx.Value(navigatorKey{}).(Navigator)
	return nav
}
