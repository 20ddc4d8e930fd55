package apiclient

import (
	"fmt"
	"net/http"

	"campus-market/internal/storage"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// BearerToken attaches the stored token as an Authorization header. Requests
// are sent without the header when no token is stored.
func BearerToken(store storage.Store) RequestInterceptor {
	return func(req *http.Request) error {
		token, ok, err := store.Get(req.Context(), storage.TokenKey)
		if err != nil {
			return fmt.Errorf("failed to read auth token: %w", err)
		}
		if ok && token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return nil
	}
}

// RequestID sets X-Request-ID unless the request already carries one.
func RequestID() RequestInterceptor {
	return func(req *http.Request) error {
		if req.Header.Get(RequestIDHeader) == "" {
			req.Header.Set(RequestIDHeader, uuid.NewString())
		}
		return nil
	}
}
