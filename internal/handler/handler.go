package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"campus-market/internal/apiclient"
	"campus-market/internal/middleware"
	"campus-market/internal/model"
	"campus-market/internal/provider"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Str("code", code).Int("status", status).Msg("page error")
	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.GetRequestID(r.Context()),
	})
}

// writeAPIError renders a failed backend call. When the API client navigated
// during the request (a 401, after it cleared the stored credentials), the
// visitor is redirected to that location.
func (h *PageHandler) writeAPIError(w http.ResponseWriter, r *http.Request, err error) {
	if target := provider.MarketplaceFrom(r.Context()).RedirectTarget(); target != "" {
		http.Redirect(w, r, target, http.StatusFound)
		return
	}

	var derr *model.DomainError
	if errors.As(err, &derr) {
		writeError(w, r, http.StatusBadRequest, derr.Code, derr.Message, h.logger)
		return
	}

	status := apiclient.StatusCode(err)
	message := err.Error()
	var rerr *apiclient.ResponseError
	if errors.As(err, &rerr) {
		message = rerr.Message()
	}
	if status == 0 {
		status = http.StatusBadGateway
	}
	writeError(w, r, status, model.ErrCodeUpstream, message, h.logger)
}

// writeLoginError renders a failed login attempt, including a 401, as an
// error response rather than a redirect.
func (h *PageHandler) writeLoginError(w http.ResponseWriter, r *http.Request, err error) {
	var rerr *apiclient.ResponseError
	if errors.As(err, &rerr) && rerr.StatusCode == http.StatusUnauthorized {
		writeError(w, r, http.StatusUnauthorized, model.ErrCodeNotSignedIn, rerr.Message(), h.logger)
		return
	}
	h.writeAPIError(w, r, err)
}
