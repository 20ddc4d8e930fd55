package handler

import (
	"encoding/json"
	"net/http"

	"campus-market/internal/model"
	"campus-market/internal/provider"
)

// Login handles GET /login, the page the API client sends visitors to after
// a 401.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newView(r, "login", map[string]any{
		"fields": []formField{
			{Name: "email", Type: "email", Required: true},
			{Name: "password", Type: "password", Required: true},
		},
	}))
}

// SubmitLogin handles POST /login with a JSON credentials body.
func (h *PageHandler) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())

	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidForm, "invalid request body", h.logger)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingField, "email and password are required", h.logger)
		return
	}

	user, err := state.Session.Login(r.Context(), creds)
	if err != nil {
		// A rejected login is a 401 from the backend; show it instead of
		// redirecting back to this page.
		h.writeLoginError(w, r, err)
		return
	}

	v := newView(r, "login", nil)
	v.User = user
	writeJSON(w, http.StatusOK, v)
}

// Logout handles POST /logout.
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	state := provider.MarketplaceFrom(r.Context())

	if err := state.Session.Logout(r.Context()); err != nil {
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to sign out", h.logger)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
