package api

import (
	"context"

	"campus-market/internal/model"
)

// AuthAPI covers /api/auth.
type AuthAPI struct {
	r Requester
}

// Login exchanges credentials for a token and user.
func (a *AuthAPI) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := a.r.Post(ctx, "/api/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and signs it in.
func (a *AuthAPI) Register(ctx context.Context, reg model.Registration) (*model.AuthResponse, error) {
	var resp model.AuthResponse
	if err := a.r.Post(ctx, "/api/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user the stored token belongs to.
func (a *AuthAPI) Me(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := a.r.Get(ctx, "/api/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
