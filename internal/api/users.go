package api

import (
	"context"

	"campus-market/internal/model"
)

const usersPath = "/api/users"

// UsersAPI covers /api/users.
type UsersAPI struct {
	r Requester
}

// GetByID fetches a user profile.
func (a *UsersAPI) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := a.r.Get(ctx, resourcePath(usersPath, id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create registers a user record.
func (a *UsersAPI) Create(ctx context.Context, input model.UserInput) (*model.User, error) {
	var user model.User
	if err := a.r.Post(ctx, usersPath, input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a partial profile update.
func (a *UsersAPI) Update(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	var user model.User
	if err := a.r.Put(ctx, resourcePath(usersPath, id), patch, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
