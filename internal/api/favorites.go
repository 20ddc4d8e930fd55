package api

import (
	"context"
	"net/url"

	"campus-market/internal/model"
)

const favoritesPath = "/api/favorites"

// FavoritesAPI covers /api/favorites. The user is always passed explicitly.
type FavoritesAPI struct {
	r Requester
}

// GetByUser lists a user's favorites.
func (a *FavoritesAPI) GetByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	var favorites []model.Favorite
	path := withQuery(favoritesPath, url.Values{"user_id": {userID}})
	if err := a.r.Get(ctx, path, &favorites); err != nil {
		return nil, err
	}
	return favorites, nil
}

// Add marks a product as a favorite of userID.
func (a *FavoritesAPI) Add(ctx context.Context, productID, userID string) (*model.Favorite, error) {
	var favorite model.Favorite
	if err := a.r.Post(ctx, resourcePath(favoritesPath, productID), model.FavoriteInput{UserID: userID}, &favorite); err != nil {
		return nil, err
	}
	return &favorite, nil
}

// Remove unmarks a favorite.
func (a *FavoritesAPI) Remove(ctx context.Context, productID, userID string) error {
	path := withQuery(resourcePath(favoritesPath, productID), url.Values{"user_id": {userID}})
	return a.r.Delete(ctx, path)
}
