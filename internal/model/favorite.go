package model

import "time"

// Favorite marks a product saved by a user.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}

// FavoriteInput is the body sent when saving a product.
type FavoriteInput struct {
	UserID string `json:"user_id"`
}
