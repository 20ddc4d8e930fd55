// Package api is the typed catalogue of marketplace backend endpoints. Each
// method maps its arguments to exactly one call on the shared Requester.
package api

import (
	"context"
	"net/url"
)

// Requester sends one JSON request to the backend. *apiclient.Client
// implements it.
type Requester interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// Catalogue groups the resource services.
type Catalogue struct {
	Products         *ProductsAPI
	Users            *UsersAPI
	Chats            *ChatsAPI
	PurchaseRequests *PurchaseRequestsAPI
	Favorites        *FavoritesAPI
	Auth             *AuthAPI
}

// NewCatalogue wires every service to r.
func NewCatalogue(r Requester) *Catalogue {
	return &Catalogue{
		Products:         &ProductsAPI{r: r},
		Users:            &UsersAPI{r: r},
		Chats:            &ChatsAPI{r: r},
		PurchaseRequests: &PurchaseRequestsAPI{r: r},
		Favorites:        &FavoritesAPI{r: r},
		Auth:             &AuthAPI{r: r},
	}
}

func resourcePath(base, id string, rest ...string) string {
	p := base + "/" + url.PathEscape(id)
	for _, r := range rest {
		p += "/" + r
	}
	return p
}

func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}
