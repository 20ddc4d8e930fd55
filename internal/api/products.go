package api

import (
	"context"

	"campus-market/internal/model"
)

const productsPath = "/api/products"

// ProductsAPI covers /api/products.
type ProductsAPI struct {
	r Requester
}

// GetAll lists every product.
func (a *ProductsAPI) GetAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := a.r.Get(ctx, productsPath, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetByID fetches a single product.
func (a *ProductsAPI) GetByID(ctx context.Context, id string) (*model.Product, error) {
	var product model.Product
	if err := a.r.Get(ctx, resourcePath(productsPath, id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Create posts a new listing. The backend assigns id and posted_at.
func (a *ProductsAPI) Create(ctx context.Context, input model.ProductInput) (*model.Product, error) {
	var product model.Product
	if err := a.r.Post(ctx, productsPath, input, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Update applies a partial update.
func (a *ProductsAPI) Update(ctx context.Context, id string, patch model.ProductPatch) (*model.Product, error) {
	var product model.Product
	if err := a.r.Put(ctx, resourcePath(productsPath, id), patch, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes a listing.
func (a *ProductsAPI) Delete(ctx context.Context, id string) error {
	return a.r.Delete(ctx, resourcePath(productsPath, id))
}
