package api

import (
	"context"

	"campus-market/internal/model"
)

const requestsPath = "/api/requests"

// PurchaseRequestsAPI covers /api/requests.
type PurchaseRequestsAPI struct {
	r Requester
}

// GetAll lists purchase requests.
func (a *PurchaseRequestsAPI) GetAll(ctx context.Context) ([]model.PurchaseRequest, error) {
	var requests []model.PurchaseRequest
	if err := a.r.Get(ctx, requestsPath, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// Create opens a purchase request for a product.
func (a *PurchaseRequestsAPI) Create(ctx context.Context, input model.PurchaseRequestInput) (*model.PurchaseRequest, error) {
	var request model.PurchaseRequest
	if err := a.r.Post(ctx, requestsPath, input, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// UpdateStatus accepts or declines a request. Any other status is rejected
// with model.ErrInvalidStatus without contacting the backend.
func (a *PurchaseRequestsAPI) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (*model.PurchaseRequest, error) {
	if !status.Updatable() {
		return nil, model.ErrInvalidStatus
	}

	var request model.PurchaseRequest
	if err := a.r.Put(ctx, resourcePath(requestsPath, id), model.StatusUpdate{Status: status}, &request); err != nil {
		return nil, err
	}
	return &request, nil
}
