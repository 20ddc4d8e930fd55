package model

import "time"

// RequestStatus is the lifecycle state of a purchase request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusDeclined RequestStatus = "declined"
)

// Updatable reports whether a seller may set the status on an existing request.
func (s RequestStatus) Updatable() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// PurchaseRequest is a buyer's offer to purchase a product.
type PurchaseRequest struct {
	ID        string        `json:"id"`
	ProductID string        `json:"product_id"`
	BuyerID   string        `json:"buyer_id"`
	SellerID  string        `json:"seller_id"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// PurchaseRequestInput is the payload for creating a purchase request.
type PurchaseRequestInput struct {
	ProductID string `json:"product_id"`
	BuyerID   string `json:"buyer_id"`
	SellerID  string `json:"seller_id"`
}

// StatusUpdate is the body of a purchase request status change.
type StatusUpdate struct {
	Status RequestStatus `json:"status"`
}
