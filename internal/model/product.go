package model

import "time"

// Product represents a listing in the campus marketplace.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Images      []string  `json:"images"`
	Condition   string    `json:"condition"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	SellerID    string    `json:"seller_id"`
	CollegeID   string    `json:"college_id,omitempty"`
	PostedAt    time.Time `json:"posted_at"`
}

// ProductInput is the payload for creating a listing. The backend assigns
// the id and posted time.
type ProductInput struct {
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	Condition   string   `json:"condition,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	SellerID    string   `json:"seller_id,omitempty"`
}

// ProductPatch is a partial update; nil fields are left unchanged.
type ProductPatch struct {
	Title       *string   `json:"title,omitempty"`
	Price       *float64  `json:"price,omitempty"`
	Description *string   `json:"description,omitempty"`
	Images      *[]string `json:"images,omitempty"`
	Condition   *string   `json:"condition,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Status      *string   `json:"status,omitempty"`
}
