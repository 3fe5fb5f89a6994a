package model

import (
	"time"

	"github.com/google/uuid"
)

// Review is a product review tied to the order it was purchased in.
// A user may review a product at most once per order.
type Review struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userID"`
	ProductID uuid.UUID `json:"productId"`
	OrderID   uuid.UUID `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`

	// UserName is joined in for display, never stored on the review row.
	UserName string `json:"userName,omitempty"`
}

// CreateReviewRequest is the body of POST /api/review/add.
type CreateReviewRequest struct {
	ProductID uuid.UUID `json:"productId"`
	OrderID   uuid.UUID `json:"orderId"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
}
