package service

import (
	"context"

	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/google/uuid"
)

// OrderService owns the order lifecycle outside of gateway-driven
// payment transitions (those live in the payment adapter).
type OrderService interface {
	// PlaceOrder creates a COD order for the authenticated buyer and
	// clears their cart.
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error)

	// AllOrders lists every order for the admin panel.
	AllOrders(ctx context.Context) ([]model.Order, error)

	// UserOrders lists the authenticated buyer's orders.
	UserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// SetStatus applies an admin status transition. Any known status is
	// accepted from any prior status; the one exception is that paid
	// orders refuse cancellation.
	SetStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error

	// Remove hard-deletes an order.
	Remove(ctx context.Context, orderID uuid.UUID) error
}

// ProductService exposes the read-only catalogue.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Single(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// UserService owns accounts, authentication tokens and the cart.
type UserService interface {
	Register(ctx context.Context, req *model.RegisterRequest) (string, error)
	Login(ctx context.Context, req *model.LoginRequest) (string, error)
	AdminLogin(req *model.LoginRequest) (string, error)
	ListUsers(ctx context.Context) ([]model.User, error)

	GetCart(ctx context.Context, userID uuid.UUID) (model.CartData, error)
	AddToCart(ctx context.Context, userID uuid.UUID, itemID, size string) error
	UpdateCart(ctx context.Context, userID uuid.UUID, itemID, size string, quantity int) error
}

// ReviewService owns product reviews.
type ReviewService interface {
	Create(ctx context.Context, userID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error)
	ProductReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	// UserReview returns the review the user wrote for a product across
	// any order, or nil.
	UserReview(ctx context.Context, userID, productID uuid.UUID) (*model.Review, error)
}
