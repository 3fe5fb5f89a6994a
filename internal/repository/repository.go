package repository

import (
	"context"
	"time"

	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/google/uuid"
)

// PaymentUpdate is a partial field merge applied to an order by the
// payment gateway adapter. Nil fields are left untouched. There is no
// optimistic locking; concurrent webhook and admin writes are
// last-write-wins.
type PaymentUpdate struct {
	Status            *model.Status
	PaymentStatus     *model.PaymentStatus
	GatewayOrderID    *string
	SnapToken         *string
	TransactionStatus *string
	FraudStatus       *string
	PaymentType       *string
	PaidAt            *time.Time
	ExpiredAt         *time.Time
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// Create inserts a new order.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil when not found.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByGatewayOrderID retrieves an order by its gateway correlation
	// id. Returns nil when not found.
	GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error)

	// GetAll retrieves every order, newest first.
	GetAll(ctx context.Context) ([]model.Order, error)

	// GetByUser retrieves all orders placed by one user, newest first.
	GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// DeleteByID hard-deletes an order. Reports whether a row existed.
	DeleteByID(ctx context.Context, id uuid.UUID) (bool, error)

	// UpdateStatus writes the canonical status. Reports whether a row
	// existed.
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (bool, error)

	// UpdatePayment applies a partial payment-field merge.
	UpdatePayment(ctx context.Context, id uuid.UUID, upd PaymentUpdate) error
}

// ProductRepository defines the interface for product data access
// operations. Read-only from this core's perspective.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]model.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetAll lists every user without password hashes.
	GetAll(ctx context.Context) ([]model.User, error)
	UpdateCart(ctx context.Context, id uuid.UUID, cart model.CartData) error
}

// ReviewRepository defines the interface for review data access
// operations.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	// GetByProduct lists a product's reviews, newest first, with the
	// reviewer's name joined in.
	GetByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error)
	// Find returns the review a user wrote for a product, optionally
	// scoped to one order (zero orderID matches any order). Nil when
	// absent.
	Find(ctx context.Context, userID, productID, orderID uuid.UUID) (*model.Review, error)
}
