package service

import (
	"context"
	"fmt"
	"time"

	"github.com/joyva20/ecommerce-api/internal/events"
	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orders repository.OrderRepository
	users  repository.UserRepository
	events events.Publisher
	logger zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders: orders,
		users:  users,
		events: publisher,
		logger: logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder creates a COD order with the fixed default status fields
// and clears the buyer's cart, like the original checkout.
func (s *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *model.PlaceOrderRequest) (*model.Order, error) {
	if err := validatePlaceOrder(req); err != nil {
		return nil, err
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		if item.Size == "" {
			item.Size = model.NoSize
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items[i] = item
	}

	order := &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Items:         items,
		Amount:        req.Amount,
		Address:       req.Address,
		Status:        model.StatusOrderPlaced,
		PaymentMethod: "COD",
		PaymentStatus: model.PaymentNone,
		PlacedAt:      time.Now(),
	}

	if err := s.orders.Create(ctx, order); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to place order")
		return nil, fmt.Errorf("failed to place order: %w", err)
	}

	// Checkout empties the cart; a failure here leaves a stale cart but
	// never a lost order.
	if err := s.users.UpdateCart(ctx, userID, model.CartData{}); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("failed to clear cart after checkout")
	}

	s.events.Publish(events.TypeOrderPlaced, order.ID, events.PlacedPayload{
		UserID:        userID.String(),
		Amount:        order.Amount,
		ItemCount:     len(order.Items),
		PaymentMethod: order.PaymentMethod,
	})

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("user_id", userID.String()).
		Int64("amount", order.Amount).
		Msg("order placed")

	return order, nil
}

// AllOrders lists every order for the admin panel.
func (s *orderService) AllOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UserOrders lists one buyer's orders.
func (s *orderService) UserOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user orders: %w", err)
	}
	return orders, nil
}

// SetStatus validates the literal and writes the canonical status. The
// severity tag is derived on read, so both always move together. No
// transition table is enforced; the admin may move an order between any
// two known statuses, as the original panel allowed.
func (s *orderService) SetStatus(ctx context.Context, orderID uuid.UUID, status model.Status) error {
	if !status.IsValid() {
		return model.ErrInvalidStatus
	}

	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}

	// Paid orders never regress to a cancelled state.
	if order.Paid() && (status == model.StatusCancel || status == model.StatusCancelled) {
		return model.ErrCannotCancelPaid
	}

	updated, err := s.orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	if !updated {
		return model.ErrOrderNotFound
	}

	s.events.Publish(events.TypeOrderStatusChanged, orderID, events.StatusPayload{
		Status:      status,
		StatusState: status.State(),
	})

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(status)).
		Str("status_state", string(status.State())).
		Msg("order status updated")

	return nil
}

// Remove hard-deletes an order.
func (s *orderService) Remove(ctx context.Context, orderID uuid.UUID) error {
	deleted, err := s.orders.DeleteByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !deleted {
		return model.ErrOrderNotFound
	}

	s.events.Publish(events.TypeOrderRemoved, orderID, nil)

	s.logger.Info().Str("order_id", orderID.String()).Msg("order removed")
	return nil
}

func validatePlaceOrder(req *model.PlaceOrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "order request is required")
	}
	if len(req.Items) == 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order must contain at least one item")
	}
	if req.Amount <= 0 {
		return model.NewDomainError(model.ErrCodeMissingField, "order amount must be positive")
	}
	if req.Address.Street == "" || req.Address.City == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "shipping address is required")
	}
	return nil
}
