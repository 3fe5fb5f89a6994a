package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/joyva20/ecommerce-api/internal/config"
	"github.com/joyva20/ecommerce-api/internal/events"
	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// fullInstrumentList is offered when the order's payment method does not
// restrict the gateway to specific instruments.
var fullInstrumentList = []string{
	"credit_card", "bca_va", "bni_va", "bri_va", "gopay", "dana", "shopeepay", "qris",
}

// EnabledPayments maps the order's chosen payment method onto the
// gateway instruments it may present.
func EnabledPayments(paymentMethod string) []string {
	switch paymentMethod {
	case "QRIS":
		return []string{"gopay", "qris"}
	case "DANA":
		return []string{"dana"}
	case "GOPAY":
		return []string{"gopay"}
	case "SHOPEEPAY":
		return []string{"shopeepay"}
	default:
		return fullInstrumentList
	}
}

// TransactionResult is returned to the storefront after a gateway
// transaction is created.
type TransactionResult struct {
	Token         string    `json:"token"`
	RedirectURL   string    `json:"redirect_url"`
	OrderID       uuid.UUID `json:"orderId"`
	TransactionID string    `json:"transactionId"`
}

// StatusView is the payment slice of an order exposed by the status
// endpoint.
type StatusView struct {
	OrderID           uuid.UUID           `json:"id"`
	PaymentStatus     model.PaymentStatus `json:"paymentStatus"`
	TransactionStatus string              `json:"transactionStatus,omitempty"`
	FraudStatus       string              `json:"fraudStatus,omitempty"`
	PaymentType       string              `json:"paymentType,omitempty"`
	PaidAt            *time.Time          `json:"paidAt,omitempty"`
	ExpiredAt         *time.Time          `json:"expiredAt,omitempty"`
}

// Service bridges the order store and the external payment gateway.
type Service interface {
	CreateTransaction(ctx context.Context, orderID uuid.UUID) (*TransactionResult, error)
	HandleNotification(ctx context.Context, n *Notification) error
	CheckStatus(ctx context.Context, orderID uuid.UUID) (*StatusView, error)
	Cancel(ctx context.Context, orderID uuid.UUID) error
}

type service struct {
	orders  repository.OrderRepository
	users   repository.UserRepository
	gateway Client
	events  events.Publisher
	cfg     config.GatewayConfig
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates the payment gateway adapter.
func NewService(
	orders repository.OrderRepository,
	users repository.UserRepository,
	gateway Client,
	publisher events.Publisher,
	cfg config.GatewayConfig,
	logger zerolog.Logger,
) Service {
	return &service{
		orders:  orders,
		users:   users,
		gateway: gateway,
		events:  publisher,
		cfg:     cfg,
		logger:  logger.With().Str("service", "payment").Logger(),
		now:     time.Now,
	}
}

// CreateTransaction registers a gateway transaction for an order and
// persists the correlation fields. Fails closed when the order is
// already paid.
func (s *service) CreateTransaction(ctx context.Context, orderID uuid.UUID) (*TransactionResult, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	if order.Paid() {
		return nil, model.ErrAlreadyPaid
	}

	user, err := s.users.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load buyer: %w", err)
	}

	customer := CustomerDetails{
		FirstName: order.Address.FirstName,
		Email:     order.Address.Email,
	}
	if user != nil {
		customer.FirstName = user.Name
		customer.Email = user.Email
	}
	customer.BillingAddress = &BillingAddress{
		FirstName:   customer.FirstName,
		Email:       customer.Email,
		Address:     order.Address.Street,
		City:        order.Address.City,
		PostalCode:  order.Address.Zipcode,
		CountryCode: "IDN",
	}

	items := make([]ItemDetail, len(order.Items))
	for i, item := range order.Items {
		quantity := item.Quantity
		if quantity < 1 {
			quantity = 1
		}
		items[i] = ItemDetail{
			ID:       item.ProductID,
			Price:    item.Price,
			Quantity: quantity,
			Name:     item.Name,
		}
	}

	// Shipping is currently free; gross amount equals the order total.
	grossAmount := order.Amount

	now := s.now()
	transactionID := fmt.Sprintf("ORDER-%s-%d", order.ID, now.UnixMilli())

	snapReq := &SnapRequest{
		TransactionDetails: TransactionDetails{
			OrderID:     transactionID,
			GrossAmount: grossAmount,
		},
		CreditCard:      CreditCard{Secure: true},
		ItemDetails:     items,
		CustomerDetails: customer,
		EnabledPayments: EnabledPayments(order.PaymentMethod),
		Callbacks: Callbacks{
			Finish:  s.cfg.FrontendURL + "/payment/finish",
			Error:   s.cfg.FrontendURL + "/payment/error",
			Pending: s.cfg.FrontendURL + "/payment/pending",
		},
		Expiry: Expiry{
			StartTime: now.UTC().Format(time.RFC3339),
			Unit:      "minutes",
			Duration:  s.cfg.ExpiryMinutes,
		},
	}

	snapResp, err := s.gateway.CreateTransaction(ctx, snapReq)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("gateway transaction creation failed")
		return nil, fmt.Errorf("failed to create gateway transaction: %w", err)
	}

	pending := model.PaymentPending
	expiredAt := now.Add(time.Duration(s.cfg.ExpiryMinutes) * time.Minute)
	upd := repository.PaymentUpdate{
		PaymentStatus:  &pending,
		GatewayOrderID: &transactionID,
		SnapToken:      &snapResp.Token,
		ExpiredAt:      &expiredAt,
	}
	if err := s.orders.UpdatePayment(ctx, order.ID, upd); err != nil {
		return nil, fmt.Errorf("failed to persist gateway transaction: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("gateway_order_id", transactionID).
		Int64("gross_amount", grossAmount).
		Msg("gateway transaction created")

	return &TransactionResult{
		Token:         snapResp.Token,
		RedirectURL:   snapResp.RedirectURL,
		OrderID:       order.ID,
		TransactionID: transactionID,
	}, nil
}

// HandleNotification processes the gateway's asynchronous webhook. It is
// idempotent: the field mapping is a pure function of the payload, so
// redelivery produces the same end state.
func (s *service) HandleNotification(ctx context.Context, n *Notification) error {
	if !n.VerifySignature(s.cfg.ServerKey) {
		s.logger.Warn().
			Str("gateway_order_id", n.OrderID).
			Str("transaction_status", n.TransactionStatus).
			Msg("webhook signature mismatch, possible forgery attempt")
		return model.ErrInvalidSignature
	}

	order, err := s.orders.GetByGatewayOrderID(ctx, n.OrderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		s.logger.Warn().Str("gateway_order_id", n.OrderID).Msg("notification for unknown order")
		return model.ErrOrderNotFound
	}

	upd, outcome := s.mapGatewayStatus(order, n)
	if err := s.orders.UpdatePayment(ctx, order.ID, upd); err != nil {
		return fmt.Errorf("failed to apply notification: %w", err)
	}

	s.publishOutcome(order.ID, outcome)

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("transaction_status", n.TransactionStatus).
		Str("fraud_status", n.FraudStatus).
		Msg("gateway notification processed")

	return nil
}

// CheckStatus re-queries the gateway on demand and applies the
// settlement mapping. A gateway failure leaves the order's last known
// state untouched.
func (s *service) CheckStatus(ctx context.Context, orderID uuid.UUID) (*StatusView, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if order.GatewayOrderID != "" {
		status, err := s.gateway.TransactionStatus(ctx, order.GatewayOrderID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("gateway status check failed, keeping last known state")
		} else {
			upd, outcome := s.mapGatewayStatus(order, status)
			if err := s.orders.UpdatePayment(ctx, order.ID, upd); err != nil {
				return nil, fmt.Errorf("failed to apply gateway status: %w", err)
			}
			applyUpdateToOrder(order, upd)
			s.publishOutcome(order.ID, outcome)
		}
	}

	return &StatusView{
		OrderID:           order.ID,
		PaymentStatus:     order.PaymentStatus,
		TransactionStatus: order.TransactionStatus,
		FraudStatus:       order.FraudStatus,
		PaymentType:       order.PaymentType,
		PaidAt:            order.PaidAt,
		ExpiredAt:         order.ExpiredAt,
	}, nil
}

// Cancel rejects cancellation of paid orders, best-effort cancels the
// gateway transaction, and unconditionally marks the local order
// cancelled.
func (s *service) Cancel(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}
	if order.Paid() {
		return model.ErrCannotCancelPaid
	}

	if order.GatewayOrderID != "" {
		if err := s.gateway.CancelTransaction(ctx, order.GatewayOrderID); err != nil {
			s.logger.Warn().
				Err(err).
				Str("order_id", order.ID.String()).
				Msg("gateway cancel failed, cancelling locally anyway")
		}
	}

	cancelled := model.PaymentCancelled
	status := model.StatusCancelled
	upd := repository.PaymentUpdate{
		PaymentStatus: &cancelled,
		Status:        &status,
	}
	if err := s.orders.UpdatePayment(ctx, order.ID, upd); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	s.events.Publish(events.TypeOrderCancelled, order.ID, events.StatusPayload{
		Status:        status,
		StatusState:   status.State(),
		PaymentStatus: cancelled,
	})

	s.logger.Info().Str("order_id", order.ID.String()).Msg("payment cancelled")
	return nil
}

// outcome classifies a mapping result for event publishing.
type outcome int

const (
	outcomeNone outcome = iota
	outcomeSettled
	outcomeFailed
)

// mapGatewayStatus maps the gateway's transaction status vocabulary onto
// order fields. The raw gateway values are always echoed; the status
// fields only move for the recognized vocabulary. A paid order never
// regresses to a failure state.
func (s *service) mapGatewayStatus(order *model.Order, n *Notification) (repository.PaymentUpdate, outcome) {
	upd := repository.PaymentUpdate{
		TransactionStatus: &n.TransactionStatus,
		FraudStatus:       &n.FraudStatus,
		PaymentType:       &n.PaymentType,
	}

	switch n.TransactionStatus {
	case "capture", "settlement":
		// The status endpoint omits fraud_status for some instruments;
		// absence counts as accepted, like the original.
		if n.FraudStatus == "accept" || n.FraudStatus == "" {
			paid := model.PaymentPaid
			status := model.StatusPaid
			paidAt := s.now()
			upd.PaymentStatus = &paid
			upd.Status = &status
			upd.PaidAt = &paidAt
			return upd, outcomeSettled
		}
	case "pending":
		pending := model.PaymentPending
		status := model.StatusAwaitingPayment
		upd.PaymentStatus = &pending
		upd.Status = &status
	case "deny", "cancel", "expire":
		if order.Paid() {
			// Paid orders must not regress; keep the echo fields only.
			s.logger.Warn().
				Str("order_id", order.ID.String()).
				Str("transaction_status", n.TransactionStatus).
				Msg("ignoring failure notification for paid order")
			return upd, outcomeNone
		}
		failed := model.PaymentFailed
		status := model.StatusPaymentFailed
		upd.PaymentStatus = &failed
		upd.Status = &status
		return upd, outcomeFailed
	}

	return upd, outcomeNone
}

func (s *service) publishOutcome(orderID uuid.UUID, o outcome) {
	switch o {
	case outcomeSettled:
		s.events.Publish(events.TypePaymentSettled, orderID, events.StatusPayload{
			Status:        model.StatusPaid,
			StatusState:   model.StatusPaid.State(),
			PaymentStatus: model.PaymentPaid,
		})
	case outcomeFailed:
		s.events.Publish(events.TypePaymentFailed, orderID, events.StatusPayload{
			Status:        model.StatusPaymentFailed,
			StatusState:   model.StatusPaymentFailed.State(),
			PaymentStatus: model.PaymentFailed,
		})
	}
}

// applyUpdateToOrder mirrors a persisted partial update onto the
// in-memory order so the response reflects what was written.
func applyUpdateToOrder(order *model.Order, upd repository.PaymentUpdate) {
	if upd.Status != nil {
		order.Status = *upd.Status
	}
	if upd.PaymentStatus != nil {
		order.PaymentStatus = *upd.PaymentStatus
	}
	if upd.TransactionStatus != nil {
		order.TransactionStatus = *upd.TransactionStatus
	}
	if upd.FraudStatus != nil {
		order.FraudStatus = *upd.FraudStatus
	}
	if upd.PaymentType != nil {
		order.PaymentType = *upd.PaymentType
	}
	if upd.PaidAt != nil {
		order.PaidAt = upd.PaidAt
	}
	if upd.ExpiredAt != nil {
		order.ExpiredAt = upd.ExpiredAt
	}
}
