package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements OrderRepository using PostgreSQL. Items and
// address are stored as JSONB snapshots.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, user_id, items, amount, address, status, payment_method,
	payment_status, gateway_order_id, snap_token, transaction_status,
	fraud_status, payment_type, paid_at, expired_at, placed_at
`

// Create inserts a new order.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	address, err := json.Marshal(order.Address)
	if err != nil {
		return fmt.Errorf("failed to marshal order address: %w", err)
	}

	query := `
		INSERT INTO orders (id, user_id, items, amount, address, status,
			payment_method, payment_status, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err = r.pool.Exec(ctx, query,
		order.ID, order.UserID, items, order.Amount, address,
		order.Status, order.PaymentMethod, order.PaymentStatus, order.PlacedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// GetByGatewayOrderID retrieves an order by its gateway correlation id.
func (r *orderRepository) GetByGatewayOrderID(ctx context.Context, gatewayOrderID string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE gateway_order_id = $1`
	return r.queryOne(ctx, query, gatewayOrderID)
}

// GetAll retrieves every order, newest first.
func (r *orderRepository) GetAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY placed_at DESC`
	return r.queryMany(ctx, query)
}

// GetByUser retrieves all orders placed by one user, newest first.
func (r *orderRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY placed_at DESC`
	return r.queryMany(ctx, query, userID)
}

// DeleteByID hard-deletes an order.
func (r *orderRepository) DeleteByID(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateStatus writes the canonical status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.Status) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Str("status", string(status)).
			Msg("failed to update order status")
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePayment applies a partial payment-field merge using COALESCE so
// nil fields keep their stored value.
func (r *orderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, upd PaymentUpdate) error {
	query := `
		UPDATE orders SET
			status             = COALESCE($2, status),
			payment_status     = COALESCE($3, payment_status),
			gateway_order_id   = COALESCE($4, gateway_order_id),
			snap_token         = COALESCE($5, snap_token),
			transaction_status = COALESCE($6, transaction_status),
			fraud_status       = COALESCE($7, fraud_status),
			payment_type       = COALESCE($8, payment_type),
			paid_at            = COALESCE($9, paid_at),
			expired_at         = COALESCE($10, expired_at)
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query, id,
		upd.Status, upd.PaymentStatus, upd.GatewayOrderID, upd.SnapToken,
		upd.TransactionStatus, upd.FraudStatus, upd.PaymentType,
		upd.PaidAt, upd.ExpiredAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", id.String()).
			Msg("failed to update order payment fields")
		return fmt.Errorf("failed to update order payment fields: %w", err)
	}
	return nil
}

func (r *orderRepository) queryOne(ctx context.Context, query string, arg any) (*model.Order, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) queryMany(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// scanOrder hydrates one order row, unmarshalling the JSONB snapshots.
// Legacy item documents with the misspelled quantity key are normalized
// by the model's unmarshaller.
func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		order          model.Order
		items, address []byte
		gatewayOrderID *string
		snapToken      *string
		trxStatus      *string
		fraudStatus    *string
		paymentType    *string
	)

	err := row.Scan(
		&order.ID, &order.UserID, &items, &order.Amount, &address,
		&order.Status, &order.PaymentMethod, &order.PaymentStatus,
		&gatewayOrderID, &snapToken, &trxStatus, &fraudStatus,
		&paymentType, &order.PaidAt, &order.ExpiredAt, &order.PlacedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
	}
	if err := json.Unmarshal(address, &order.Address); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order address: %w", err)
	}

	if gatewayOrderID != nil {
		order.GatewayOrderID = *gatewayOrderID
	}
	if snapToken != nil {
		order.SnapToken = *snapToken
	}
	if trxStatus != nil {
		order.TransactionStatus = *trxStatus
	}
	if fraudStatus != nil {
		order.FraudStatus = *fraudStatus
	}
	if paymentType != nil {
		order.PaymentType = *paymentType
	}

	return &order, nil
}
