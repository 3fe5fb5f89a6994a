package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/joyva20/ecommerce-api/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// reviewRepository implements ReviewRepository using PostgreSQL.
type reviewRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewReviewRepository creates a new PostgreSQL-backed review repository.
func NewReviewRepository(pool *pgxpool.Pool, logger zerolog.Logger) ReviewRepository {
	return &reviewRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "review").Logger(),
	}
}

// Create inserts a new review.
func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, product_id, order_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		review.ID, review.UserID, review.ProductID, review.OrderID,
		review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("product_id", review.ProductID.String()).
			Msg("failed to create review")
		return fmt.Errorf("failed to create review: %w", err)
	}

	return nil
}

// GetByProduct lists a product's reviews with the reviewer name joined.
func (r *reviewRepository) GetByProduct(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	query := `
		SELECT rv.id, rv.user_id, rv.product_id, rv.order_id, rv.rating,
			rv.comment, rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query reviews")
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []model.Review
	for rows.Next() {
		var rv model.Review
		err := rows.Scan(&rv.ID, &rv.UserID, &rv.ProductID, &rv.OrderID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan review row")
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating review rows")
		return nil, fmt.Errorf("error iterating reviews: %w", err)
	}

	return reviews, nil
}

// Find returns the review a user wrote for a product. A zero orderID
// matches any order.
func (r *reviewRepository) Find(ctx context.Context, userID, productID, orderID uuid.UUID) (*model.Review, error) {
	query := `
		SELECT rv.id, rv.user_id, rv.product_id, rv.order_id, rv.rating,
			rv.comment, rv.created_at, u.name
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.user_id = $1 AND rv.product_id = $2
			AND ($3::uuid = '00000000-0000-0000-0000-000000000000' OR rv.order_id = $3)
		LIMIT 1
	`

	var rv model.Review
	err := r.pool.QueryRow(ctx, query, userID, productID, orderID).Scan(
		&rv.ID, &rv.UserID, &rv.ProductID, &rv.OrderID,
		&rv.Rating, &rv.Comment, &rv.CreatedAt, &rv.UserName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query review")
		return nil, fmt.Errorf("failed to query review: %w", err)
	}

	return &rv, nil
}
