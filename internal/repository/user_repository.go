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

// userRepository implements UserRepository using PostgreSQL. The cart is
// a JSONB document on the user row, mirroring the original nested map.
type userRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool, logger zerolog.Logger) UserRepository {
	return &userRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "user").Logger(),
	}
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	cart := user.CartData
	if cart == nil {
		cart = model.CartData{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart data: %w", err)
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, cart_data, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.pool.Exec(ctx, query,
		user.ID, user.Name, user.Email, user.PasswordHash, cartJSON, user.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("email", user.Email).Msg("failed to create user")
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by id. Returns nil when not found.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, cart_data, created_at
		FROM users WHERE id = $1
	`
	return r.queryOne(ctx, query, id)
}

// GetByEmail retrieves a user by email. Returns nil when not found.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, name, email, password_hash, cart_data, created_at
		FROM users WHERE email = $1
	`
	return r.queryOne(ctx, query, email)
}

// GetAll lists every user. Password hashes are never selected.
func (r *userRepository) GetAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, name, email, created_at FROM users ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query users")
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan user row")
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating user rows")
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

// UpdateCart overwrites the user's cart document.
func (r *userRepository) UpdateCart(ctx context.Context, id uuid.UUID, cart model.CartData) error {
	if cart == nil {
		cart = model.CartData{}
	}
	cartJSON, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart data: %w", err)
	}

	_, err = r.pool.Exec(ctx, `UPDATE users SET cart_data = $2 WHERE id = $1`, id, cartJSON)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", id.String()).Msg("failed to update cart")
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

func (r *userRepository) queryOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var (
		user model.User
		cart []byte
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.PasswordHash, &cart, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to query user")
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	if err := json.Unmarshal(cart, &user.CartData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart data: %w", err)
	}

	return &user, nil
}
