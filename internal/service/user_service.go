package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/joyva20/ecommerce-api/internal/auth"
	"github.com/joyva20/ecommerce-api/internal/config"
	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// userService implements UserService.
type userService struct {
	users  repository.UserRepository
	tokens *auth.Tokens
	admin  config.AuthConfig
	logger zerolog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	users repository.UserRepository,
	tokens *auth.Tokens,
	authCfg config.AuthConfig,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		admin:  authCfg,
		logger: logger.With().Str("service", "user").Logger(),
	}
}

// Register creates an account and returns a customer token.
func (s *userService) Register(ctx context.Context, req *model.RegisterRequest) (string, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return "", model.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLength {
		return "", model.ErrWeakPassword
	}

	existing, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return "", model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CartData:     model.CartData{},
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID.String()).Msg("user registered")

	return s.tokens.MintUser(user.ID)
}

// Login verifies credentials and returns a customer token.
func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (string, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return "", model.ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", model.ErrInvalidCredentials
	}

	return s.tokens.MintUser(user.ID)
}

// AdminLogin checks the configured back-office account and returns an
// admin token.
func (s *userService) AdminLogin(req *model.LoginRequest) (string, error) {
	if s.admin.AdminEmail == "" ||
		req.Email != s.admin.AdminEmail ||
		req.Password != s.admin.AdminPassword {
		return "", model.ErrInvalidCredentials
	}
	return s.tokens.MintAdmin(req.Email)
}

// ListUsers lists every account for the admin panel and dashboard.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetCart returns the user's cart document.
func (s *userService) GetCart(ctx context.Context, userID uuid.UUID) (model.CartData, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil {
		return nil, model.ErrUserNotFound
	}
	if user.CartData == nil {
		return model.CartData{}, nil
	}
	return user.CartData, nil
}

// AddToCart increments the quantity of an item/size pair.
func (s *userService) AddToCart(ctx context.Context, userID uuid.UUID, itemID, size string) error {
	if size == "" {
		size = model.NoSize
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	cart.Add(itemID, size)

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}

// UpdateCart overwrites the quantity of an item/size pair. Zero removes
// the entry.
func (s *userService) UpdateCart(ctx context.Context, userID uuid.UUID, itemID, size string, quantity int) error {
	if size == "" {
		size = model.NoSize
	}

	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		return err
	}

	cart.Set(itemID, size, quantity)

	if err := s.users.UpdateCart(ctx, userID, cart); err != nil {
		return fmt.Errorf("failed to update cart: %w", err)
	}
	return nil
}
