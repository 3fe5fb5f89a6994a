package service

import (
	"context"
	"fmt"
	"time"

	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// reviewService implements ReviewService.
type reviewService struct {
	reviews repository.ReviewRepository
	logger  zerolog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(reviews repository.ReviewRepository, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviews: reviews,
		logger:  logger.With().Str("service", "review").Logger(),
	}
}

// Create stores a review, enforcing one per user/product/order.
func (s *reviewService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateReviewRequest) (*model.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, model.ErrInvalidRating
	}

	existing, err := s.reviews.Find(ctx, userID, req.ProductID, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing review: %w", err)
	}
	if existing != nil {
		return nil, model.ErrReviewExists
	}

	review := &model.Review{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.logger.Info().
		Str("review_id", review.ID.String()).
		Str("product_id", req.ProductID.String()).
		Int("rating", req.Rating).
		Msg("review submitted")

	return review, nil
}

// ProductReviews lists a product's reviews, newest first.
func (s *reviewService) ProductReviews(ctx context.Context, productID uuid.UUID) ([]model.Review, error) {
	reviews, err := s.reviews.GetByProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// UserReview returns the review the user wrote for a product, if any.
func (s *reviewService) UserReview(ctx context.Context, userID, productID uuid.UUID) (*model.Review, error) {
	review, err := s.reviews.Find(ctx, userID, productID, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("failed to look up review: %w", err)
	}
	return review, nil
}
