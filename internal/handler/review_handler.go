package handler

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/middleware"
	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ReviewHandler handles product review HTTP requests.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("handler", "review").Logger(),
	}
}

// Add handles POST /api/review/add.
func (h *ReviewHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	var req model.CreateReviewRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.ProductID == uuid.Nil {
		writeFailure(w, http.StatusBadRequest, "Product ID required")
		return
	}

	review, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusCreated, envelope{
		"message": "Review submitted successfully",
		"review":  review,
	})
}

// Product handles GET /api/review/product/{productId}.
func (h *ReviewHandler) Product(w http.ResponseWriter, r *http.Request) {
	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}

	reviews, err := h.service.ProductReviews(r.Context(), productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}
	if reviews == nil {
		reviews = []model.Review{}
	}

	writeSuccess(w, http.StatusOK, envelope{"reviews": reviews})
}

// Check handles GET /api/review/check/{productId}: has the current user
// already reviewed this product?
func (h *ReviewHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid product id")
		return
	}

	review, err := h.service.UserReview(r.Context(), userID, productID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"hasReviewed": review != nil,
		"review":      review,
	})
}
