package handler

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/middleware"
	"github.com/joyva20/ecommerce-api/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart HTTP requests. All routes require a buyer
// token; the user always comes from the auth context.
type CartHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.UserService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

type cartRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// Get handles POST /api/cart/get.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	cart, err := h.service.GetCart(r.Context(), userID)
	if err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"cartData": cart})
}

// Add handles POST /api/cart/add.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	var req cartRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if req.ItemID == "" {
		writeFailure(w, http.StatusOK, "Item ID required")
		return
	}

	if err := h.service.AddToCart(r.Context(), userID, req.ItemID, req.Size); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Added To Cart"})
}

// Update handles POST /api/cart/update.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	var req cartRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if req.ItemID == "" {
		writeFailure(w, http.StatusOK, "Item ID required")
		return
	}

	if err := h.service.UpdateCart(r.Context(), userID, req.ItemID, req.Size, req.Quantity); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Cart Updated"})
}
