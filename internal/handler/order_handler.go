package handler

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/middleware"
	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Place handles POST /api/order/place. The buyer comes from the auth
// context, never from the body.
func (h *OrderHandler) Place(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	var req model.PlaceOrderRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	if _, err := h.service.PlaceOrder(r.Context(), userID, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Order Placed"})
}

// List handles POST /api/order/list (admin).
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.AllOrders(r.Context())
	if err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeSuccess(w, http.StatusOK, envelope{"orders": orders})
}

// UserOrders handles POST /api/order/userorders.
func (h *OrderHandler) UserOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFrom(r.Context())
	if !ok {
		writeFailure(w, http.StatusUnauthorized, "Not Authorized Login Again")
		return
	}

	orders, err := h.service.UserOrders(r.Context(), userID)
	if err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}

	writeSuccess(w, http.StatusOK, envelope{"orders": orders})
}

// Status handles POST /api/order/status (admin). A statusState in the
// body is accepted and ignored; the severity is derived server-side.
func (h *OrderHandler) Status(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateStatusRequest
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if req.OrderID == uuid.Nil {
		writeFailure(w, http.StatusOK, "Order ID required")
		return
	}

	if err := h.service.SetStatus(r.Context(), req.OrderID, req.Status); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Status Updated"})
}

// Remove handles POST /api/order/remove (admin).
func (h *OrderHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID uuid.UUID `json:"id"`
	}
	if err := decode(r, &req); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}
	if req.ID == uuid.Nil {
		writeFailure(w, http.StatusOK, "Order ID required")
		return
	}

	if err := h.service.Remove(r.Context(), req.ID); err != nil {
		writeSoftError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Order deleted"})
}
