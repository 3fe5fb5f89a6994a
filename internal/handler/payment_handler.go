package handler

import (
	"net/http"

	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PaymentHandler handles payment gateway HTTP requests.
type PaymentHandler struct {
	service payment.Service
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service payment.Service, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// CreateTransaction handles POST /api/payment/create-transaction.
func (h *PaymentHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		OrderID uuid.UUID `json:"orderId"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, err, h.logger)
		return
	}
	if req.OrderID == uuid.Nil {
		writeFailure(w, http.StatusBadRequest, "Order ID required")
		return
	}

	result, err := h.service.CreateTransaction(r.Context(), req.OrderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{
		"token":         result.Token,
		"redirect_url":  result.RedirectURL,
		"orderId":       result.OrderID,
		"transactionId": result.TransactionID,
	})
}

// Notification handles POST /api/payment/notification, the gateway's
// webhook. No auth; the payload carries its own signature.
func (h *PaymentHandler) Notification(w http.ResponseWriter, r *http.Request) {
	var n payment.Notification
	if err := decode(r, &n); err != nil {
		writeError(w, err, h.logger)
		return
	}

	if err := h.service.HandleNotification(r.Context(), &n); err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Notification processed"})
}

// Status handles GET /api/payment/status/{orderId}.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid order id")
		return
	}

	view, err := h.service.CheckStatus(r.Context(), orderID)
	if err != nil {
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"order": view})
}

// Cancel handles POST /api/payment/cancel/{orderId}.
func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.service.Cancel(r.Context(), orderID); err != nil {
		// Preserve the original API's message for paid orders.
		if err == model.ErrCannotCancelPaid {
			writeFailure(w, http.StatusBadRequest, model.ErrCannotCancelPaid.Message)
			return
		}
		writeError(w, err, h.logger)
		return
	}

	writeSuccess(w, http.StatusOK, envelope{"message": "Payment cancelled"})
}
