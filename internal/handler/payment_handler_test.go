package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/payment"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPaymentHandlerCreateTransaction(t *testing.T) {
	orderID := uuid.New()
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("CreateTransaction", mock.Anything, orderID).Return(&payment.TransactionResult{
		Token:         "snap-token",
		RedirectURL:   "https://gateway/redirect",
		OrderID:       orderID,
		TransactionID: "ORDER-" + orderID.String() + "-1",
	}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-transaction",
		strings.NewReader(`{"orderId":"`+orderID.String()+`"}`))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	assert.Equal(t, true, out["success"])
	assert.Equal(t, "snap-token", out["token"])
	assert.Equal(t, "https://gateway/redirect", out["redirect_url"])
}

func TestPaymentHandlerCreateTransactionMissingOrderID(t *testing.T) {
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-transaction", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestPaymentHandlerCreateTransactionAlreadyPaid(t *testing.T) {
	orderID := uuid.New()
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("CreateTransaction", mock.Anything, orderID).Return(nil, model.ErrAlreadyPaid)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/create-transaction",
		strings.NewReader(`{"orderId":"`+orderID.String()+`"}`))
	rec := httptest.NewRecorder()
	h.CreateTransaction(rec, req)

	// Payment endpoints use real status codes, unlike the order routes.
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "Order already paid", out["message"])
}

func TestPaymentHandlerNotification(t *testing.T) {
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("HandleNotification", mock.Anything, mock.AnythingOfType("*payment.Notification")).Return(nil)

	body := `{"order_id":"gw-1","status_code":"200","gross_amount":"350.00","signature_key":"sig","transaction_status":"settlement","fraud_status":"accept"}`
	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Notification(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	assert.Equal(t, "Notification processed", out["message"])

	n := svc.Calls[0].Arguments.Get(1).(*payment.Notification)
	assert.Equal(t, "gw-1", n.OrderID)
	assert.Equal(t, "settlement", n.TransactionStatus)
}

func TestPaymentHandlerNotificationForged(t *testing.T) {
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("HandleNotification", mock.Anything, mock.AnythingOfType("*payment.Notification")).
		Return(model.ErrInvalidSignature)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification",
		strings.NewReader(`{"order_id":"gw-1","signature_key":"forged"}`))
	rec := httptest.NewRecorder()
	h.Notification(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	assert.Equal(t, "Invalid signature", out["message"])
}

func TestPaymentHandlerNotificationUnknownOrder(t *testing.T) {
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("HandleNotification", mock.Anything, mock.AnythingOfType("*payment.Notification")).
		Return(model.ErrOrderNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/notification",
		strings.NewReader(`{"order_id":"gw-unknown"}`))
	rec := httptest.NewRecorder()
	h.Notification(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPaymentHandlerStatus(t *testing.T) {
	orderID := uuid.New()
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("CheckStatus", mock.Anything, orderID).Return(&payment.StatusView{
		OrderID:           orderID,
		PaymentStatus:     model.PaymentPaid,
		TransactionStatus: "settlement",
	}, nil)

	r := chi.NewRouter()
	r.Get("/api/payment/status/{orderId}", h.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/"+orderID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	order := out["order"].(map[string]any)
	assert.Equal(t, "paid", order["paymentStatus"])
	assert.Equal(t, "settlement", order["transactionStatus"])
}

func TestPaymentHandlerStatusInvalidID(t *testing.T) {
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	r := chi.NewRouter()
	r.Get("/api/payment/status/{orderId}", h.Status)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CheckStatus", mock.Anything, mock.Anything)
}

func TestPaymentHandlerCancel(t *testing.T) {
	orderID := uuid.New()
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("Cancel", mock.Anything, orderID).Return(nil)

	r := chi.NewRouter()
	r.Post("/api/payment/cancel/{orderId}", h.Cancel)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/cancel/"+orderID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	assert.Equal(t, "Payment cancelled", out["message"])
}

func TestPaymentHandlerCancelPaidOrder(t *testing.T) {
	orderID := uuid.New()
	svc := new(MockPaymentService)
	h := NewPaymentHandler(svc, zerolog.Nop())

	svc.On("Cancel", mock.Anything, orderID).Return(model.ErrCannotCancelPaid)

	r := chi.NewRouter()
	r.Post("/api/payment/cancel/{orderId}", h.Cancel)

	req := httptest.NewRequest(http.MethodPost, "/api/payment/cancel/"+orderID.String(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decodeBody(rec.Body.Bytes())
	assert.Equal(t, "Cannot cancel paid order", out["message"])
}
