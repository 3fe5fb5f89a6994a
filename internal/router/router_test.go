package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/joyva20/ecommerce-api/internal/auth"
	"github.com/joyva20/ecommerce-api/internal/handler"
	"github.com/joyva20/ecommerce-api/internal/payment"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPaymentService struct {
	mock.Mock
}

func (m *mockPaymentService) CreateTransaction(ctx context.Context, orderID uuid.UUID) (*payment.TransactionResult, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.TransactionResult), args.Error(1)
}

func (m *mockPaymentService) HandleNotification(ctx context.Context, n *payment.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockPaymentService) CheckStatus(ctx context.Context, orderID uuid.UUID) (*payment.StatusView, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.StatusView), args.Error(1)
}

func (m *mockPaymentService) Cancel(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

// newTestRouter mounts the full route tree with only the payment service
// backed by a mock. The other handlers never run in these tests; auth
// middleware rejects the requests before any handler is reached.
func newTestRouter(payments payment.Service) (http.Handler, *auth.Tokens) {
	tokens := auth.NewTokens("test-secret", time.Hour)
	h := Handlers{
		Product:   handler.NewProductHandler(nil, zerolog.Nop()),
		Order:     handler.NewOrderHandler(nil, zerolog.Nop()),
		Payment:   handler.NewPaymentHandler(payments, zerolog.Nop()),
		User:      handler.NewUserHandler(nil, zerolog.Nop()),
		Cart:      handler.NewCartHandler(nil, zerolog.Nop()),
		Review:    handler.NewReviewHandler(nil, zerolog.Nop()),
		Dashboard: handler.NewDashboardHandler(nil, zerolog.Nop()),
		Recommend: handler.NewRecommendHandler(nil, zerolog.Nop()),
	}
	return New(h, tokens, zerolog.Nop()), tokens
}

func TestPaymentStatusRequiresUserAuth(t *testing.T) {
	svc := new(mockPaymentService)
	r, _ := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, false, out["success"])
	svc.AssertNotCalled(t, "CheckStatus", mock.Anything, mock.Anything)
}

func TestPaymentStatusWithUserToken(t *testing.T) {
	orderID := uuid.New()
	svc := new(mockPaymentService)
	r, tokens := newTestRouter(svc)

	svc.On("CheckStatus", mock.Anything, orderID).Return(&payment.StatusView{
		OrderID:           orderID,
		TransactionStatus: "pending",
	}, nil)

	token, err := tokens.MintUser(uuid.New())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/payment/status/"+orderID.String(), nil)
	req.Header.Set("token", token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	svc.AssertExpectations(t)
}

func TestPaymentRouteAuthPlacement(t *testing.T) {
	svc := new(mockPaymentService)
	svc.On("HandleNotification", mock.Anything, mock.Anything).Return(nil)
	r, _ := newTestRouter(svc)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create transaction rejects anonymous", http.MethodPost, "/api/payment/create-transaction", "", http.StatusUnauthorized},
		{"status rejects anonymous", http.MethodGet, "/api/payment/status/" + uuid.NewString(), "", http.StatusUnauthorized},
		{"cancel rejects anonymous", http.MethodPost, "/api/payment/cancel/" + uuid.NewString(), "", http.StatusUnauthorized},
		// The webhook stays open; the payload signature is its auth.
		{"notification stays open", http.MethodPost, "/api/payment/notification", `{"order_id":"gw-1"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			req := httptest.NewRequest(tt.method, tt.path, body)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
