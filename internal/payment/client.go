package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/joyva20/ecommerce-api/internal/config"

	"github.com/rs/zerolog"
)

// Client talks to the payment gateway. Split from the adapter service so
// tests can swap in a fake gateway.
type Client interface {
	// CreateTransaction registers a Snap transaction and returns the
	// client token and redirect URL.
	CreateTransaction(ctx context.Context, req *SnapRequest) (*SnapResponse, error)

	// TransactionStatus queries the current state of a transaction by
	// its gateway order id.
	TransactionStatus(ctx context.Context, gatewayOrderID string) (*Notification, error)

	// CancelTransaction requests cancellation of a pending transaction.
	CancelTransaction(ctx context.Context, gatewayOrderID string) error
}

// SnapRequest is the gateway's transaction creation payload.
type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CreditCard         CreditCard         `json:"credit_card"`
	ItemDetails        []ItemDetail       `json:"item_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	EnabledPayments    []string           `json:"enabled_payments"`
	Callbacks          Callbacks          `json:"callbacks"`
	Expiry             Expiry             `json:"expiry"`
}

type TransactionDetails struct {
	OrderID     string `json:"order_id"`
	GrossAmount int64  `json:"gross_amount"`
}

type CreditCard struct {
	Secure bool `json:"secure"`
}

type ItemDetail struct {
	ID       string `json:"id"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
}

type CustomerDetails struct {
	FirstName      string          `json:"first_name"`
	Email          string          `json:"email"`
	BillingAddress *BillingAddress `json:"billing_address,omitempty"`
}

type BillingAddress struct {
	FirstName   string `json:"first_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	CountryCode string `json:"country_code"`
}

type Callbacks struct {
	Finish  string `json:"finish"`
	Error   string `json:"error"`
	Pending string `json:"pending"`
}

type Expiry struct {
	StartTime string `json:"start_time"`
	Unit      string `json:"unit"`
	Duration  int    `json:"duration"`
}

// SnapResponse is the gateway's answer to a transaction creation.
type SnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// httpClient is the real gateway client. Authentication is HTTP basic
// with the server key as user and an empty password.
type httpClient struct {
	snapBaseURL string
	coreBaseURL string
	serverKey   string
	http        *http.Client
	logger      zerolog.Logger
}

// NewClient creates a gateway client from configuration.
func NewClient(cfg config.GatewayConfig, logger zerolog.Logger) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &httpClient{
		snapBaseURL: cfg.SnapBaseURL,
		coreBaseURL: cfg.CoreBaseURL,
		serverKey:   cfg.ServerKey,
		http:        &http.Client{Timeout: timeout},
		logger:      logger.With().Str("component", "gateway-client").Logger(),
	}
}

func (c *httpClient) CreateTransaction(ctx context.Context, snapReq *SnapRequest) (*SnapResponse, error) {
	body, err := json.Marshal(snapReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snap request: %w", err)
	}

	url := c.snapBaseURL + "/snap/v1/transactions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build snap request: %w", err)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		c.logger.Error().
			Int("status", resp.StatusCode).
			Str("gateway_order_id", snapReq.TransactionDetails.OrderID).
			Msg("gateway rejected transaction creation")
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var snapResp SnapResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapResp); err != nil {
		return nil, fmt.Errorf("failed to decode snap response: %w", err)
	}

	return &snapResp, nil
}

func (c *httpClient) TransactionStatus(ctx context.Context, gatewayOrderID string) (*Notification, error) {
	url := fmt.Sprintf("%s/v2/%s/status", c.coreBaseURL, gatewayOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build status request: %w", err)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway status request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var status Notification
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode status response: %w", err)
	}

	return &status, nil
}

func (c *httpClient) CancelTransaction(ctx context.Context, gatewayOrderID string) error {
	url := fmt.Sprintf("%s/v2/%s/cancel", c.coreBaseURL, gatewayOrderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build cancel request: %w", err)
	}
	c.decorate(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway cancel request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}
	return nil
}

func (c *httpClient) decorate(req *http.Request) {
	auth := base64.StdEncoding.EncodeToString([]byte(c.serverKey + ":"))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
