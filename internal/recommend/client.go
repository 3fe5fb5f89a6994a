package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Client proxies recommendation requests to the external recommender
// service. The recommendation algorithm is entirely the remote side's
// concern; responses pass through untouched.
type Client interface {
	ForUser(ctx context.Context, userID uuid.UUID, topN int) (json.RawMessage, error)
}

type httpClient struct {
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a recommender client. An empty base URL yields a
// client that reports the service as unavailable.
func NewClient(baseURL string, timeout time.Duration, logger zerolog.Logger) Client {
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger.With().Str("component", "recommender-client").Logger(),
	}
}

// ForUser fetches recommendations for a user.
func (c *httpClient) ForUser(ctx context.Context, userID uuid.UUID, topN int) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("recommender service is not configured")
	}

	url := fmt.Sprintf("%s/api/recommendations/%s?top_n=%d", c.baseURL, userID, topN)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build recommender request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recommender request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("user_id", userID.String()).
			Msg("recommender returned non-OK status")
		return nil, fmt.Errorf("recommender returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recommender response: %w", err)
	}

	return json.RawMessage(body), nil
}
