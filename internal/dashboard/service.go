package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/joyva20/ecommerce-api/internal/model"
	"github.com/joyva20/ecommerce-api/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const cacheKey = "dashboard:summary"

// Service computes the dashboard read model server-side. Every refresh
// is a full recompute from the source collections; the only state is a
// short-TTL cache entry.
type Service interface {
	Summary(ctx context.Context) (*model.DashboardSummary, error)
}

type service struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	users    repository.UserRepository
	cache    *redis.Client // nil disables caching
	ttl      time.Duration
	opts     Options
	logger   zerolog.Logger
}

// NewService creates the dashboard service. A nil redis client disables
// the cache, recomputing on every request.
func NewService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	users repository.UserRepository,
	cache *redis.Client,
	ttl time.Duration,
	opts Options,
	logger zerolog.Logger,
) Service {
	return &service{
		orders:   orders,
		products: products,
		users:    users,
		cache:    cache,
		ttl:      ttl,
		opts:     opts,
		logger:   logger.With().Str("service", "dashboard").Logger(),
	}
}

// Summary returns the cached snapshot when fresh, otherwise recomputes
// it. A failing source fetch degrades its slice to an empty collection
// instead of aborting the aggregation. Concurrent refreshes race only
// on the cache SET, which is benign: each write is a full recompute.
func (s *service) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	if cached := s.fromCache(ctx); cached != nil {
		return cached, nil
	}

	products, err := s.products.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("product fetch failed, aggregating without products")
		products = nil
	}

	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("order fetch failed, aggregating without orders")
		orders = nil
	}

	users, err := s.users.GetAll(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("user fetch failed, aggregating without users")
		users = nil
	}

	summary := Compute(products, orders, users, s.opts)
	s.toCache(ctx, summary)

	return summary, nil
}

func (s *service) fromCache(ctx context.Context) *model.DashboardSummary {
	if s.cache == nil {
		return nil
	}

	raw, err := s.cache.Get(ctx, cacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Msg("summary cache read failed")
		}
		return nil
	}

	var summary model.DashboardSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		s.logger.Warn().Err(err).Msg("discarding malformed cached summary")
		return nil
	}

	return &summary
}

func (s *service) toCache(ctx context.Context, summary *model.DashboardSummary) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to marshal summary for cache")
		return
	}

	if err := s.cache.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("summary cache write failed")
	}
}
