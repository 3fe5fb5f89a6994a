package handler

import (
	"net/http"
	"strconv"

	"github.com/joyva20/ecommerce-api/internal/recommend"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTopN = 5

// RecommendHandler proxies the storefront's recommendation requests to
// the external recommender service.
type RecommendHandler struct {
	client recommend.Client
	logger zerolog.Logger
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(client recommend.Client, logger zerolog.Logger) *RecommendHandler {
	return &RecommendHandler{
		client: client,
		logger: logger.With().Str("handler", "recommend").Logger(),
	}
}

// ForUser handles GET /api/recommendations/{userId}. The remote
// service's JSON body is forwarded verbatim on success; failures
// degrade to an empty recommendation list so the storefront never
// breaks on recommender downtime.
func (h *RecommendHandler) ForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "invalid user id")
		return
	}

	topN := defaultTopN
	if raw := r.URL.Query().Get("top_n"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			topN = n
		}
	}

	body, err := h.client.ForUser(r.Context(), userID, topN)
	if err != nil {
		h.logger.Warn().Err(err).Str("user_id", userID.String()).Msg("recommender unavailable")
		writeSuccess(w, http.StatusOK, envelope{"recommendations": []any{}})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
