package handlers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/jordanlanch/crewops/pkg/api/errors"
	"github.com/jordanlanch/crewops/pkg/domain"
	"github.com/jordanlanch/crewops/pkg/logger"
	"github.com/jordanlanch/crewops/pkg/metrics"
	"github.com/jordanlanch/crewops/pkg/models"
	"github.com/jordanlanch/crewops/pkg/suggest"
	"github.com/labstack/echo/v4"
)

// SuggestionsHandler serves crew suggestion requests.
type SuggestionsHandler struct {
	suggester *suggest.Suggester
	cache     domain.CacheRepository
	metrics   *metrics.Metrics
	log       logger.Logger
	validator *validator.Validate
	cacheTTL  time.Duration
}

// NewSuggestionsHandler creates a new suggestions handler. The cache and
// metrics are optional; nil disables them.
func NewSuggestionsHandler(cache domain.CacheRepository, m *metrics.Metrics, log logger.Logger, cacheTTL time.Duration) *SuggestionsHandler {
	return &SuggestionsHandler{
		suggester: suggest.New(),
		cache:     cache,
		metrics:   m,
		log:       log,
		validator: validator.New(),
		cacheTTL:  cacheTTL,
	}
}

// SuggestCrewsRequest carries the job context and the candidate crew
// snapshots to rank.
type SuggestCrewsRequest struct {
	Context    suggest.JobContext `json:"context"`
	Candidates []models.Crew      `json:"candidates" validate:"required,min=1,dive"`
}

// SuggestCrewsResponse is the ranked suggestion list with derived views.
type SuggestCrewsResponse struct {
	Suggestions []suggest.Suggestion `json:"suggestions"`
	QuickPicks  []suggest.Suggestion `json:"quick_picks"`
	BestMatch   *suggest.Suggestion  `json:"best_match"`
}

// Suggest ranks the candidate crews for the job and returns them with
// quick picks and the best match (null when no confident recommendation
// exists). Identical requests are served from the response cache for a
// short TTL since the ranking is a pure function of its input.
func (h *SuggestionsHandler) Suggest(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	var req SuggestCrewsRequest
	if err := c.Bind(&req); err != nil {
		return apierrors.BadRequestError(c, "Invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	key, hasKey := cacheKey("suggestions", req)
	if h.cache != nil && hasKey {
		if cached, err := h.cache.Get(ctx, key); err == nil {
			if h.metrics != nil {
				h.metrics.RecordCacheHit("suggestions")
			}
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}
		if h.metrics != nil {
			h.metrics.RecordCacheMiss("suggestions")
		}
	}

	suggestions := h.suggester.Suggest(req.Candidates, req.Context)
	resp := SuggestCrewsResponse{
		Suggestions: suggestions,
		QuickPicks:  h.suggester.QuickPicks(suggestions, 0),
		BestMatch:   h.suggester.BestMatch(suggestions),
	}

	if h.metrics != nil {
		h.metrics.RecordSuggestionRun(len(req.Candidates))
	}
	h.log.Debug("crew suggestions computed",
		"date", req.Context.Date,
		"candidates", len(req.Candidates),
		"ranked", len(suggestions),
	)

	payload, err := json.Marshal(resp)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	if h.cache != nil && hasKey {
		if err := h.cache.Set(ctx, key, string(payload), h.cacheTTL); err != nil {
			h.log.Warn("failed to cache suggestion response", "error", err)
		}
	}

	return c.JSONBlob(http.StatusOK, payload)
}

// cacheKey derives a stable cache key from the request body. Hashing the
// canonical JSON keeps crew snapshots out of key space.
func cacheKey(prefix string, req any) (string, bool) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(raw)
	return prefix + ":" + hex.EncodeToString(sum[:]), true
}
