package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jordanlanch/crewops/pkg/logger"
	"github.com/jordanlanch/crewops/pkg/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

// fakeCache is an in-memory CacheRepository for handler tests.
type fakeCache struct {
	store map[string]string
	sets  int
	gets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	f.sets++
	f.store[key] = value.(string)
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.gets++
	if v, ok := f.store[key]; ok {
		return v, nil
	}
	return "", echo.NewHTTPError(http.StatusNotFound, "cache miss")
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.store, key)
	}
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := f.store[key]
	return ok, nil
}

func (f *fakeCache) Close() error { return nil }

func performRequest(t *testing.T, handler echo.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	require.NoError(t, handler(c))
	return rec
}

func suggestBody(t *testing.T, req SuggestCrewsRequest) string {
	t.Helper()
	raw, err := json.Marshal(req)
	require.NoError(t, err)
	return string(raw)
}

func TestSuggestHandler(t *testing.T) {
	newRequest := func() SuggestCrewsRequest {
		var req SuggestCrewsRequest
		req.Context.Date = "2026-09-01"
		req.Context.TerritoryID = strPtr("north")
		req.Context.RequiredSkillTagIDs = []string{"vinyl"}
		req.Candidates = []models.Crew{
			{
				ID:          "crew-1",
				Name:        "North Crew",
				IsActive:    true,
				TerritoryID: strPtr("north"),
				Skills: []models.CrewSkill{
					{TagID: "vinyl", Proficiency: models.ProficiencyExpert},
				},
				MaxDailyFootage:  f64Ptr(200),
				ScheduledFootage: f64Ptr(50),
				DistanceMiles:    f64Ptr(8),
			},
			{ID: "crew-2", Name: "South Crew", IsActive: true},
		}
		return req
	}

	t.Run("Success - Ranks candidates and derives views", func(t *testing.T) {
		h := NewSuggestionsHandler(nil, nil, logger.Default(), time.Minute)

		rec := performRequest(t, h.Suggest, suggestBody(t, newRequest()))

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp SuggestCrewsResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Suggestions, 2)
		assert.Equal(t, "crew-1", resp.Suggestions[0].Crew.ID)
		require.NotNil(t, resp.BestMatch)
		assert.Equal(t, "crew-1", resp.BestMatch.Crew.ID)
		assert.NotEmpty(t, resp.QuickPicks)
	})

	t.Run("Success - Caches and replays identical requests", func(t *testing.T) {
		cache := newFakeCache()
		h := NewSuggestionsHandler(cache, nil, logger.Default(), time.Minute)
		body := suggestBody(t, newRequest())

		first := performRequest(t, h.Suggest, body)
		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, 1, cache.sets)

		second := performRequest(t, h.Suggest, body)
		assert.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, 1, cache.sets) // served from cache, no second store
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("Error - Invalid JSON body", func(t *testing.T) {
		h := NewSuggestionsHandler(nil, nil, logger.Default(), time.Minute)

		rec := performRequest(t, h.Suggest, "{not json")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Error - Empty candidate list fails validation", func(t *testing.T) {
		h := NewSuggestionsHandler(nil, nil, logger.Default(), time.Minute)
		req := newRequest()
		req.Candidates = nil

		rec := performRequest(t, h.Suggest, suggestBody(t, req))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Error - Malformed date fails validation", func(t *testing.T) {
		h := NewSuggestionsHandler(nil, nil, logger.Default(), time.Minute)
		req := newRequest()
		req.Context.Date = "09/01/2026"

		rec := performRequest(t, h.Suggest, suggestBody(t, req))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
