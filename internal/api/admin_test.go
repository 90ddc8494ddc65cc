package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	backend "eduwrite-backend/internal/api"
	"eduwrite-backend/internal/store"
	"eduwrite-backend/pkg/api"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminRouter(t *testing.T, s store.AnalyticsStore) chi.Router {
	t.Helper()
	service := backend.NewAdminService(s)
	router := chi.NewRouter()
	service.AddRoutes(router)
	return router
}

func getJSON[T any](t *testing.T, router chi.Router, path string) T {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, "GET %s: %s", path, rec.Body.String())

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAdminStatsZeroFilled(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u1", Timestamp: now, Type: "login"}))
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u2", Timestamp: now, Type: "login"}))
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u1", Timestamp: now.AddDate(0, 0, -2), Type: "login"}))

	router := newAdminRouter(t, memStore)
	response := getJSON[api.DailyStatsResponse](t, router, "/admin/stats")

	// Trailing week inclusive of both endpoints.
	require.Len(t, response.DailyStats, 8)
	assert.Equal(t, store.DayKey(now.AddDate(0, 0, -7)), response.DailyStats[0].Day)

	today := response.DailyStats[7]
	assert.Equal(t, store.DayKey(now), today.Day)
	assert.Equal(t, int64(2), today.TotalLogins)
	assert.Equal(t, int64(2), today.UniqueUsers)

	quiet := response.DailyStats[6]
	assert.Equal(t, int64(0), quiet.TotalLogins)
	assert.Equal(t, int64(0), quiet.UniqueUsers)
}

func TestAdminDailyActiveUsers(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u1", Timestamp: now, Type: "login"}))
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u1", Timestamp: now, Type: "login"}))
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u2", Timestamp: now, Type: "login"}))

	router := newAdminRouter(t, memStore)
	series := getJSON[[]api.SeriesPoint](t, router, "/admin/dau")

	require.Len(t, series, 7)
	assert.Equal(t, store.DayKey(now.AddDate(0, 0, -6)), series[0].Date)
	assert.Equal(t, 2.0, series[6].Value)
	assert.Equal(t, 0.0, series[0].Value)

	t.Run("CustomWindow", func(t *testing.T) {
		series := getJSON[[]api.SeriesPoint](t, router, "/admin/dau?days=14")
		assert.Len(t, series, 14)
	})
}

func TestAdminSummary(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, memStore.CreateUser(ctx, &store.User{Email: "a@x.com", CreatedAt: now}))
	require.NoError(t, memStore.CreateUser(ctx, &store.User{Email: "b@x.com", CreatedAt: now}))
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u1", Timestamp: now, Type: "login"}))
	require.NoError(t, memStore.AddRecord(ctx, &store.GenerationRecord{
		UserID: "u1", Response: strings.Repeat("x", 8000), CreatedAt: now,
	}))

	router := newAdminRouter(t, memStore)
	summary := getJSON[api.AdminSummary](t, router, "/admin/summary")

	assert.Equal(t, int64(2), summary.TotalUsers)
	assert.Equal(t, int64(1), summary.ActiveUsersToday)
	assert.Equal(t, int64(1), summary.TotalPrompts)
	assert.Equal(t, int64(1), summary.TotalApiCalls)
	assert.Equal(t, int64(2000), summary.TotalTokens)
	assert.Equal(t, 0.0002, summary.EstimatedCost)
}

func TestAdminFeatureUsage(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	for _, ct := range []string{"Quiz", "Quiz", "Explanation"} {
		require.NoError(t, memStore.AddRecord(ctx, &store.GenerationRecord{UserID: "u1", ContentType: ct, CreatedAt: now}))
	}

	router := newAdminRouter(t, memStore)
	usage := getJSON[[]api.FeatureUsage](t, router, "/admin/feature-usage")

	assert.ElementsMatch(t, []api.FeatureUsage{
		{Name: "Quiz", Value: 2},
		{Name: "Explanation", Value: 1},
	}, usage)
}

func TestAdminTokenUsage(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, memStore.AddRecord(ctx, &store.GenerationRecord{
		UserID: "u1", Response: strings.Repeat("x", 4000), CreatedAt: now,
	}))

	router := newAdminRouter(t, memStore)
	series := getJSON[[]api.SeriesPoint](t, router, "/admin/token-usage")

	require.Len(t, series, 7)
	last := series[6]
	assert.Equal(t, store.DayKey(now), last.Date)
	assert.Equal(t, 1000.0, last.Value)
	assert.Equal(t, 0.0001, last.Cost)
}

func TestAdminStickiness(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	// Four users active this month, two of them today.
	for _, id := range []string{"u1", "u2", "u3", "u4"} {
		require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: id, Timestamp: now.AddDate(0, 0, -10), Type: "login"}))
	}
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u1", Timestamp: now, Type: "login"}))
	require.NoError(t, memStore.RecordLogin(ctx, &store.LoginEvent{UserID: "u2", Timestamp: now, Type: "login"}))

	router := newAdminRouter(t, memStore)
	series := getJSON[[]api.SeriesPoint](t, router, "/admin/stickiness")

	require.Len(t, series, 7)
	assert.Equal(t, 50.0, series[6].Value)
	assert.Equal(t, 0.0, series[0].Value)
}

func TestAdminStickinessNoActivity(t *testing.T) {
	router := newAdminRouter(t, store.NewMemoryStore())
	series := getJSON[[]api.SeriesPoint](t, router, "/admin/stickiness")

	require.Len(t, series, 7)
	for _, p := range series {
		assert.Equal(t, 0.0, p.Value)
	}
}

func TestAdminAvgPrompts(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	for i := 0; i < 3; i++ {
		require.NoError(t, memStore.AddRecord(ctx, &store.GenerationRecord{UserID: "u1", CreatedAt: now}))
	}
	require.NoError(t, memStore.AddRecord(ctx, &store.GenerationRecord{UserID: "u2", CreatedAt: now}))

	router := newAdminRouter(t, memStore)
	series := getJSON[[]api.SeriesPoint](t, router, "/admin/avg-prompts")

	require.Len(t, series, 7)
	assert.Equal(t, 2.0, series[6].Value)
}

func TestAdminNewUsers(t *testing.T) {
	ctx := context.Background()
	memStore := store.NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, memStore.CreateUser(ctx, &store.User{Email: "a@x.com", CreatedAt: now}))
	require.NoError(t, memStore.CreateUser(ctx, &store.User{Email: "b@x.com", CreatedAt: now.AddDate(0, 0, -30)}))

	router := newAdminRouter(t, memStore)
	series := getJSON[[]api.SeriesPoint](t, router, "/admin/new-users")

	require.Len(t, series, 7)
	assert.Equal(t, 1.0, series[6].Value)
	assert.Equal(t, 0.0, series[0].Value)
}
