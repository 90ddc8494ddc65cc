package api

import (
	"math"
	"net/http"
	"time"

	"eduwrite-backend/internal/store"
	"eduwrite-backend/pkg/api"

	"github.com/go-chi/chi/v5"
)

const (
	defaultWindowDays = 7
	stickinessMAUDays = 30

	charsPerToken    = 4
	costPer1kTokens  = 0.0001
	loginStatsWindow = 7
)

// AdminService serves the analytics dashboard. It only needs the read-side
// of the datastore.
type AdminService struct {
	store store.AnalyticsStore
}

func NewAdminService(s store.AnalyticsStore) *AdminService {
	return &AdminService{store: s}
}

func (s *AdminService) AddRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/stats", RestHandler(s.DailyStats))
		r.Get("/summary", RestHandler(s.Summary))
		r.Get("/dau", RestHandler(s.DailyActiveUsers))
		r.Get("/new-users", RestHandler(s.NewUsers))
		r.Get("/prompts-per-day", RestHandler(s.PromptsPerDay))
		r.Get("/feature-usage", RestHandler(s.FeatureUsage))
		r.Get("/token-usage", RestHandler(s.TokenUsage))
		r.Get("/stickiness", RestHandler(s.Stickiness))
		r.Get("/avg-prompts", RestHandler(s.AvgPrompts))
	})
}

// lookbackWindow reads the optional days query param and anchors the window
// to midnight UTC so the fill range and the match range agree.
func lookbackWindow(r *http.Request) (time.Time, int, error) {
	query, err := ParseRequestQueryParams[api.WindowQuery](r)
	if err != nil {
		return time.Time{}, 0, err
	}
	days := query.Days
	if days <= 0 {
		days = defaultWindowDays
	}
	since := store.TruncateDay(time.Now().UTC().AddDate(0, 0, -(days - 1)))
	return since, days, nil
}

// denseSeries zero-fills a sparse day series into exactly days entries
// starting at since.
func denseSeries(since time.Time, days int, points []store.DailyCount) []api.SeriesPoint {
	byDay := make(map[string]float64, len(points))
	for _, p := range points {
		byDay[p.Date] = p.Value
	}
	out := make([]api.SeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		day := store.DayKey(since.AddDate(0, 0, i))
		out = append(out, api.SeriesPoint{Date: day, Value: byDay[day]})
	}
	return out
}

// DailyStats reports login totals per day over the trailing week, inclusive
// of both boundary days.
func (s *AdminService) DailyStats(r *http.Request) (any, error) {
	start := store.TruncateDay(time.Now().UTC().AddDate(0, 0, -loginStatsWindow))
	rows, err := s.store.LoginsPerDay(r.Context(), start)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating logins: %v", err)
	}
	byDay := make(map[string]store.DailyLogins, len(rows))
	for _, row := range rows {
		byDay[row.Day] = row
	}
	stats := make([]api.DailyLoginStats, 0, loginStatsWindow+1)
	for i := 0; i <= loginStatsWindow; i++ {
		day := store.DayKey(start.AddDate(0, 0, i))
		row := byDay[day]
		stats = append(stats, api.DailyLoginStats{
			Day:         day,
			TotalLogins: row.TotalLogins,
			UniqueUsers: row.UniqueUsers,
		})
	}
	return api.DailyStatsResponse{DailyStats: stats}, nil
}

func (s *AdminService) Summary(r *http.Request) (any, error) {
	totals, err := s.store.UsageTotals(r.Context(), store.TruncateDay(time.Now().UTC()))
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating usage totals: %v", err)
	}
	tokens := totals.TotalResponseChars / charsPerToken
	cost := math.Round(float64(tokens)/1000*costPer1kTokens*10000) / 10000
	return api.AdminSummary{
		TotalUsers:       totals.TotalUsers,
		ActiveUsersToday: totals.ActiveUsersToday,
		TotalPrompts:     totals.TotalPrompts,
		TotalApiCalls:    totals.TotalPrompts,
		TotalTokens:      tokens,
		EstimatedCost:    cost,
	}, nil
}

func (s *AdminService) DailyActiveUsers(r *http.Request) (any, error) {
	since, days, err := lookbackWindow(r)
	if err != nil {
		return nil, err
	}
	points, err := s.store.ActiveUsersPerDay(r.Context(), since)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating active users: %v", err)
	}
	return denseSeries(since, days, points), nil
}

func (s *AdminService) NewUsers(r *http.Request) (any, error) {
	since, days, err := lookbackWindow(r)
	if err != nil {
		return nil, err
	}
	points, err := s.store.NewUsersPerDay(r.Context(), since)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating new users: %v", err)
	}
	return denseSeries(since, days, points), nil
}

func (s *AdminService) PromptsPerDay(r *http.Request) (any, error) {
	since, days, err := lookbackWindow(r)
	if err != nil {
		return nil, err
	}
	points, err := s.store.PromptsPerDay(r.Context(), since)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating prompts: %v", err)
	}
	return denseSeries(since, days, points), nil
}

func (s *AdminService) FeatureUsage(r *http.Request) (any, error) {
	counts, err := s.store.FeatureUsage(r.Context())
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating feature usage: %v", err)
	}
	out := make([]api.FeatureUsage, 0, len(counts))
	for _, c := range counts {
		out = append(out, api.FeatureUsage{Name: c.Name, Value: c.Value})
	}
	return out, nil
}

func (s *AdminService) TokenUsage(r *http.Request) (any, error) {
	since, days, err := lookbackWindow(r)
	if err != nil {
		return nil, err
	}
	points, err := s.store.TokensPerDay(r.Context(), since)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating token usage: %v", err)
	}
	byDay := make(map[string]store.DailyTokens, len(points))
	for _, p := range points {
		byDay[p.Date] = p
	}
	out := make([]api.SeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		day := store.DayKey(since.AddDate(0, 0, i))
		p := byDay[day]
		out = append(out, api.SeriesPoint{Date: day, Value: p.Value, Cost: p.Cost})
	}
	return out, nil
}

// Stickiness reports daily active users as a percentage of the distinct
// users active over the trailing 30 days.
func (s *AdminService) Stickiness(r *http.Request) (any, error) {
	ctx := r.Context()
	now := time.Now().UTC()

	mau, err := s.store.DistinctActiveUsers(ctx, store.TruncateDay(now.AddDate(0, 0, -stickinessMAUDays)))
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error counting monthly active users: %v", err)
	}
	if mau == 0 {
		mau = 1
	}

	since := store.TruncateDay(now.AddDate(0, 0, -(defaultWindowDays - 1)))
	points, err := s.store.ActiveUsersPerDay(ctx, since)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating active users: %v", err)
	}
	out := denseSeries(since, defaultWindowDays, points)
	for i := range out {
		out[i].Value = out[i].Value / float64(mau) * 100
	}
	return out, nil
}

func (s *AdminService) AvgPrompts(r *http.Request) (any, error) {
	since, days, err := lookbackWindow(r)
	if err != nil {
		return nil, err
	}
	points, err := s.store.AvgPromptsPerDay(r.Context(), since)
	if err != nil {
		return nil, CodedErrorf(http.StatusInternalServerError, "error aggregating prompt averages: %v", err)
	}
	return denseSeries(since, days, points), nil
}
