package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return parsed
}

func TestMemoryStoreDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, &User{Username: "a", Email: "a@x.com"}))
	err := s.CreateUser(ctx, &User{Username: "b", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryStoreHistoryOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	base := day(t, "2026-08-01")
	for i := 0; i < 5; i++ {
		require.NoError(t, s.AddRecord(ctx, &GenerationRecord{
			UserID:    "u1",
			Topic:     fmt.Sprintf("topic-%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u2", Topic: "other", CreatedAt: base}))

	records, err := s.ListRecords(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "topic-4", records[0].Topic)
	assert.Equal(t, "topic-2", records[2].Topic)
}

func TestMemoryStoreClearRecords(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Now().UTC()
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u1", CreatedAt: now}))
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u1", CreatedAt: now}))
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u2", CreatedAt: now}))

	deleted, err := s.ClearRecords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// Clearing an empty history is not an error.
	deleted, err = s.ClearRecords(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	records, err := s.ListRecords(ctx, "u2", 50)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestMemoryStoreLoginsPerDay(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d1 := day(t, "2026-08-20")
	d2 := day(t, "2026-08-21")
	for _, ev := range []LoginEvent{
		{UserID: "u1", Timestamp: d1.Add(1 * time.Hour), Type: "login"},
		{UserID: "u1", Timestamp: d1.Add(2 * time.Hour), Type: "login"},
		{UserID: "u2", Timestamp: d1.Add(3 * time.Hour), Type: "signup"},
		{UserID: "u2", Timestamp: d2, Type: "login"},
	} {
		ev := ev
		require.NoError(t, s.RecordLogin(ctx, &ev))
	}

	rows, err := s.LoginsPerDay(ctx, d1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, DailyLogins{Day: "2026-08-20", TotalLogins: 3, UniqueUsers: 2}, rows[0])
	assert.Equal(t, DailyLogins{Day: "2026-08-21", TotalLogins: 1, UniqueUsers: 1}, rows[1])

	// The window bound excludes earlier events.
	rows, err = s.LoginsPerDay(ctx, d2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2026-08-21", rows[0].Day)
}

func TestMemoryStoreTokensPerDay(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := day(t, "2026-08-20")
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{
		UserID:    "u1",
		Response:  strings.Repeat("x", 4000),
		CreatedAt: d,
	}))

	rows, err := s.TokensPerDay(ctx, d)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(1000), rows[0].Value)
	assert.Equal(t, 0.0001, rows[0].Cost)
}

func TestMemoryStoreAvgPromptsPerDay(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	d := day(t, "2026-08-20")
	for i := 0; i < 3; i++ {
		require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u1", CreatedAt: d}))
	}
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u2", CreatedAt: d}))

	rows, err := s.AvgPromptsPerDay(ctx, d)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].Value)
}

func TestMemoryStoreFeatureUsage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Now().UTC()
	for _, ct := range []string{"Quiz", "Quiz", "Summary"} {
		require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u1", ContentType: ct, CreatedAt: now}))
	}

	counts, err := s.FeatureUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, []FeatureCount{{Name: "Quiz", Value: 2}, {Name: "Summary", Value: 1}}, counts)
}

func TestMemoryStoreUsageTotals(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	now := time.Now().UTC()
	today := TruncateDay(now)
	require.NoError(t, s.CreateUser(ctx, &User{Email: "a@x.com"}))
	require.NoError(t, s.CreateUser(ctx, &User{Email: "b@x.com"}))
	require.NoError(t, s.RecordLogin(ctx, &LoginEvent{UserID: "u1", Timestamp: now}))
	require.NoError(t, s.RecordLogin(ctx, &LoginEvent{UserID: "u1", Timestamp: today.Add(-time.Hour)}))
	require.NoError(t, s.AddRecord(ctx, &GenerationRecord{UserID: "u1", Response: "abcd", CreatedAt: now}))

	totals, err := s.UsageTotals(ctx, today)
	require.NoError(t, err)
	assert.Equal(t, int64(2), totals.TotalUsers)
	assert.Equal(t, int64(1), totals.ActiveUsersToday)
	assert.Equal(t, int64(1), totals.TotalPrompts)
	assert.Equal(t, int64(4), totals.TotalResponseChars)
}
