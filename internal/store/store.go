// Package store defines the data model and datastore interfaces, with a
// MongoDB implementation for production and an in-memory implementation for
// tests and local runs.
package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// IsObjectIDHex reports whether raw has the exact shape of a database id:
// 24 characters, all hexadecimal. Anything else is treated as an email
// identifier by the resolver.
func IsObjectIDHex(raw string) bool {
	if len(raw) != 24 {
		return false
	}
	for _, c := range raw {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

type UserStore interface {
	// CreateUser inserts user and sets user.ID. Returns ErrDuplicate when
	// the email is already taken.
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id bson.ObjectID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error
	UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error
}

type LoginStore interface {
	RecordLogin(ctx context.Context, event *LoginEvent) error
}

type HistoryStore interface {
	AddRecord(ctx context.Context, record *GenerationRecord) error
	// ListRecords returns up to limit most-recent records for the user.
	ListRecords(ctx context.Context, userID string, limit int64) ([]GenerationRecord, error)
	// ClearRecords deletes every record owned by the user, matching both the
	// canonical string form and the legacy ObjectID form of the identifier,
	// and returns the number deleted. Zero matches is not an error.
	ClearRecords(ctx context.Context, userID string) (int64, error)
}

type DocumentStore interface {
	// CreateDocument inserts doc and returns its generated id.
	CreateDocument(ctx context.Context, doc *Document) (bson.ObjectID, error)
	// ListDocuments returns the user's documents, most recent first.
	ListDocuments(ctx context.Context, userID string) ([]Document, error)
}

// AnalyticsStore exposes the read-only aggregations behind the admin
// dashboard. Day keys use the YYYY-MM-DD form; sparse results are allowed,
// the handlers zero-fill.
type AnalyticsStore interface {
	LoginsPerDay(ctx context.Context, since time.Time) ([]DailyLogins, error)
	ActiveUsersPerDay(ctx context.Context, since time.Time) ([]DailyCount, error)
	NewUsersPerDay(ctx context.Context, since time.Time) ([]DailyCount, error)
	PromptsPerDay(ctx context.Context, since time.Time) ([]DailyCount, error)
	TokensPerDay(ctx context.Context, since time.Time) ([]DailyTokens, error)
	AvgPromptsPerDay(ctx context.Context, since time.Time) ([]DailyCount, error)
	FeatureUsage(ctx context.Context) ([]FeatureCount, error)
	DistinctActiveUsers(ctx context.Context, since time.Time) (int64, error)
	UsageTotals(ctx context.Context, todayStart time.Time) (UsageTotals, error)
}

// Store is the full datastore surface the API services are wired with.
type Store interface {
	UserStore
	LoginStore
	HistoryStore
	DocumentStore
	AnalyticsStore
}

// DayKey formats t as an aggregation day bucket.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// TruncateDay returns t at midnight UTC, the bucket boundary every lookback
// window is anchored to.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
