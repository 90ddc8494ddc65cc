package store

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User is created on first signup, login, or generation request and never
// deleted. Password may be empty for accounts created implicitly from an
// email identifier.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Username  string        `bson:"username"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password,omitempty"`
	IsAdmin   bool          `bson:"is_admin,omitempty"`
	CreatedAt time.Time     `bson:"created_at"`
	LastLogin time.Time     `bson:"last_login,omitempty"`
}

// LoginEvent is an append-only record of one login or signup.
type LoginEvent struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"user_id"`
	Email     string        `bson:"email"`
	Timestamp time.Time     `bson:"timestamp"`
	Type      string        `bson:"type"` // "login" or "signup"
}

// GenerationRecord logs one generation request/response pair. UserID is the
// canonical hex string form of the owning user's id; legacy records may hold
// a raw ObjectID, which ClearRecords still sweeps.
type GenerationRecord struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	UserID      string        `bson:"user_id"`
	Topic       string        `bson:"topic"`
	ContentType string        `bson:"content_type"`
	Response    string        `bson:"response"`
	CreatedAt   time.Time     `bson:"created_at"`
	HadFile     bool          `bson:"had_file"`
	Mode        string        `bson:"mode"`
	PDFName     string        `bson:"pdf_name,omitempty"`
}

// Document is a user-owned saved document.
type Document struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	UserID    string        `bson:"user_id"`
	Title     string        `bson:"title"`
	Content   string        `bson:"content"`
	CreatedAt time.Time     `bson:"created_at"`
	UpdatedAt time.Time     `bson:"updated_at"`
}

// DailyLogins is one day's login totals.
type DailyLogins struct {
	Day         string `bson:"day"`
	TotalLogins int64  `bson:"totalLogins"`
	UniqueUsers int64  `bson:"uniqueUsers"`
}

// DailyCount is one day's value in a time series.
type DailyCount struct {
	Date  string  `bson:"date"`
	Value float64 `bson:"value"`
}

// DailyTokens is one day's estimated token usage and cost.
type DailyTokens struct {
	Date  string  `bson:"date"`
	Value float64 `bson:"value"`
	Cost  float64 `bson:"cost"`
}

// FeatureCount is the number of generations for one content type.
type FeatureCount struct {
	Name  string `bson:"name"`
	Value int64  `bson:"value"`
}

// UsageTotals backs the admin summary endpoint.
type UsageTotals struct {
	TotalUsers         int64
	ActiveUsersToday   int64
	TotalPrompts       int64
	TotalResponseChars int64
}
