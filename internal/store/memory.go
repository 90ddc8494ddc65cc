package store

import (
	"context"
	"math"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// MemoryStore is an in-memory Store used by tests and by cmd/local. It
// upholds the same invariants as the Mongo implementation, including the
// unique constraint on user emails.
type MemoryStore struct {
	mu        sync.Mutex
	users     []User
	logins    []LoginEvent
	history   []GenerationRecord
	documents []Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	user.ID = bson.NewObjectID()
	s.users = append(s.users, *user)
	return nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id bson.ObjectID) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryStore) UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Password = hash
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].LastLogin = at
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) RecordLogin(ctx context.Context, event *LoginEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	event.ID = bson.NewObjectID()
	s.logins = append(s.logins, *event)
	return nil
}

func (s *MemoryStore) AddRecord(ctx context.Context, record *GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record.ID = bson.NewObjectID()
	s.history = append(s.history, *record)
	return nil
}

func (s *MemoryStore) ListRecords(ctx context.Context, userID string, limit int64) ([]GenerationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var records []GenerationRecord
	for _, r := range s.history {
		if r.UserID == userID {
			records = append(records, r)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	if int64(len(records)) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *MemoryStore) ClearRecords(ctx context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var kept []GenerationRecord
	var deleted int64
	for _, r := range s.history {
		if r.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, r)
	}
	s.history = kept
	return deleted, nil
}

func (s *MemoryStore) CreateDocument(ctx context.Context, doc *Document) (bson.ObjectID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc.ID = bson.NewObjectID()
	s.documents = append(s.documents, *doc)
	return doc.ID, nil
}

func (s *MemoryStore) ListDocuments(ctx context.Context, userID string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var docs []Document
	for _, d := range s.documents {
		if d.UserID == userID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs, nil
}

func (s *MemoryStore) LoginsPerDay(ctx context.Context, since time.Time) ([]DailyLogins, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := map[string]int64{}
	unique := map[string]map[string]struct{}{}
	for _, ev := range s.logins {
		if ev.Timestamp.Before(since) {
			continue
		}
		day := DayKey(ev.Timestamp)
		totals[day]++
		if unique[day] == nil {
			unique[day] = map[string]struct{}{}
		}
		unique[day][ev.UserID] = struct{}{}
	}

	var out []DailyLogins
	for _, day := range sortedKeys(totals) {
		out = append(out, DailyLogins{
			Day:         day,
			TotalLogins: totals[day],
			UniqueUsers: int64(len(unique[day])),
		})
	}
	return out, nil
}

func (s *MemoryStore) ActiveUsersPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unique := map[string]map[string]struct{}{}
	for _, ev := range s.logins {
		if ev.Timestamp.Before(since) {
			continue
		}
		day := DayKey(ev.Timestamp)
		if unique[day] == nil {
			unique[day] = map[string]struct{}{}
		}
		unique[day][ev.UserID] = struct{}{}
	}

	var out []DailyCount
	for _, day := range sortedKeys(unique) {
		out = append(out, DailyCount{Date: day, Value: float64(len(unique[day]))})
	}
	return out, nil
}

func (s *MemoryStore) NewUsersPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]float64{}
	for _, u := range s.users {
		if u.CreatedAt.Before(since) {
			continue
		}
		counts[DayKey(u.CreatedAt)]++
	}
	return dailyCounts(counts), nil
}

func (s *MemoryStore) PromptsPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]float64{}
	for _, r := range s.history {
		if r.CreatedAt.Before(since) {
			continue
		}
		counts[DayKey(r.CreatedAt)]++
	}
	return dailyCounts(counts), nil
}

func (s *MemoryStore) TokensPerDay(ctx context.Context, since time.Time) ([]DailyTokens, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens := map[string]float64{}
	for _, r := range s.history {
		if r.CreatedAt.Before(since) {
			continue
		}
		tokens[DayKey(r.CreatedAt)] += float64(len([]rune(r.Response))) / 4
	}

	var out []DailyTokens
	for _, day := range sortedKeys(tokens) {
		value := math.Round(tokens[day])
		out = append(out, DailyTokens{
			Date:  day,
			Value: value,
			Cost:  math.Round(value*0.0000001*10000) / 10000,
		})
	}
	return out, nil
}

func (s *MemoryStore) AvgPromptsPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prompts := map[string]float64{}
	users := map[string]map[string]struct{}{}
	for _, r := range s.history {
		if r.CreatedAt.Before(since) {
			continue
		}
		day := DayKey(r.CreatedAt)
		prompts[day]++
		if users[day] == nil {
			users[day] = map[string]struct{}{}
		}
		users[day][r.UserID] = struct{}{}
	}

	var out []DailyCount
	for _, day := range sortedKeys(prompts) {
		n := len(users[day])
		if n < 1 {
			n = 1
		}
		out = append(out, DailyCount{
			Date:  day,
			Value: math.Round(prompts[day]/float64(n)*100) / 100,
		})
	}
	return out, nil
}

func (s *MemoryStore) FeatureUsage(ctx context.Context) ([]FeatureCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int64{}
	for _, r := range s.history {
		counts[r.ContentType]++
	}

	var out []FeatureCount
	for _, name := range sortedKeys(counts) {
		out = append(out, FeatureCount{Name: name, Value: counts[name]})
	}
	return out, nil
}

func (s *MemoryStore) DistinctActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	unique := map[string]struct{}{}
	for _, ev := range s.logins {
		if !ev.Timestamp.Before(since) {
			unique[ev.UserID] = struct{}{}
		}
	}
	return int64(len(unique)), nil
}

func (s *MemoryStore) UsageTotals(ctx context.Context, todayStart time.Time) (UsageTotals, error) {
	active, err := s.DistinctActiveUsers(ctx, todayStart)
	if err != nil {
		return UsageTotals{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	totals := UsageTotals{
		TotalUsers:       int64(len(s.users)),
		ActiveUsersToday: active,
		TotalPrompts:     int64(len(s.history)),
	}
	for _, r := range s.history {
		totals.TotalResponseChars += int64(len([]rune(r.Response)))
	}
	return totals, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func dailyCounts(counts map[string]float64) []DailyCount {
	var out []DailyCount
	for _, day := range sortedKeys(counts) {
		out = append(out, DailyCount{Date: day, Value: counts[day]})
	}
	return out
}
