package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// The aggregations below power the admin dashboard. They are recomputed on
// every request; none of them mutate anything.

func dayOf(field string) bson.D {
	return bson.D{{Key: "$dateToString", Value: bson.D{
		{Key: "format", Value: "%Y-%m-%d"},
		{Key: "date", Value: field},
	}}}
}

func aggregate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []T
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *MongoStore) LoginsPerDay(ctx context.Context, since time.Time) ([]DailyLogins, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: dayOf("$timestamp")},
			{Key: "totalLogins", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "uniqueUsers", Value: bson.D{{Key: "$addToSet", Value: "$user_id"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "day", Value: "$_id"},
			{Key: "totalLogins", Value: 1},
			{Key: "uniqueUsers", Value: bson.D{{Key: "$size", Value: "$uniqueUsers"}}},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "day", Value: 1}}}},
	}
	return aggregate[DailyLogins](ctx, s.logins(), pipeline)
}

func (s *MongoStore) ActiveUsersPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "timestamp", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: dayOf("$timestamp")},
			{Key: "uniqueUsers", Value: bson.D{{Key: "$addToSet", Value: "$user_id"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "date", Value: "$_id"},
			{Key: "value", Value: bson.D{{Key: "$size", Value: "$uniqueUsers"}}},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
	return aggregate[DailyCount](ctx, s.logins(), pipeline)
}

func (s *MongoStore) NewUsersPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: dayOf("$created_at")},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "date", Value: "$_id"},
			{Key: "value", Value: "$count"},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
	return aggregate[DailyCount](ctx, s.users(), pipeline)
}

func (s *MongoStore) PromptsPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: dayOf("$created_at")},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "date", Value: "$_id"},
			{Key: "value", Value: "$count"},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
	return aggregate[DailyCount](ctx, s.history(), pipeline)
}

func (s *MongoStore) TokensPerDay(ctx context.Context, since time.Time) ([]DailyTokens, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "day", Value: dayOf("$created_at")},
			{Key: "tokens", Value: bson.D{{Key: "$divide", Value: bson.A{
				bson.D{{Key: "$strLenCP", Value: "$response"}}, 4,
			}}}},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$day"},
			{Key: "value", Value: bson.D{{Key: "$sum", Value: "$tokens"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "date", Value: "$_id"},
			{Key: "value", Value: bson.D{{Key: "$round", Value: bson.A{"$value", 0}}}},
			{Key: "cost", Value: bson.D{{Key: "$round", Value: bson.A{
				bson.D{{Key: "$multiply", Value: bson.A{"$value", 0.0000001}}}, 4,
			}}}},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
	return aggregate[DailyTokens](ctx, s.history(), pipeline)
}

func (s *MongoStore) AvgPromptsPerDay(ctx context.Context, since time.Time) ([]DailyCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: dayOf("$created_at")},
			{Key: "prompts", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "users", Value: bson.D{{Key: "$addToSet", Value: "$user_id"}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "date", Value: "$_id"},
			{Key: "value", Value: bson.D{{Key: "$round", Value: bson.A{
				bson.D{{Key: "$divide", Value: bson.A{
					"$prompts",
					bson.D{{Key: "$max", Value: bson.A{1, bson.D{{Key: "$size", Value: "$users"}}}}},
				}}},
				2,
			}}}},
			{Key: "_id", Value: 0},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: 1}}}},
	}
	return aggregate[DailyCount](ctx, s.history(), pipeline)
}

func (s *MongoStore) FeatureUsage(ctx context.Context) ([]FeatureCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$content_type"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "name", Value: "$_id"},
			{Key: "value", Value: "$count"},
			{Key: "_id", Value: 0},
		}}},
	}
	return aggregate[FeatureCount](ctx, s.history(), pipeline)
}

func (s *MongoStore) DistinctActiveUsers(ctx context.Context, since time.Time) (int64, error) {
	var users []string
	err := s.logins().
		Distinct(ctx, "user_id", bson.M{"timestamp": bson.M{"$gte": since}}).
		Decode(&users)
	if err != nil {
		return 0, err
	}
	return int64(len(users)), nil
}

func (s *MongoStore) UsageTotals(ctx context.Context, todayStart time.Time) (UsageTotals, error) {
	totals := UsageTotals{}

	var err error
	if totals.TotalUsers, err = s.users().CountDocuments(ctx, bson.M{}); err != nil {
		return totals, err
	}
	if totals.ActiveUsersToday, err = s.DistinctActiveUsers(ctx, todayStart); err != nil {
		return totals, err
	}
	if totals.TotalPrompts, err = s.history().CountDocuments(ctx, bson.M{}); err != nil {
		return totals, err
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total_chars", Value: bson.D{{Key: "$sum", Value: bson.D{{Key: "$strLenCP", Value: "$response"}}}}},
		}}},
	}
	sums, err := aggregate[struct {
		TotalChars int64 `bson:"total_chars"`
	}](ctx, s.history(), pipeline)
	if err != nil {
		return totals, err
	}
	if len(sums) > 0 {
		totals.TotalResponseChars = sums[0].TotalChars
	}

	return totals, nil
}
