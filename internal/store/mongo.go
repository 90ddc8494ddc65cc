package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// MongoStore implements Store on MongoDB collections: users, logins,
// history, documents.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Database exposes the underlying database handle.
func (s *MongoStore) Database() *mongo.Database {
	return s.db
}

func (s *MongoStore) users() *mongo.Collection     { return s.db.Collection("users") }
func (s *MongoStore) logins() *mongo.Collection    { return s.db.Collection("logins") }
func (s *MongoStore) history() *mongo.Collection   { return s.db.Collection("history") }
func (s *MongoStore) documents() *mongo.Collection { return s.db.Collection("documents") }

// CreateIndexes sets up the indexes the stores rely on. The unique index on
// users.email is what makes concurrent duplicate-user creation safe.
func (s *MongoStore) CreateIndexes(ctx context.Context) error {
	_, err := s.users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users index: %w", err)
	}

	_, err = s.history().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create history index: %w", err)
	}

	_, err = s.documents().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create documents index: %w", err)
	}

	_, err = s.logins().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create logins index: %w", err)
	}

	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *User) error {
	result, err := s.users().InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	user.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id bson.ObjectID) (User, error) {
	var user User
	err := s.users().FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.users().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return User{}, ErrNotFound
	}
	return user, err
}

func (s *MongoStore) UpdatePassword(ctx context.Context, id bson.ObjectID, hash string) error {
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"password": hash}})
	return err
}

func (s *MongoStore) UpdateLastLogin(ctx context.Context, id bson.ObjectID, at time.Time) error {
	_, err := s.users().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (s *MongoStore) RecordLogin(ctx context.Context, event *LoginEvent) error {
	result, err := s.logins().InsertOne(ctx, event)
	if err != nil {
		return err
	}
	event.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (s *MongoStore) AddRecord(ctx context.Context, record *GenerationRecord) error {
	result, err := s.history().InsertOne(ctx, record)
	if err != nil {
		return err
	}
	record.ID = result.InsertedID.(bson.ObjectID)
	return nil
}

func (s *MongoStore) ListRecords(ctx context.Context, userID string, limit int64) ([]GenerationRecord, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetLimit(limit)

	cursor, err := s.history().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []GenerationRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *MongoStore) ClearRecords(ctx context.Context, userID string) (int64, error) {
	result, err := s.history().DeleteMany(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	deleted := result.DeletedCount

	// Legacy records stored the owner as a raw ObjectID instead of its hex
	// string; sweep those too when the identifier permits it.
	if IsObjectIDHex(userID) {
		if id, err := bson.ObjectIDFromHex(userID); err == nil {
			legacy, err := s.history().DeleteMany(ctx, bson.M{"user_id": id})
			if err != nil {
				return deleted, err
			}
			deleted += legacy.DeletedCount
		}
	}

	return deleted, nil
}

func (s *MongoStore) CreateDocument(ctx context.Context, doc *Document) (bson.ObjectID, error) {
	result, err := s.documents().InsertOne(ctx, doc)
	if err != nil {
		return bson.ObjectID{}, err
	}
	doc.ID = result.InsertedID.(bson.ObjectID)
	return doc.ID, nil
}

func (s *MongoStore) ListDocuments(ctx context.Context, userID string) ([]Document, error) {
	opts := options.Find().SetSort(bson.M{"created_at": -1})

	cursor, err := s.documents().Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
