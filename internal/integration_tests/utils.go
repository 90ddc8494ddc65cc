package integrationtests

import (
	"context"
	"testing"
	"time"

	"eduwrite-backend/internal/store"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupMongoContainer(t *testing.T, ctx context.Context) string {
	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "Failed to start MongoDB container")

	t.Cleanup(func() {
		err := mongoContainer.Terminate(context.Background())
		require.NoError(t, err, "Failed to terminate MongoDB container")
	})

	connStr, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	return connStr
}

func createStore(t *testing.T) *store.MongoStore {
	ctx := context.Background()
	uri := setupMongoContainer(t, ctx)

	mongoStore, err := store.NewMongoStore(ctx, uri, "eduwrite_test")
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, mongoStore.Close(context.Background()))
	})

	require.NoError(t, mongoStore.CreateIndexes(ctx))

	return mongoStore
}

func daysAgo(n int) time.Time {
	return time.Now().UTC().AddDate(0, 0, -n)
}
