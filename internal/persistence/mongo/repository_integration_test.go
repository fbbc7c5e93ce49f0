//go:build integration

package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	mongocontainer "github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"example.com/activities/internal/domain"
	persistence "example.com/activities/internal/persistence/mongo"
	"example.com/activities/internal/seed"
)

func TestRepositoryEnrollmentFlow(t *testing.T) {
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database("school_activities_test")
	require.NoError(t, seed.Run(ctx, db))

	repo := persistence.NewRepository(db)

	activities, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, activities, len(seed.Activities()))

	chess, err := repo.FindByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotNil(t, chess)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, chess.Participants)
	require.Equal(t, 12, chess.MaxParticipants)

	missing, err := repo.FindByName(ctx, "Knitting Circle")
	require.NoError(t, err)
	require.Nil(t, missing)

	modified, err := repo.AddParticipant(ctx, "Chess Club", "new@mergington.edu")
	require.NoError(t, err)
	require.True(t, modified)

	chess, err = repo.FindByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t,
		[]string{"michael@mergington.edu", "daniel@mergington.edu", "new@mergington.edu"},
		chess.Participants)

	// The conditional filter makes a duplicate add a no-op.
	modified, err = repo.AddParticipant(ctx, "Chess Club", "new@mergington.edu")
	require.NoError(t, err)
	require.False(t, modified)

	modified, err = repo.RemoveParticipant(ctx, "Chess Club", "daniel@mergington.edu")
	require.NoError(t, err)
	require.True(t, modified)

	chess, err = repo.FindByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu", "new@mergington.edu"}, chess.Participants)

	modified, err = repo.RemoveParticipant(ctx, "Chess Club", "stranger@mergington.edu")
	require.NoError(t, err)
	require.False(t, modified)
}

func TestSeedCreatesUniqueNameIndex(t *testing.T) {
	ctx := context.Background()

	container, err := mongocontainer.Run(ctx, "mongo:7")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	db := client.Database("school_activities_test")
	require.NoError(t, seed.Run(ctx, db))

	_, err = db.Collection(persistence.CollectionName).InsertOne(ctx, domain.Activity{
		Name:         "Chess Club",
		Description:  "duplicate",
		Schedule:     "never",
		Participants: []string{},
	})
	require.True(t, mongo.IsDuplicateKeyError(err))

	// Seeding twice resets the catalog instead of accumulating documents.
	require.NoError(t, seed.Run(ctx, db))
	count, err := db.Collection(persistence.CollectionName).CountDocuments(ctx, bson.D{})
	require.NoError(t, err)
	require.EqualValues(t, len(seed.Activities()), count)
}
