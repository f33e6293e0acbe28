package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Favorite{}))
	return db
}

func TestGormRemoteRoundTrip(t *testing.T) {
	remote := NewGormRemote(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, remote.Add(ctx, "alice", "p1"))
	require.NoError(t, remote.Add(ctx, "alice", "p2"))
	require.NoError(t, remote.Add(ctx, "bob", "p1"))

	ids, err := remote.List(ctx, "alice")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2"}, ids)

	ids, err = remote.List(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)

	require.NoError(t, remote.Remove(ctx, "alice", "p1"))
	ids, err = remote.List(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"p2"}, ids)

	// bob's row for the same product is untouched
	ids, err = remote.List(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, ids)
}

func TestGormRemotePairIsUnique(t *testing.T) {
	remote := NewGormRemote(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, remote.Add(ctx, "alice", "p1"))
	assert.Error(t, remote.Add(ctx, "alice", "p1"), "duplicate pair must violate the unique index")
}

func TestGormRemoteRemoveMissingPairIsIdempotent(t *testing.T) {
	remote := NewGormRemote(newTestDB(t))
	ctx := context.Background()

	assert.NoError(t, remote.Remove(ctx, "alice", "never-added"))
}

func TestGormRemoteEmptyListIsNotAnError(t *testing.T) {
	remote := NewGormRemote(newTestDB(t))

	ids, err := remote.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
