// internal/roster/store_test.go
package roster

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tlycrimson/bot-website-api/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	path := t.TempDir() + "/test.db"
	database, err := db.New(path)
	if err != nil {
		t.Fatalf("failed to create db: %v", err)
	}
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestFilterPayload(t *testing.T) {
	payload := Members.FilterPayload(map[string]any{
		"username": "nelly",
		"xp":       100,
		"is_admin": true, // not a column, silently dropped
		"id":       "forged",
	})

	assert.Equal(t, map[string]any{"username": "nelly", "xp": 100}, payload)
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	row, err := store.Create(ctx, Members, map[string]any{"username": "nelly", "xp": 40, "user_id": "123"})
	require.NoError(t, err)
	require.NotEmpty(t, row["id"])
	assert.Equal(t, "nelly", row["username"])
	assert.EqualValues(t, 40, row["xp"])

	got, err := store.Get(ctx, Members, row["id"].(string))
	require.NoError(t, err)
	assert.Equal(t, row["id"], got["id"])
}

func TestCreateWithDefaults(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	row, err := store.Create(ctx, HRRecords, map[string]any{"username": "nelly"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, row["tryouts"])
	assert.EqualValues(t, 0, row["joint_events"])
	assert.Nil(t, row["user_id"])
}

func TestGetNotFound(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.Get(ctx, Members, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLeaderboardOrdersByXP(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	// 12 members; only the top 10 by XP should come back.
	for i := 0; i < 12; i++ {
		_, err := store.Create(ctx, Members, map[string]any{
			"username": "member",
			"user_id":  "u" + string(rune('a'+i)),
			"xp":       i * 10,
		})
		require.NoError(t, err)
	}

	results, err := store.Leaderboard(ctx)
	require.NoError(t, err)
	require.Len(t, results, 10)

	assert.EqualValues(t, 110, results[0]["xp"])
	assert.EqualValues(t, 20, results[9]["xp"])

	// Leaderboard rows expose only the public columns.
	_, hasID := results[0]["id"]
	assert.False(t, hasID)
}

func TestListOrdersByUserID(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.Create(ctx, LRRecords, map[string]any{"username": "b", "user_id": "2"})
	require.NoError(t, err)
	_, err = store.Create(ctx, LRRecords, map[string]any{"username": "a", "user_id": "1"})
	require.NoError(t, err)

	results, err := store.List(ctx, LRRecords)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "1", results[0]["user_id"])
	assert.Equal(t, "2", results[1]["user_id"])
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	row, err := store.Create(ctx, HRRecords, map[string]any{"username": "nelly", "tryouts": 1})
	require.NoError(t, err)
	id := row["id"].(string)

	updated, err := store.Update(ctx, HRRecords, id, map[string]any{"tryouts": 5, "events": 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, updated["tryouts"])
	assert.EqualValues(t, 2, updated["events"])
	assert.Equal(t, "nelly", updated["username"])
	assert.NotNil(t, updated["updated_at"])
}

func TestUpdateNotFound(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	_, err := store.Update(ctx, Members, "missing", map[string]any{"xp": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	row, err := store.Create(ctx, LRRecords, map[string]any{"username": "nelly"})
	require.NoError(t, err)
	id := row["id"].(string)

	require.NoError(t, store.Delete(ctx, LRRecords, id))

	_, err = store.Get(ctx, LRRecords, id)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again is still not an error.
	assert.NoError(t, store.Delete(ctx, LRRecords, id))
}
