package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/greeenboii/greeenboii"
	"github.com/greeenboii/greeenboii/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_CreateEntry(t *testing.T) {
	t.Parallel()

	t.Run("records entry with generated ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))

		entry := &greeenboii.HistoryEntry{Query: "golang", Links: 17, Failed: 1, Fingerprint: "00ff"}
		err := svc.CreateEntry(context.Background(), entry)

		require.NoError(t, err)
		assert.NotEmpty(t, entry.ID)
		assert.False(t, entry.SearchedAt.IsZero())
	})

	t.Run("keeps supplied timestamp", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		svc := sqlite.NewHistoryService(setupTestDB(t))
		at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

		require.NoError(t, svc.CreateEntry(ctx, &greeenboii.HistoryEntry{Query: "golang", SearchedAt: at}))

		entries, err := svc.FindEntries(ctx, greeenboii.HistoryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, at.Equal(entries[0].SearchedAt))
	})

	t.Run("returns error for missing query", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))

		err := svc.CreateEntry(context.Background(), &greeenboii.HistoryEntry{})

		assert.Equal(t, greeenboii.EINVALID, greeenboii.ErrorCode(err))
	})
}

func TestHistoryService_FindEntries(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *sqlite.HistoryService, queries ...string) {
		t.Helper()
		for _, q := range queries {
			require.NoError(t, svc.CreateEntry(context.Background(), &greeenboii.HistoryEntry{Query: q, Fingerprint: q + "-fp"}))
		}
	}

	t.Run("returns entries newest first", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))
		seed(t, svc, "one", "two", "three")

		entries, err := svc.FindEntries(context.Background(), greeenboii.HistoryFilter{})

		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "three", entries[0].Query)
		assert.Equal(t, "one", entries[2].Query)
	})

	t.Run("filters by query and limit", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewHistoryService(setupTestDB(t))
		seed(t, svc, "golang", "rust", "golang")

		query := "golang"
		entries, err := svc.FindEntries(context.Background(), greeenboii.HistoryFilter{Query: &query, Limit: 1})

		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "golang", entries[0].Query)
		assert.Equal(t, "golang-fp", entries[0].Fingerprint)
	})
}

func TestHistoryService_ClearHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := sqlite.NewHistoryService(setupTestDB(t))
	require.NoError(t, svc.CreateEntry(ctx, &greeenboii.HistoryEntry{Query: "a"}))
	require.NoError(t, svc.CreateEntry(ctx, &greeenboii.HistoryEntry{Query: "b"}))

	require.NoError(t, svc.ClearHistory(ctx))

	entries, err := svc.FindEntries(ctx, greeenboii.HistoryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}
