package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/JonMunkholm/bankimport/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "ledger.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestStore_FindTransactions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, []Transaction{
		{ID: "tx-1", UserID: "u", AccountID: "a", Date: day(10), Amount: decimal.RequireFromString("-45.00"), Description: "Coffee House"},
		{ID: "tx-2", UserID: "u", AccountID: "a", Date: day(15), Amount: decimal.RequireFromString("-12.50"), Description: "Bookstore"},
		{ID: "tx-3", UserID: "u", AccountID: "other", Date: day(10), Amount: decimal.RequireFromString("-45.00"), Description: "Coffee House"},
		{ID: "tx-4", UserID: "v", AccountID: "a", Date: day(10), Amount: decimal.RequireFromString("-45.00"), Description: "Coffee House"},
	}))

	got, err := store.FindTransactions(ctx, "u", "a", day(9), day(11))
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, "tx-1", got[0].ID)
	assert.Equal(t, "Coffee House", got[0].Description)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("-45")))
	assert.Equal(t, day(10), got[0].Date)
}

func TestStore_FindTransactions_InclusiveBounds(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, []Transaction{
		{ID: "tx-1", UserID: "u", AccountID: "a", Date: day(10), Amount: decimal.NewFromInt(1)},
		{ID: "tx-2", UserID: "u", AccountID: "a", Date: day(12), Amount: decimal.NewFromInt(2)},
	}))

	got, err := store.FindTransactions(ctx, "u", "a", day(10), day(12))
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestStore_InsertDuplicateIDRollsBack(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	err := store.Insert(ctx, []Transaction{
		{ID: "tx-1", UserID: "u", AccountID: "a", Date: day(10), Amount: decimal.NewFromInt(1)},
		{ID: "tx-1", UserID: "u", AccountID: "a", Date: day(11), Amount: decimal.NewFromInt(2)},
	})
	require.Error(t, err)

	got, err := store.FindTransactions(ctx, "u", "a", day(1), day(31))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_DrivesDuplicateDetection(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, []Transaction{
		{ID: "tx-1", UserID: "u", AccountID: "a", Date: day(10), Amount: decimal.RequireFromString("-45.00"), Description: "COFFEE HOUSE"},
	}))

	txns := []core.ParsedTransaction{{
		TempID:      "c",
		Date:        day(11),
		Amount:      decimal.RequireFromString("-45.00"),
		Description: "Coffee House",
		IsValid:     true,
	}}

	result := core.CheckForDuplicates(ctx, store, "u", "a", txns)
	require.False(t, result.Degraded)
	require.Contains(t, result.Matches, "c")
	assert.Equal(t, "tx-1", result.Matches["c"].ExistingID)
	assert.Equal(t, 91, result.Matches["c"].Confidence)
}
