package stores

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventecheck/ventecheck/internal/core/sale"
)

func testRecord(id string) sale.Record {
	return sale.Record{
		ID:   id,
		Date: time.Date(2026, 3, 12, 14, 0, 0, 0, time.UTC),
		Client: sale.Client{
			Nom:    "Dupont",
			Prenom: "Jean",
		},
		ServicesCount: 2,
		Quality:       sale.QualityBon,
	}
}

func TestSaleStore_EmptyHistory(t *testing.T) {
	store := NewSaleStore(NewKVStore(t.TempDir()))

	records, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaleStore_AppendNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewSaleStore(NewKVStore(t.TempDir()))

	require.NoError(t, store.Append(ctx, testRecord("a"), 100))
	require.NoError(t, store.Append(ctx, testRecord("b"), 100))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}

func TestSaleStore_CapacityTruncates(t *testing.T) {
	ctx := context.Background()
	store := NewSaleStore(NewKVStore(t.TempDir()))

	for i := range 5 {
		require.NoError(t, store.Append(ctx, testRecord(strconv.Itoa(i)), 3))
	}

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "4", records[0].ID)
	assert.Equal(t, "2", records[2].ID)
}

func TestSaleStore_RemoveAt(t *testing.T) {
	ctx := context.Background()
	store := NewSaleStore(NewKVStore(t.TempDir()))

	require.NoError(t, store.Append(ctx, testRecord("a"), 100))
	require.NoError(t, store.Append(ctx, testRecord("b"), 100))

	require.NoError(t, store.RemoveAt(ctx, 0))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)

	err = store.RemoveAt(ctx, 5)
	assert.ErrorIs(t, err, sale.ErrNotFound)
}

func TestSaleStore_Clear(t *testing.T) {
	ctx := context.Background()
	store := NewSaleStore(NewKVStore(t.TempDir()))

	require.NoError(t, store.Append(ctx, testRecord("a"), 100))
	require.NoError(t, store.Clear(ctx))

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSaleStore_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	kv := NewKVStore(t.TempDir())
	store := NewSaleStore(kv)

	require.NoError(t, kv.Set(HistoryKey, []byte("pas du json")))

	_, err := store.List(ctx)
	assert.ErrorIs(t, err, ErrCorrupt)

	// Appending over a corrupt history starts a fresh one.
	require.NoError(t, store.Append(ctx, testRecord("a"), 100))

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}

func TestSaleStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, NewSaleStore(NewKVStore(dir)).Append(ctx, testRecord("a"), 100))

	records, err := NewSaleStore(NewKVStore(dir)).List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Jean Dupont", records[0].Client.FullName())
}
