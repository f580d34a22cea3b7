package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/expirytracker/expirytracker-backend/internal/consumable"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
)

func newGateway(t *testing.T) (*Gateway, *consumable.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "itemList.json")
	store := consumable.NewStore()
	return NewGateway(path, store, nil), store, path
}

func TestLoadMissingFileCreatesEmptyOne(t *testing.T) {
	gw, store, path := newGateway(t)

	require.NoError(t, gw.Load(context.Background()))
	require.Zero(t, store.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	items, err := consumable.DecodeItems(data)
	require.NoError(t, err)
	require.Empty(t, items)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	gw, store, path := newGateway(t)

	expiry := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.Local)
	item, err := consumable.New("food", "Milk", "2L", 3.5, 1.0, expiry)
	require.NoError(t, err)
	store.Add(item)

	require.NoError(t, gw.Save(context.Background()))

	freshStore := consumable.NewStore()
	fresh := NewGateway(path, freshStore, nil)
	require.NoError(t, fresh.Load(context.Background()))

	require.Equal(t, 1, freshStore.Len())
	loaded := freshStore.List()[0]
	require.Equal(t, "Milk", loaded.Name)
	require.Equal(t, expiry, loaded.Expiry)
}

func TestLoadCorruptFileReportsButLeavesStoreUsable(t *testing.T) {
	gw, store, path := newGateway(t)
	require.NoError(t, os.WriteFile(path, []byte("{{{ not json"), 0o644))

	err := gw.Load(context.Background())
	require.Error(t, err)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeCorruptPersistence), "got %v", err)
	require.Zero(t, store.Len(), "store must stay empty and usable after a corrupt load")
}

func TestLoadUnknownVariantFailsWholeFile(t *testing.T) {
	gw, store, path := newGateway(t)
	payload := `[{"id":"7f8a1f8e-54a8-4f5e-9d0a-0f8f8b2c9e11","name":"Mystery","notes":"","price":1,"matter":1,"expiry":"2024-01-10T23:59:00","kind":"something.else.Entirely"}]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	err := gw.Load(context.Background())
	require.Error(t, err)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeCorruptPersistence), "got %v", err)
	require.Zero(t, store.Len())
}

func TestLoadLegacyVocabularyFile(t *testing.T) {
	gw, store, path := newGateway(t)
	payload := `[
		{"id":"4f0c8a38-1111-4f5e-9d0a-0f8f8b2c9e11","name":"Milk","notes":"","price":3.5,"matter":1,"expiry":"2024-01-10T23:59","kind":"ca.cmpt213.a4.client.model.Food"},
		{"id":"4f0c8a38-2222-4f5e-9d0a-0f8f8b2c9e11","name":"Juice","notes":"","price":4,"matter":2,"expiry":"2024-01-05T23:59","kind":"expiryTracker.webappserver.model.Drink"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	require.NoError(t, gw.Load(context.Background()))
	require.Equal(t, 2, store.Len())
	for _, item := range store.List() {
		require.True(t, item.Kind.IsValid(), "kind %q must be normalized to the canonical vocabulary", item.Kind)
	}

	// Saving rewrites the file in the canonical vocabulary only.
	require.NoError(t, gw.Save(context.Background()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "cmpt213")
	require.NotContains(t, string(data), "webappserver")
	require.Contains(t, string(data), `"food"`)
	require.Contains(t, string(data), `"drink"`)
}
