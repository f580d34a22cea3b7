package consumable

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/expirytracker/expirytracker-backend/pkg/enums"
	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
)

var storeToday = time.Date(2024, time.January, 8, 10, 30, 0, 0, time.Local)

func newTestStore() *Store {
	return NewStoreWithClock(func() time.Time { return storeToday })
}

func mustItem(t *testing.T, kind, name string, expiry time.Time) Item {
	t.Helper()
	item, err := New(kind, name, "", 1.0, 1.0, expiry)
	require.NoError(t, err)
	return item
}

func expiringIn(days int) time.Time {
	return storeToday.AddDate(0, 0, days)
}

func TestAddAssignsUniqueIDsAndSorts(t *testing.T) {
	store := newTestStore()

	store.Add(mustItem(t, "food", "Milk", date(2024, time.January, 10)))
	list := store.Add(mustItem(t, "drink", "Juice", date(2024, time.January, 5)))

	require.Len(t, list, 2)
	// Later expiry sorts first.
	require.Equal(t, "Milk", list[0].Name)
	require.Equal(t, "Juice", list[1].Name)

	require.NotEqual(t, uuid.Nil, list[0].ID)
	require.NotEqual(t, uuid.Nil, list[1].ID)
	require.NotEqual(t, list[0].ID, list[1].ID)
}

func TestRemoveExistingItem(t *testing.T) {
	store := newTestStore()
	list := store.Add(mustItem(t, "food", "Milk", expiringIn(3)))

	updated, err := store.Remove(list[0].ID)
	require.NoError(t, err)
	require.Empty(t, updated)
	require.Zero(t, store.Len())
}

func TestRemoveMissingIDLeavesStoreUnchanged(t *testing.T) {
	store := newTestStore()
	store.Add(mustItem(t, "food", "Milk", expiringIn(3)))
	before := store.List()

	_, err := store.Remove(uuid.New())
	require.Error(t, err)
	require.True(t, pkgerrors.Is(err, pkgerrors.CodeNotFound), "got %v", err)
	require.Equal(t, before, store.List())
}

func TestFilterExpiringSoonWindow(t *testing.T) {
	store := newTestStore()
	store.Add(mustItem(t, "food", "Today", expiringIn(0)))
	store.Add(mustItem(t, "food", "SevenDays", expiringIn(7)))
	store.Add(mustItem(t, "food", "EightDays", expiringIn(8)))
	store.Add(mustItem(t, "food", "Yesterday", expiringIn(-1)))

	soon := store.FilterItems(FilterExpiringSoon)
	names := itemNames(soon)
	require.ElementsMatch(t, []string{"Today", "SevenDays"}, names)
}

func TestExpiredAndNotExpiredPartitionTheStore(t *testing.T) {
	store := newTestStore()
	store.Add(mustItem(t, "food", "LongGone", expiringIn(-10)))
	store.Add(mustItem(t, "food", "Yesterday", expiringIn(-1)))
	store.Add(mustItem(t, "drink", "Today", expiringIn(0)))
	store.Add(mustItem(t, "drink", "NextWeek", expiringIn(7)))

	expired := store.FilterItems(FilterExpired)
	notExpired := store.FilterItems(FilterNotExpired)

	require.ElementsMatch(t, []string{"LongGone", "Yesterday"}, itemNames(expired))
	// Expiry on the current day counts as not expired.
	require.ElementsMatch(t, []string{"Today", "NextWeek"}, itemNames(notExpired))
	require.Equal(t, store.Len(), len(expired)+len(notExpired))
}

func TestFilterAllReturnsEverything(t *testing.T) {
	store := newTestStore()
	store.Add(mustItem(t, "food", "Milk", expiringIn(3)))
	store.Add(mustItem(t, "drink", "Juice", expiringIn(-3)))

	require.Len(t, store.FilterItems(FilterAll), 2)
}

func TestListReturnsSnapshotNotAlias(t *testing.T) {
	store := newTestStore()
	store.Add(mustItem(t, "food", "Milk", expiringIn(3)))

	list := store.List()
	list[0].Name = "Tampered"

	require.Equal(t, "Milk", store.List()[0].Name)
}

func TestReplaceSwapsAndSortsCollection(t *testing.T) {
	store := newTestStore()
	store.Add(mustItem(t, "food", "Old", expiringIn(1)))

	incoming := []Item{
		{ID: uuid.New(), Name: "Early", Expiry: date(2024, time.January, 5), Kind: enums.KindFood},
		{ID: uuid.New(), Name: "Late", Expiry: date(2024, time.January, 10), Kind: enums.KindDrink},
	}
	store.Replace(incoming)

	list := store.List()
	require.Equal(t, []string{"Late", "Early"}, itemNames(list))
}

func itemNames(items []Item) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
