package consumable

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/expirytracker/expirytracker-backend/pkg/errors"
)

// Filter selects a subset of the store by expiry status.
type Filter string

const (
	FilterAll          Filter = "all"
	FilterExpired      Filter = "expired"
	FilterNotExpired   Filter = "not_expired"
	FilterExpiringSoon Filter = "expiring_soon"
)

// expiringSoonWindowDays bounds the FilterExpiringSoon window, both ends
// inclusive.
const expiringSoonWindowDays = 7

// Store owns the authoritative in-memory item collection. All mutation goes
// through one mutex; reads hand out snapshot copies, never aliases.
type Store struct {
	mu    sync.RWMutex
	items []Item
	now   func() time.Time
}

// NewStore builds an empty store against the system clock.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock builds an empty store with an injectable clock. Tests use
// this to pin "today" for the expiry filters.
func NewStoreWithClock(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{items: []Item{}, now: now}
}

// List returns a copy of the full ordered collection.
func (s *Store) List() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot(s.items)
}

// Len returns the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// FilterItems returns the subsequence matching the criterion, evaluated
// against today's date at call time. Expiry on the current day counts as not
// expired.
func (s *Store) FilterItems(criterion Filter) []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if criterion == FilterAll {
		return snapshot(s.items)
	}

	today := s.now()
	filtered := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		days := item.DaysUntilExpiry(today)
		switch criterion {
		case FilterExpired:
			if days < 0 {
				filtered = append(filtered, item)
			}
		case FilterNotExpired:
			if days >= 0 {
				filtered = append(filtered, item)
			}
		case FilterExpiringSoon:
			if days >= 0 && days <= expiringSoonWindowDays {
				filtered = append(filtered, item)
			}
		}
	}
	return filtered
}

// Add assigns a fresh id, inserts the item and re-sorts the collection.
// Returns the updated full list.
func (s *Store) Add(item Item) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New()
	s.items = append(s.items, item)
	s.sortLocked()
	return snapshot(s.items)
}

// Remove deletes the item with the given id and returns the updated full
// list. A missing id leaves the store untouched.
func (s *Store) Remove(id uuid.UUID) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:idx], s.items[idx+1:]...)
			return snapshot(s.items), nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no item with id "+id.String())
}

// Sort re-applies the natural ordering. Idempotent; ties between same-day
// expiries may land in either order.
func (s *Store) Sort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortLocked()
}

// Replace swaps the whole collection, used by the persistence gateway when
// loading from file. The incoming slice is copied and sorted.
func (s *Store) Replace(items []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = snapshot(items)
	s.sortLocked()
}

func (s *Store) sortLocked() {
	sort.Slice(s.items, func(i, j int) bool {
		return s.items[i].Less(s.items[j])
	})
}

func snapshot(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
