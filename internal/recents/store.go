package recents

import (
	"sync"
	"time"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/store"
)

// maxPerApp caps the per-application view of recent items.
const maxPerApp = 10

// Store holds the recent-items and recent-apps lists. Each persists under
// its own snapshot key.
//
// All mutators are total: invalid input is a no-op, never an error.
type Store struct {
	mu      sync.Mutex
	backend store.Backend
	cfg     *config.Config
	items   []Item
	apps    []string
	subs    map[int]func()
	nextSub int
}

// NewStore creates a recents store hydrated from the backend.
func NewStore(b store.Backend, cfg *config.Config) *Store {
	items, _ := store.Load(b, store.KeyRecents, []Item(nil))
	apps, _ := store.Load(b, store.KeyRecentApps, []string(nil))
	return &Store{
		backend: b,
		cfg:     cfg,
		items:   items,
		apps:    apps,
		subs:    make(map[int]func()),
	}
}

// Subscribe registers a change listener and returns an unsubscribe function.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Items returns a copy of recent items, most recent first.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// Apps returns a copy of recently used application ids, most recent first.
func (s *Store) Apps() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.apps...)
}

// AddRecent records an item. Re-adding an existing id moves it to the
// front with a refreshed timestamp. The list is truncated to the
// configured maximum. An empty id is a no-op.
func (s *Store) AddRecent(item Item) {
	if item.ID == "" {
		return
	}
	item.Timestamp = time.Now().UnixMilli()

	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.ID != item.ID {
			kept = append(kept, it)
		}
	}
	s.items = append([]Item{item}, kept...)
	if limit := s.cfg.RecentsMaxItems; limit > 0 && len(s.items) > limit {
		s.items = s.items[:limit]
	}
	store.Save(s.backend, store.KeyRecents, s.items)
	s.mu.Unlock()
	s.notify()
}

// AddRecentApp records an application id with the same move-to-front,
// dedupe rule over its own smaller cap. An empty id is a no-op.
func (s *Store) AddRecentApp(appID string) {
	if appID == "" {
		return
	}

	s.mu.Lock()
	kept := s.apps[:0]
	for _, id := range s.apps {
		if id != appID {
			kept = append(kept, id)
		}
	}
	s.apps = append([]string{appID}, kept...)
	if limit := s.cfg.RecentAppsMaxItems; limit > 0 && len(s.apps) > limit {
		s.apps = s.apps[:limit]
	}
	store.Save(s.backend, store.KeyRecentApps, s.apps)
	s.mu.Unlock()
	s.notify()
}

// ItemsForApp returns the items associated with an application id, most
// recent first, at most ten.
func (s *Store) ItemsForApp(appID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Item
	for _, it := range s.items {
		if it.AppID == appID {
			out = append(out, it)
			if len(out) == maxPerApp {
				break
			}
		}
	}
	return out
}

// Clear empties both lists.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.apps = nil
	store.Save(s.backend, store.KeyRecents, s.items)
	store.Save(s.backend, store.KeyRecentApps, s.apps)
	s.mu.Unlock()
	s.notify()
}

// ClearForApp removes only the given application's entries from the item
// list. The recent-apps list is untouched.
func (s *Store) ClearForApp(appID string) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, it := range s.items {
		if it.AppID == appID {
			removed = true
			continue
		}
		kept = append(kept, it)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.items = kept
	store.Save(s.backend, store.KeyRecents, s.items)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}
