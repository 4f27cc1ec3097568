package clipboard

import (
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/store"
)

// Store holds clipboard history, most recent first. The capacity cap counts
// only unpinned entries; pinned entries are never evicted.
//
// All mutators are total: invalid input (empty content, unknown id) is a
// no-op, never an error.
type Store struct {
	mu      sync.Mutex
	backend store.Backend
	cfg     *config.Config
	items   []Item
	subs    map[int]func()
	nextSub int

	// Injected system-clipboard access, replaceable in tests.
	writeClipboard func(string) error
	readClipboard  func() (string, error)
}

// NewStore creates a clipboard store hydrated from the backend snapshot.
// A missing or malformed snapshot yields an empty history.
func NewStore(b store.Backend, cfg *config.Config) *Store {
	items, _ := store.Load(b, store.KeyClipboard, []Item(nil))
	return &Store{
		backend:        b,
		cfg:            cfg,
		items:          items,
		subs:           make(map[int]func()),
		writeClipboard: clipboard.WriteAll,
		readClipboard:  clipboard.ReadAll,
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

// Items returns a copy of the history, most recent first.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// AddItem records copied content. Empty or whitespace-only content is a
// no-op. If itemType is empty it is inferred from the content shape. A
// previous entry with identical content is replaced rather than duplicated.
func (s *Store) AddItem(content string, itemType ItemType) {
	if strings.TrimSpace(content) == "" {
		return
	}
	if itemType == "" {
		itemType = InferType(content)
	}

	item := Item{
		ID:        store.NewID(),
		Type:      itemType,
		Content:   content,
		Preview:   BuildPreview(content, itemType, s.cfg.ClipboardPreviewChars),
		Timestamp: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.items = removeByContent(s.items, content)
	s.items = append([]Item{item}, s.items...)
	s.evictLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// RemoveItem deletes the entry with the given id. Unknown ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	s.items = removeByID(s.items, id)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// ClearHistory removes all unpinned entries. Pinned entries survive.
func (s *Store) ClearHistory() {
	s.mu.Lock()
	kept := s.items[:0]
	for _, it := range s.items {
		if it.Pinned {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// PinItem marks an entry as pinned, exempting it from eviction. The entry
// keeps its position in the history. Idempotent.
func (s *Store) PinItem(id string) {
	s.setPinned(id, true)
}

// UnpinItem clears an entry's pinned flag, making it evictable again.
// Idempotent.
func (s *Store) UnpinItem(id string) {
	s.setPinned(id, false)
}

// PasteItem writes the entry's content back to the system clipboard. It
// does not mutate history. Unknown ids and clipboard write failures are
// silently ignored.
func (s *Store) PasteItem(id string) {
	s.mu.Lock()
	var content string
	found := false
	for _, it := range s.items {
		if it.ID == id {
			content = it.Content
			found = true
			break
		}
	}
	s.mu.Unlock()
	if !found {
		return
	}
	_ = s.writeClipboard(content)
}

func (s *Store) setPinned(id string, pinned bool) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id && s.items[i].Pinned != pinned {
			s.items[i].Pinned = pinned
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	// Unpinning can push the unpinned count past the cap
	s.evictLocked()
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// evictLocked drops the oldest unpinned entries while the unpinned count
// exceeds the cap.
func (s *Store) evictLocked() {
	limit := s.cfg.ClipboardMaxItems
	if limit <= 0 {
		return
	}
	unpinned := 0
	for _, it := range s.items {
		if !it.Pinned {
			unpinned++
		}
	}
	for i := len(s.items) - 1; i >= 0 && unpinned > limit; i-- {
		if !s.items[i].Pinned {
			s.items = append(s.items[:i], s.items[i+1:]...)
			unpinned--
		}
	}
}

func (s *Store) persistLocked() {
	store.Save(s.backend, store.KeyClipboard, s.items)
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

func removeByContent(items []Item, content string) []Item {
	out := items[:0]
	for _, it := range items {
		if it.Content != content {
			out = append(out, it)
		}
	}
	return out
}

func removeByID(items []Item, id string) []Item {
	out := items[:0]
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
