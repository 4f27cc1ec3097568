package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/zdesklabs/zdesk/internal/bus"
	"github.com/zdesklabs/zdesk/internal/store"
)

// Store holds the notification queue and the do-not-disturb flag. Both
// persist under their own snapshot keys.
//
// All mutators are total: invalid input is a no-op, never an error.
type Store struct {
	mu      sync.Mutex
	backend store.Backend
	items   []Notification
	dnd     bool
	subs    map[int]func()
	nextSub int
}

// NewStore creates a notification store hydrated from the backend.
func NewStore(b store.Backend) *Store {
	items, _ := store.Load(b, store.KeyNotifications, []Notification(nil))
	dnd, _ := store.Load(b, store.KeyDoNotDisturb, false)
	return &Store{
		backend: b,
		items:   items,
		dnd:     dnd,
		subs:    make(map[int]func()),
	}
}

// Attach subscribes the store to the signal bus so external collaborators
// can post and dismiss without a direct reference. Returns an unsubscribe
// function detaching all three subscriptions.
func (s *Store) Attach(b *bus.Bus) func() {
	unsubPost := b.OnPost(func(sig bus.PostSignal) {
		s.AddNotification(Input{
			ID:      sig.ID,
			Type:    Type(sig.Type),
			Title:   sig.Title,
			Body:    sig.Body,
			AppIcon: sig.Icon,
			AppName: sig.AppName,
		})
	})
	unsubDismiss := b.OnDismiss(func(sig bus.DismissSignal) {
		s.Dismiss(sig.ID)
	})
	unsubAll := b.OnDismissAll(func() {
		s.DismissAll()
	})
	return func() {
		unsubPost()
		unsubDismiss()
		unsubAll()
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

// Notifications returns a copy of the queue, most recent first.
func (s *Store) Notifications() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Notification(nil), s.items...)
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// DoNotDisturb reports whether do-not-disturb is active.
func (s *Store) DoNotDisturb() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dnd
}

// AddNotification creates a notification and returns its id. While
// do-not-disturb is active it returns an empty id and performs no mutation.
// An empty title is likewise a no-op.
func (s *Store) AddNotification(in Input) string {
	if strings.TrimSpace(in.Title) == "" {
		return ""
	}

	s.mu.Lock()
	if s.dnd {
		s.mu.Unlock()
		return ""
	}

	id := in.ID
	if id == "" {
		id = store.NewID()
	}
	typ := in.Type
	if typ == "" {
		typ = TypeApp
	}

	n := Notification{
		ID:        id,
		Type:      typ,
		Title:     in.Title,
		Body:      in.Body,
		AppIcon:   in.AppIcon,
		AppName:   in.AppName,
		Timestamp: time.Now().UnixMilli(),
		Actions:   append([]Action(nil), in.Actions...),
	}
	s.items = append([]Notification{n}, s.items...)
	s.persistLocked()
	s.mu.Unlock()
	s.notifySubs()
	return id
}

// Dismiss removes one notification. Unknown ids are a no-op.
func (s *Store) Dismiss(id string) {
	s.mu.Lock()
	kept := s.items[:0]
	removed := false
	for _, n := range s.items {
		if n.ID == id {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()
	s.notifySubs()
}

// DismissAll removes every notification.
func (s *Store) DismissAll() {
	s.mu.Lock()
	s.items = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notifySubs()
}

// MarkAsRead marks one notification as read. Idempotent.
func (s *Store) MarkAsRead(id string) {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if s.items[i].ID == id && !s.items[i].Read {
			s.items[i].Read = true
			changed = true
			break
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notifySubs()
}

// MarkAllAsRead marks every notification as read.
func (s *Store) MarkAllAsRead() {
	s.mu.Lock()
	changed := false
	for i := range s.items {
		if !s.items[i].Read {
			s.items[i].Read = true
			changed = true
		}
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notifySubs()
}

// SetDoNotDisturb sets the do-not-disturb flag. Existing notifications are
// unaffected; only future posts are gated.
func (s *Store) SetDoNotDisturb(active bool) {
	s.mu.Lock()
	if s.dnd == active {
		s.mu.Unlock()
		return
	}
	s.dnd = active
	store.Save(s.backend, store.KeyDoNotDisturb, s.dnd)
	s.mu.Unlock()
	s.notifySubs()
}

// ToggleDoNotDisturb flips the do-not-disturb flag and returns the new
// value.
func (s *Store) ToggleDoNotDisturb() bool {
	s.mu.Lock()
	s.dnd = !s.dnd
	active := s.dnd
	store.Save(s.backend, store.KeyDoNotDisturb, s.dnd)
	s.mu.Unlock()
	s.notifySubs()
	return active
}

func (s *Store) persistLocked() {
	store.Save(s.backend, store.KeyNotifications, s.items)
}

func (s *Store) notifySubs() {
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
