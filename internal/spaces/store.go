package spaces

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/zdesklabs/zdesk/internal/store"
)

// Store holds the space collection. Invariants maintained by every
// mutator: exactly one space is active, the collection is never empty, and
// a window id belongs to at most one space.
//
// All mutators are total: invalid input is a no-op, never an error.
type Store struct {
	mu      sync.Mutex
	backend store.Backend
	spaces  []Space
	subs    map[int]func()
	nextSub int
}

// NewStore creates a spaces store hydrated from the backend. On first run
// a single default space is materialized, active, with no windows.
func NewStore(b store.Backend) *Store {
	def := []Space{{ID: DefaultSpaceID, Name: "Desktop 1", IsActive: true}}
	spaces, _ := store.Load(b, store.KeySpaces, def)
	if len(spaces) == 0 {
		spaces = def
	}
	return &Store{
		backend: b,
		spaces:  spaces,
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

// Spaces returns a copy of the ordered collection.
func (s *Store) Spaces() []Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Space, len(s.spaces))
	for i, sp := range s.spaces {
		out[i] = sp
		out[i].WindowIDs = append([]string(nil), sp.WindowIDs...)
	}
	return out
}

// ActiveSpace returns the currently active space.
func (s *Store) ActiveSpace() Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp := s.spaces[s.activeIndexLocked()]
	sp.WindowIDs = append([]string(nil), sp.WindowIDs...)
	return sp
}

// AddSpace appends a new inactive space with a sequential id and an
// auto-incremented display name, and returns it.
func (s *Store) AddSpace() Space {
	s.mu.Lock()
	sp := Space{
		ID:   fmt.Sprintf("space-%d", s.nextSequenceLocked()),
		Name: fmt.Sprintf("Desktop %d", len(s.spaces)+1),
	}
	s.spaces = append(s.spaces, sp)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return sp
}

// RemoveSpace deletes a space. Removing the last remaining space is
// rejected as a no-op. If the removed space was active, the first
// remaining space becomes active. Its windows are released, not moved.
func (s *Store) RemoveSpace(id string) {
	s.mu.Lock()
	if len(s.spaces) <= 1 {
		s.mu.Unlock()
		return
	}

	idx := -1
	for i, sp := range s.spaces {
		if sp.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return
	}

	wasActive := s.spaces[idx].IsActive
	s.spaces = append(s.spaces[:idx], s.spaces[idx+1:]...)
	if wasActive {
		for i := range s.spaces {
			s.spaces[i].IsActive = i == 0
		}
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// SetActiveSpace activates exactly the target space, deactivating all
// others. Unknown ids are a no-op.
func (s *Store) SetActiveSpace(id string) {
	s.mu.Lock()
	found := false
	for _, sp := range s.spaces {
		if sp.ID == id {
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return
	}
	for i := range s.spaces {
		s.spaces[i].IsActive = s.spaces[i].ID == id
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// RenameSpace updates a space's display name. Unknown ids and empty names
// are a no-op.
func (s *Store) RenameSpace(id, name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	s.mu.Lock()
	changed := false
	for i := range s.spaces {
		if s.spaces[i].ID == id {
			s.spaces[i].Name = name
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
	s.notify()
}

// MoveWindowToSpace assigns a window to a space, removing it from every
// other space first so a window belongs to at most one space. Unknown
// space ids are a no-op.
func (s *Store) MoveWindowToSpace(windowID, spaceID string) {
	if windowID == "" {
		return
	}
	s.mu.Lock()
	target := -1
	for i, sp := range s.spaces {
		if sp.ID == spaceID {
			target = i
			break
		}
	}
	if target < 0 {
		s.mu.Unlock()
		return
	}

	for i := range s.spaces {
		s.spaces[i].WindowIDs = removeString(s.spaces[i].WindowIDs, windowID)
	}
	s.spaces[target].WindowIDs = append(s.spaces[target].WindowIDs, windowID)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// WindowsInSpace returns the window ids owned by a space. Unknown ids
// yield an empty list.
func (s *Store) WindowsInSpace(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sp := range s.spaces {
		if sp.ID == id {
			return append([]string(nil), sp.WindowIDs...)
		}
	}
	return nil
}

// SpaceForWindow returns the space owning a window, defaulting to the
// active space when the window is unassigned.
func (s *Store) SpaceForWindow(windowID string) Space {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sp := range s.spaces {
		for _, w := range sp.WindowIDs {
			if w == windowID {
				sp.WindowIDs = append([]string(nil), sp.WindowIDs...)
				return sp
			}
		}
	}
	sp := s.spaces[s.activeIndexLocked()]
	sp.WindowIDs = append([]string(nil), sp.WindowIDs...)
	return sp
}

// GoToNextSpace activates the space after the current one, wrapping at the
// end of the collection.
func (s *Store) GoToNextSpace() {
	s.cycle(1)
}

// GoToPrevSpace activates the space before the current one, wrapping at
// the start of the collection.
func (s *Store) GoToPrevSpace() {
	s.cycle(-1)
}

func (s *Store) cycle(delta int) {
	s.mu.Lock()
	n := len(s.spaces)
	idx := (s.activeIndexLocked() + delta + n) % n
	id := s.spaces[idx].ID
	s.mu.Unlock()
	s.SetActiveSpace(id)
}

// activeIndexLocked returns the index of the active space. The invariant
// guarantees one exists; index 0 is the defensive default should a
// hand-edited snapshot violate it.
func (s *Store) activeIndexLocked() int {
	for i, sp := range s.spaces {
		if sp.IsActive {
			return i
		}
	}
	return 0
}

// nextSequenceLocked derives the next sequential space number from the
// highest existing id, so ids never collide after removals.
func (s *Store) nextSequenceLocked() int {
	next := 1
	for _, sp := range s.spaces {
		if numStr, ok := strings.CutPrefix(sp.ID, "space-"); ok {
			if n, err := strconv.Atoi(numStr); err == nil && n >= next {
				next = n + 1
			}
		}
	}
	return next
}

func (s *Store) persistLocked() {
	store.Save(s.backend, store.KeySpaces, s.spaces)
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

func removeString(ss []string, target string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
