package tags

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/zdesklabs/zdesk/internal/store"
)

// TagUpdate carries the mutable fields of UpdateTag. Nil fields are left
// unchanged.
type TagUpdate struct {
	Name  *string
	Color *Color
}

// FolderUpdate carries the mutable fields of UpdateSmartFolder. Nil fields
// are left unchanged.
type FolderUpdate struct {
	Name    *string
	Filters *[]Filter
}

// Store holds tags, the path→tag-id map, and smart folders. Each of the
// three collections persists under its own snapshot key.
//
// All mutators are total: invalid input is a no-op, never an error.
type Store struct {
	mu       sync.Mutex
	backend  store.Backend
	tags     []Tag
	fileTags map[string][]string
	folders  []SmartFolder
	subs     map[int]func()
	nextSub  int
}

// NewStore creates a tag store hydrated from the backend. On first run the
// seven default tags are seeded.
func NewStore(b store.Backend) *Store {
	tags, _ := store.Load(b, store.KeyTags, DefaultTags())
	fileTags, _ := store.Load(b, store.KeyFileTags, map[string][]string{})
	folders, _ := store.Load(b, store.KeySmartFolders, []SmartFolder(nil))
	if fileTags == nil {
		fileTags = make(map[string][]string)
	}
	return &Store{
		backend:  b,
		tags:     tags,
		fileTags: fileTags,
		folders:  folders,
		subs:     make(map[int]func()),
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

// Tags returns a copy of all tags.
func (s *Store) Tags() []Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tag(nil), s.tags...)
}

// CreateTag creates a tag and returns it. An empty name is a no-op
// returning nil; an unknown color falls back to gray.
func (s *Store) CreateTag(name string, color Color) *Tag {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	if !ValidColor(color) {
		color = ColorGray
	}

	tag := Tag{ID: store.NewID(), Name: name, Color: color}

	s.mu.Lock()
	s.tags = append(s.tags, tag)
	store.Save(s.backend, store.KeyTags, s.tags)
	s.mu.Unlock()
	s.notify()
	return &tag
}

// UpdateTag applies a partial update to the tag with the given id. Unknown
// ids, empty replacement names, and unknown colors are no-ops.
func (s *Store) UpdateTag(id string, upd TagUpdate) {
	s.mu.Lock()
	changed := false
	for i := range s.tags {
		if s.tags[i].ID != id {
			continue
		}
		if upd.Name != nil {
			if name := strings.TrimSpace(*upd.Name); name != "" {
				s.tags[i].Name = name
				changed = true
			}
		}
		if upd.Color != nil && ValidColor(*upd.Color) {
			s.tags[i].Color = *upd.Color
			changed = true
		}
		break
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	store.Save(s.backend, store.KeyTags, s.tags)
	s.mu.Unlock()
	s.notify()
}

// DeleteTag removes a tag and cascades its removal from every file's tag
// list. File entries whose tag list becomes empty are dropped from the map.
func (s *Store) DeleteTag(id string) {
	s.mu.Lock()
	kept := s.tags[:0]
	removed := false
	for _, t := range s.tags {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.tags = kept

	for path, ids := range s.fileTags {
		filtered := removeString(ids, id)
		if len(filtered) == 0 {
			delete(s.fileTags, path)
		} else {
			s.fileTags[path] = filtered
		}
	}

	store.Save(s.backend, store.KeyTags, s.tags)
	store.Save(s.backend, store.KeyFileTags, s.fileTags)
	s.mu.Unlock()
	s.notify()
}

// AddTagToFile appends a tag id to a path's tag list. Idempotent.
func (s *Store) AddTagToFile(path, tagID string) {
	if path == "" || tagID == "" {
		return
	}
	s.mu.Lock()
	ids := s.fileTags[path]
	for _, existing := range ids {
		if existing == tagID {
			s.mu.Unlock()
			return
		}
	}
	s.fileTags[path] = append(ids, tagID)
	store.Save(s.backend, store.KeyFileTags, s.fileTags)
	s.mu.Unlock()
	s.notify()
}

// RemoveTagFromFile removes a tag id from a path's tag list, dropping the
// path entry when the list becomes empty. Idempotent.
func (s *Store) RemoveTagFromFile(path, tagID string) {
	s.mu.Lock()
	ids, ok := s.fileTags[path]
	if !ok {
		s.mu.Unlock()
		return
	}
	filtered := removeString(ids, tagID)
	if len(filtered) == len(ids) {
		s.mu.Unlock()
		return
	}
	if len(filtered) == 0 {
		delete(s.fileTags, path)
	} else {
		s.fileTags[path] = filtered
	}
	store.Save(s.backend, store.KeyFileTags, s.fileTags)
	s.mu.Unlock()
	s.notify()
}

// SetFileTags replaces a path's tag list wholesale. An empty list deletes
// the path's map entry.
func (s *Store) SetFileTags(path string, tagIDs []string) {
	if path == "" {
		return
	}
	s.mu.Lock()
	if len(tagIDs) == 0 {
		delete(s.fileTags, path)
	} else {
		s.fileTags[path] = append([]string(nil), tagIDs...)
	}
	store.Save(s.backend, store.KeyFileTags, s.fileTags)
	s.mu.Unlock()
	s.notify()
}

// FileTags resolves a path's tag ids to live Tag records, silently dropping
// ids that reference a deleted tag.
func (s *Store) FileTags(path string) []Tag {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]Tag, len(s.tags))
	for _, t := range s.tags {
		byID[t.ID] = t
	}

	var resolved []Tag
	for _, id := range s.fileTags[path] {
		if t, ok := byID[id]; ok {
			resolved = append(resolved, t)
		}
	}
	return resolved
}

// FilesByTag returns all paths carrying the given tag id, sorted.
func (s *Store) FilesByTag(tagID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var paths []string
	for path, ids := range s.fileTags {
		for _, id := range ids {
			if id == tagID {
				paths = append(paths, path)
				break
			}
		}
	}
	sort.Strings(paths)
	return paths
}

// HasFileEntry reports whether the map holds an entry for path. Exposed so
// callers can observe the empty-list-drops-key invariant.
func (s *Store) HasFileEntry(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.fileTags[path]
	return ok
}

// SmartFolders returns a copy of all smart folders.
func (s *Store) SmartFolders() []SmartFolder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SmartFolder(nil), s.folders...)
}

// CreateSmartFolder saves a new filter definition and returns it. An empty
// name is a no-op returning nil.
func (s *Store) CreateSmartFolder(name string, filters []Filter) *SmartFolder {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}

	folder := SmartFolder{
		ID:        store.NewID(),
		Name:      name,
		Filters:   append([]Filter(nil), filters...),
		CreatedAt: time.Now().UnixMilli(),
	}

	s.mu.Lock()
	s.folders = append(s.folders, folder)
	store.Save(s.backend, store.KeySmartFolders, s.folders)
	s.mu.Unlock()
	s.notify()
	return &folder
}

// UpdateSmartFolder applies a partial update. Unknown ids are a no-op.
func (s *Store) UpdateSmartFolder(id string, upd FolderUpdate) {
	s.mu.Lock()
	changed := false
	for i := range s.folders {
		if s.folders[i].ID != id {
			continue
		}
		if upd.Name != nil {
			if name := strings.TrimSpace(*upd.Name); name != "" {
				s.folders[i].Name = name
				changed = true
			}
		}
		if upd.Filters != nil {
			s.folders[i].Filters = append([]Filter(nil), (*upd.Filters)...)
			changed = true
		}
		break
	}
	if !changed {
		s.mu.Unlock()
		return
	}
	store.Save(s.backend, store.KeySmartFolders, s.folders)
	s.mu.Unlock()
	s.notify()
}

// DeleteSmartFolder removes a filter definition. Unknown ids are a no-op.
func (s *Store) DeleteSmartFolder(id string) {
	s.mu.Lock()
	kept := s.folders[:0]
	removed := false
	for _, f := range s.folders {
		if f.ID == id {
			removed = true
			continue
		}
		kept = append(kept, f)
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.folders = kept
	store.Save(s.backend, store.KeySmartFolders, s.folders)
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

func removeString(ss []string, target string) []string {
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}
