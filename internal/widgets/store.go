package widgets

import (
	"sync"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/store"
)

// fallbackOffset is the diagonal step applied off the last-placed widget
// when the grid scan finds no free cell. Placement in this path may
// overlap existing widgets; known limitation.
const fallbackOffset = 40

// Store holds placed widgets plus the session-only edit-mode and gallery
// flags. Only the widget list persists.
//
// All mutators are total: invalid input is a no-op, never an error.
type Store struct {
	mu          sync.Mutex
	backend     store.Backend
	cfg         *config.Config
	widgets     []Widget
	editMode    bool
	galleryOpen bool
	subs        map[int]func()
	nextSub     int
}

// NewStore creates a widget store hydrated from the backend. Edit mode
// and the gallery always start closed.
func NewStore(b store.Backend, cfg *config.Config) *Store {
	widgets, _ := store.Load(b, store.KeyWidgets, []Widget(nil))
	return &Store{
		backend: b,
		cfg:     cfg,
		widgets: widgets,
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

// Widgets returns a copy of the placed widgets in placement order.
func (s *Store) Widgets() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Widget(nil), s.widgets...)
}

// EditMode reports whether edit mode is on.
func (s *Store) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

// GalleryOpen reports whether the widget gallery is showing.
func (s *Store) GalleryOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.galleryOpen
}

// AddWidget places a new widget of the given type and size at the first
// free grid cell and returns it. Adding a widget closes the gallery.
// An unknown size falls back to small.
func (s *Store) AddWidget(typ Type, size Size) Widget {
	switch size {
	case SizeSmall, SizeMedium, SizeLarge:
	default:
		size = SizeSmall
	}

	s.mu.Lock()
	w := Widget{
		ID:       store.NewID(),
		Type:     typ,
		Size:     size,
		Position: s.findPlacementLocked(size),
	}
	s.widgets = append(s.widgets, w)
	s.galleryOpen = false
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
	return w
}

// RemoveWidget deletes a widget. Unknown ids are a no-op.
func (s *Store) RemoveWidget(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.widgets = append(s.widgets[:idx], s.widgets[idx+1:]...)
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// UpdateWidget applies a partial update to a widget. Unknown ids are a
// no-op.
func (s *Store) UpdateWidget(id string, upd Update) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	if upd.Position != nil {
		s.widgets[idx].Position = *upd.Position
	}
	if upd.Size != nil {
		s.widgets[idx].Size = *upd.Size
	}
	if upd.Data != nil {
		s.widgets[idx].Data = upd.Data
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// MoveWidget repositions a widget.
func (s *Store) MoveWidget(id string, pos Position) {
	s.UpdateWidget(id, Update{Position: &pos})
}

// ResizeWidget changes a widget's size tier in place.
func (s *Store) ResizeWidget(id string, size Size) {
	s.UpdateWidget(id, Update{Size: &size})
}

// ToggleEditMode flips edit mode. Session-only, never persisted.
func (s *Store) ToggleEditMode() {
	s.mu.Lock()
	s.editMode = !s.editMode
	s.mu.Unlock()
	s.notify()
}

// OpenGallery shows the widget gallery. Session-only.
func (s *Store) OpenGallery() {
	s.setGallery(true)
}

// CloseGallery hides the widget gallery. Session-only.
func (s *Store) CloseGallery() {
	s.setGallery(false)
}

func (s *Store) setGallery(open bool) {
	s.mu.Lock()
	if s.galleryOpen == open {
		s.mu.Unlock()
		return
	}
	s.galleryOpen = open
	s.mu.Unlock()
	s.notify()
}

// findPlacementLocked scans the usable screen area row by row from the
// top-left for the first cell whose footprint overlaps no existing
// widget. The usable area sits below the menu bar and above the dock.
// When the scan is exhausted the position falls back to a diagonal
// offset from the last-placed widget.
func (s *Store) findPlacementLocked(size Size) Position {
	w, h := Footprint(size)
	margin := s.cfg.WidgetMargin
	minX := margin
	minY := s.cfg.MenuBarHeight + margin
	maxX := s.cfg.ScreenWidth - margin
	maxY := s.cfg.ScreenHeight - s.cfg.DockHeight - margin

	for y := minY; y+h <= maxY; y += h + margin {
		for x := minX; x+w <= maxX; x += w + margin {
			if !s.overlapsAnyLocked(x, y, w, h) {
				return Position{X: x, Y: y}
			}
		}
	}

	if n := len(s.widgets); n > 0 {
		last := s.widgets[n-1].Position
		return Position{X: last.X + fallbackOffset, Y: last.Y + fallbackOffset}
	}
	return Position{X: minX, Y: minY}
}

func (s *Store) overlapsAnyLocked(x, y, w, h int) bool {
	for _, placed := range s.widgets {
		pw, ph := Footprint(placed.Size)
		px, py := placed.Position.X, placed.Position.Y
		if x < px+pw && px < x+w && y < py+ph && py < y+h {
			return true
		}
	}
	return false
}

func (s *Store) indexLocked(id string) int {
	for i, w := range s.widgets {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) persistLocked() {
	store.Save(s.backend, store.KeyWidgets, s.widgets)
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
