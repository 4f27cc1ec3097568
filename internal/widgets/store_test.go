package widgets

import (
	"testing"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/store"
)

func newTestStore() *Store {
	return NewStore(store.NewMemory(), config.DefaultConfig())
}

func overlaps(a, b Widget) bool {
	aw, ah := Footprint(a.Size)
	bw, bh := Footprint(b.Size)
	return a.Position.X < b.Position.X+bw && b.Position.X < a.Position.X+aw &&
		a.Position.Y < b.Position.Y+bh && b.Position.Y < a.Position.Y+ah
}

func TestAddWidget_FirstAtUsableOrigin(t *testing.T) {
	cfg := config.DefaultConfig()
	s := NewStore(store.NewMemory(), cfg)

	w := s.AddWidget(TypeClock, SizeSmall)

	want := Position{X: cfg.WidgetMargin, Y: cfg.MenuBarHeight + cfg.WidgetMargin}
	if w.Position != want {
		t.Errorf("position = %+v, want %+v", w.Position, want)
	}
}

func TestAddWidget_NoOverlapWhileGridHasRoom(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 12; i++ {
		s.AddWidget(TypeWeather, SizeMedium)
	}

	ws := s.Widgets()
	for i := range ws {
		for j := i + 1; j < len(ws); j++ {
			if overlaps(ws[i], ws[j]) {
				t.Fatalf("widgets %d and %d overlap: %+v / %+v", i, j, ws[i], ws[j])
			}
		}
	}
}

func TestAddWidget_FallbackOffsetsFromLast(t *testing.T) {
	s := newTestStore()

	// Large widgets exhaust a 1920x1080 grid after ten placements.
	for i := 0; i < 10; i++ {
		s.AddWidget(TypePhotos, SizeLarge)
	}
	before := s.Widgets()
	last := before[len(before)-1]

	w := s.AddWidget(TypePhotos, SizeLarge)
	want := Position{X: last.Position.X + fallbackOffset, Y: last.Position.Y + fallbackOffset}
	if w.Position != want {
		t.Errorf("fallback position = %+v, want %+v", w.Position, want)
	}
}

func TestAddWidget_UnknownSizeFallsBackToSmall(t *testing.T) {
	s := newTestStore()

	w := s.AddWidget(TypeClock, Size("huge"))
	if w.Size != SizeSmall {
		t.Errorf("size = %q, want small", w.Size)
	}
}

func TestAddWidget_ClosesGallery(t *testing.T) {
	s := newTestStore()

	s.OpenGallery()
	s.AddWidget(TypeClock, SizeSmall)

	if s.GalleryOpen() {
		t.Error("gallery still open after add")
	}
}

func TestRemoveWidget(t *testing.T) {
	s := newTestStore()
	w := s.AddWidget(TypeClock, SizeSmall)

	s.RemoveWidget("missing")
	if len(s.Widgets()) != 1 {
		t.Fatal("unknown id removed something")
	}

	s.RemoveWidget(w.ID)
	if len(s.Widgets()) != 0 {
		t.Error("widget not removed")
	}
}

func TestMoveAndResize(t *testing.T) {
	s := newTestStore()
	w := s.AddWidget(TypeNotes, SizeSmall)

	s.MoveWidget(w.ID, Position{X: 500, Y: 400})
	s.ResizeWidget(w.ID, SizeLarge)

	got := s.Widgets()[0]
	if got.Position != (Position{X: 500, Y: 400}) {
		t.Errorf("position = %+v", got.Position)
	}
	if got.Size != SizeLarge {
		t.Errorf("size = %q, want large", got.Size)
	}
}

func TestUpdateWidget_PartialFields(t *testing.T) {
	s := newTestStore()
	w := s.AddWidget(TypeStocks, SizeMedium)

	s.UpdateWidget(w.ID, Update{Data: map[string]any{"symbol": "AAPL"}})

	got := s.Widgets()[0]
	if got.Size != SizeMedium {
		t.Error("nil size field changed the size")
	}
	if got.Data["symbol"] != "AAPL" {
		t.Errorf("data = %v", got.Data)
	}
}

func TestSessionFlags_NotPersisted(t *testing.T) {
	mem := store.NewMemory()
	cfg := config.DefaultConfig()

	s1 := NewStore(mem, cfg)
	s1.AddWidget(TypeClock, SizeSmall)
	s1.ToggleEditMode()
	s1.OpenGallery()

	s2 := NewStore(mem, cfg)
	if len(s2.Widgets()) != 1 {
		t.Fatal("widget list did not survive reload")
	}
	if s2.EditMode() || s2.GalleryOpen() {
		t.Error("session flags survived reload")
	}
}

func TestToggleEditMode(t *testing.T) {
	s := newTestStore()

	s.ToggleEditMode()
	if !s.EditMode() {
		t.Fatal("edit mode not enabled")
	}
	s.ToggleEditMode()
	if s.EditMode() {
		t.Error("edit mode not disabled")
	}
}
