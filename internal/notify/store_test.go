package notify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zdesklabs/zdesk/internal/bus"
	"github.com/zdesklabs/zdesk/internal/store"
)

func TestAddNotification(t *testing.T) {
	s := NewStore(store.NewMemory())

	id := s.AddNotification(Input{Title: "Build finished", AppName: "terminal"})
	if id == "" {
		t.Fatal("empty id")
	}

	items := s.Notifications()
	if len(items) != 1 {
		t.Fatalf("len = %d, want 1", len(items))
	}
	if items[0].Read {
		t.Error("new notification should be unread")
	}
	if items[0].Type != TypeApp {
		t.Errorf("Type = %q, want default app", items[0].Type)
	}
	if s.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d, want 1", s.UnreadCount())
	}
}

func TestAddNotification_EmptyTitleNoOp(t *testing.T) {
	s := NewStore(store.NewMemory())

	if id := s.AddNotification(Input{Title: "  "}); id != "" {
		t.Errorf("id = %q, want empty", id)
	}
	if len(s.Notifications()) != 0 {
		t.Error("list mutated")
	}
}

func TestAddNotification_PrependsNewest(t *testing.T) {
	s := NewStore(store.NewMemory())

	s.AddNotification(Input{Title: "first"})
	s.AddNotification(Input{Title: "second"})

	items := s.Notifications()
	if items[0].Title != "second" || items[1].Title != "first" {
		t.Errorf("order = %q, %q", items[0].Title, items[1].Title)
	}
}

func TestDoNotDisturb_SuppressesAdds(t *testing.T) {
	s := NewStore(store.NewMemory())

	s.AddNotification(Input{Title: "before"})
	s.SetDoNotDisturb(true)

	id := s.AddNotification(Input{Title: "X"})
	if id != "" {
		t.Errorf("id = %q, want empty under DND", id)
	}
	if len(s.Notifications()) != 1 {
		t.Error("list changed under DND")
	}
	if s.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d, want 1 (unchanged)", s.UnreadCount())
	}

	// Existing entries are unaffected by DND
	if s.Notifications()[0].Title != "before" {
		t.Error("existing notification affected by DND")
	}

	// Dropped permanently: disabling DND does not deliver the suppressed one
	s.SetDoNotDisturb(false)
	if len(s.Notifications()) != 1 {
		t.Error("suppressed notification was queued, want dropped")
	}
}

func TestToggleDoNotDisturb(t *testing.T) {
	s := NewStore(store.NewMemory())

	if !s.ToggleDoNotDisturb() {
		t.Error("first toggle should enable")
	}
	if s.ToggleDoNotDisturb() {
		t.Error("second toggle should disable")
	}
}

func TestMarkAsRead(t *testing.T) {
	s := NewStore(store.NewMemory())

	id := s.AddNotification(Input{Title: "one"})
	s.AddNotification(Input{Title: "two"})

	s.MarkAsRead(id)
	if s.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d, want 1", s.UnreadCount())
	}

	// Idempotent
	s.MarkAsRead(id)
	if s.UnreadCount() != 1 {
		t.Errorf("UnreadCount = %d after re-mark, want 1", s.UnreadCount())
	}

	s.MarkAllAsRead()
	if s.UnreadCount() != 0 {
		t.Errorf("UnreadCount = %d, want 0", s.UnreadCount())
	}
}

func TestDismiss(t *testing.T) {
	s := NewStore(store.NewMemory())

	id := s.AddNotification(Input{Title: "one"})
	s.AddNotification(Input{Title: "two"})

	s.Dismiss(id)
	if len(s.Notifications()) != 1 {
		t.Fatalf("len = %d, want 1", len(s.Notifications()))
	}

	// Unknown id is a no-op
	s.Dismiss("nonexistent")
	if len(s.Notifications()) != 1 {
		t.Error("Dismiss of unknown id mutated list")
	}

	s.DismissAll()
	if len(s.Notifications()) != 0 {
		t.Error("DismissAll left entries")
	}
}

func TestRoundTrip_PersistedState(t *testing.T) {
	mem := store.NewMemory()

	s1 := NewStore(mem)
	s1.AddNotification(Input{Title: "persisted", Body: "still here"})
	s1.SetDoNotDisturb(true)

	s2 := NewStore(mem)
	require.Equal(t, s1.Notifications(), s2.Notifications())
	require.True(t, s2.DoNotDisturb())
}

func TestBusWiring(t *testing.T) {
	b := bus.New()
	s := NewStore(store.NewMemory())
	detach := s.Attach(b)

	b.Post(bus.PostSignal{Title: "From afar", AppName: "finder"})
	require.Len(t, s.Notifications(), 1)
	require.Equal(t, "From afar", s.Notifications()[0].Title)

	id := s.Notifications()[0].ID
	b.Dismiss(id)
	require.Empty(t, s.Notifications())

	b.Post(bus.PostSignal{Title: "one"})
	b.Post(bus.PostSignal{Title: "two"})
	b.DismissAll()
	require.Empty(t, s.Notifications())

	// Inbound posts are suppressed under DND
	s.SetDoNotDisturb(true)
	b.Post(bus.PostSignal{Title: "suppressed"})
	require.Empty(t, s.Notifications())

	detach()
	s.SetDoNotDisturb(false)
	b.Post(bus.PostSignal{Title: "after detach"})
	require.Empty(t, s.Notifications())
}

func TestFeeds_Static(t *testing.T) {
	s := NewStore(store.NewMemory())

	if len(s.CalendarEvents()) == 0 {
		t.Error("calendar feed empty")
	}
	if s.Weather().Location == "" {
		t.Error("weather feed empty")
	}
	if len(s.Stocks()) == 0 {
		t.Error("stocks feed empty")
	}
}
