package recents

import (
	"fmt"
	"testing"
	"time"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/store"
)

func newTestStore() *Store {
	return NewStore(store.NewMemory(), config.DefaultConfig())
}

func TestAddRecent_DedupeMoveToFront(t *testing.T) {
	s := newTestStore()

	s.AddRecent(Item{ID: "f1", Name: "a.txt", Path: "/a.txt", Type: TypeFile})
	s.AddRecent(Item{ID: "f2", Name: "b.txt", Path: "/b.txt", Type: TypeFile})

	first := s.Items()[1].Timestamp
	time.Sleep(2 * time.Millisecond)
	s.AddRecent(Item{ID: "f1", Name: "a.txt", Path: "/a.txt", Type: TypeFile})
	time.Sleep(2 * time.Millisecond)
	s.AddRecent(Item{ID: "f1", Name: "a.txt", Path: "/a.txt", Type: TypeFile})

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].ID != "f1" {
		t.Errorf("front = %q, want f1", items[0].ID)
	}
	if items[0].Timestamp <= first {
		t.Error("timestamp not refreshed on re-add")
	}
}

func TestAddRecent_Truncates(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 25; i++ {
		s.AddRecent(Item{ID: fmt.Sprintf("f%d", i), Type: TypeFile})
	}

	items := s.Items()
	if len(items) != 20 {
		t.Fatalf("len = %d, want 20", len(items))
	}
	if items[0].ID != "f24" {
		t.Errorf("front = %q, want f24", items[0].ID)
	}
}

func TestAddRecentApp_SeparateCap(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 12; i++ {
		s.AddRecentApp(fmt.Sprintf("app%d", i))
	}
	s.AddRecentApp("app3")

	apps := s.Apps()
	if len(apps) != 10 {
		t.Fatalf("len = %d, want 10", len(apps))
	}
	if apps[0] != "app3" {
		t.Errorf("front = %q, want app3", apps[0])
	}

	count := 0
	for _, id := range apps {
		if id == "app3" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("app3 appears %d times", count)
	}
}

func TestItemsForApp(t *testing.T) {
	s := newTestStore()

	for i := 0; i < 15; i++ {
		s.AddRecent(Item{ID: fmt.Sprintf("f%d", i), Type: TypeFile, AppID: "editor"})
	}
	s.AddRecent(Item{ID: "other", Type: TypeFile, AppID: "browser"})

	got := s.ItemsForApp("editor")
	if len(got) != 10 {
		t.Fatalf("len = %d, want at most 10", len(got))
	}
	if got[0].ID != "f14" {
		t.Errorf("front = %q, want f14", got[0].ID)
	}
}

func TestClearForApp(t *testing.T) {
	s := newTestStore()

	s.AddRecent(Item{ID: "f1", AppID: "editor", Type: TypeFile})
	s.AddRecent(Item{ID: "f2", AppID: "browser", Type: TypeFile})
	s.AddRecentApp("editor")

	s.ClearForApp("editor")

	items := s.Items()
	if len(items) != 1 || items[0].ID != "f2" {
		t.Errorf("items = %v", items)
	}
	if len(s.Apps()) != 1 {
		t.Error("ClearForApp touched the apps list")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore()

	s.AddRecent(Item{ID: "f1", Type: TypeFile})
	s.AddRecentApp("editor")
	s.Clear()

	if len(s.Items()) != 0 || len(s.Apps()) != 0 {
		t.Error("Clear left entries")
	}
}

func TestRoundTrip_PersistedState(t *testing.T) {
	mem := store.NewMemory()
	cfg := config.DefaultConfig()

	s1 := NewStore(mem, cfg)
	s1.AddRecent(Item{ID: "f1", Name: "a.txt", Path: "/a.txt", Type: TypeFile, AppID: "editor"})
	s1.AddRecentApp("editor")

	s2 := NewStore(mem, cfg)
	if len(s2.Items()) != 1 || s2.Items()[0] != s1.Items()[0] {
		t.Errorf("items differ after reload")
	}
	if len(s2.Apps()) != 1 || s2.Apps()[0] != "editor" {
		t.Errorf("apps differ after reload: %v", s2.Apps())
	}
}
