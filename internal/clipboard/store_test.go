package clipboard

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/zdesklabs/zdesk/internal/config"
	"github.com/zdesklabs/zdesk/internal/store"
)

func newTestStore(t *testing.T) (*Store, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	s := NewStore(mem, config.DefaultConfig())
	// Keep tests off the real system clipboard
	s.writeClipboard = func(string) error { return nil }
	s.readClipboard = func() (string, error) { return "", nil }
	return s, mem
}

func TestAddItem_EmptyContentNoOp(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem("", "")
	s.AddItem("   \n\t", "")

	if n := len(s.Items()); n != 0 {
		t.Errorf("len(Items) = %d, want 0", n)
	}
}

func TestAddItem_TypeInference(t *testing.T) {
	tests := []struct {
		content string
		want    ItemType
	}{
		{"https://example.com/page", TypeURL},
		{"http://example.com", TypeURL},
		{"data:image/png;base64,iVBORw0KGgo=", TypeImage},
		{"/usr/local/bin/zdesk", TypeFile},
		{"~/Documents/notes.txt", TypeFile},
		{"just some text", TypeText},
		{"visit example.com later", TypeText},
	}

	for _, tt := range tests {
		if got := InferType(tt.content); got != tt.want {
			t.Errorf("InferType(%q) = %q, want %q", tt.content, got, tt.want)
		}
	}
}

func TestAddItem_Preview(t *testing.T) {
	s, _ := newTestStore(t)

	long := strings.Repeat("a", 250)
	s.AddItem(long, "")

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(items))
	}
	if got := items[0].Preview; got != strings.Repeat("a", 200)+"..." {
		t.Errorf("Preview length = %d, want 203", len(got))
	}
	if items[0].Content != long {
		t.Error("Content truncated; preview truncation must not touch content")
	}

	// Images keep content as preview
	img := "data:image/png;base64," + strings.Repeat("x", 300)
	s.AddItem(img, "")
	items = s.Items()
	if items[0].Preview != img {
		t.Error("image preview should equal content")
	}
}

func TestAddItem_DuplicateContentReplaces(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem("hello", "")
	s.AddItem("world", "")
	s.AddItem("hello", "")

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("len(Items) = %d, want 2", len(items))
	}
	if items[0].Content != "hello" {
		t.Errorf("front item = %q, want %q", items[0].Content, "hello")
	}

	count := 0
	for _, it := range items {
		if it.Content == "hello" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("entries with content hello = %d, want 1", count)
	}
}

func TestAddItem_CapacityEviction(t *testing.T) {
	s, _ := newTestStore(t)

	for i := 0; i < 60; i++ {
		s.AddItem(fmt.Sprintf("item-%d", i), "")
	}

	items := s.Items()
	if len(items) != 50 {
		t.Fatalf("len(Items) = %d, want 50", len(items))
	}
	if items[0].Content != "item-59" {
		t.Errorf("front = %q, want item-59", items[0].Content)
	}
	if items[49].Content != "item-10" {
		t.Errorf("back = %q, want item-10", items[49].Content)
	}
}

func TestAddItem_PinnedExemptFromEviction(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem("keep me", "")
	s.PinItem(s.Items()[0].ID)

	for i := 0; i < 60; i++ {
		s.AddItem(fmt.Sprintf("item-%d", i), "")
	}

	items := s.Items()
	if len(items) != 51 {
		t.Fatalf("len(Items) = %d, want 51 (50 unpinned + 1 pinned)", len(items))
	}

	found := false
	for _, it := range items {
		if it.Content == "keep me" {
			found = it.Pinned
		}
	}
	if !found {
		t.Error("pinned item was evicted")
	}
}

func TestPinItem_Idempotent(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem("hello", "")
	id := s.Items()[0].ID

	s.PinItem(id)
	once := s.Items()
	s.PinItem(id)
	twice := s.Items()

	if len(once) != len(twice) || !once[0].Pinned || !twice[0].Pinned {
		t.Errorf("double pin changed state: %+v vs %+v", once, twice)
	}

	// Unknown id is a no-op
	s.PinItem("nonexistent")
	if len(s.Items()) != 1 {
		t.Error("PinItem on unknown id mutated history")
	}
}

func TestClearHistory_KeepsPinned(t *testing.T) {
	s, _ := newTestStore(t)

	s.AddItem("pinned one", "")
	s.PinItem(s.Items()[0].ID)
	s.AddItem("transient", "")

	s.ClearHistory()

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("len(Items) = %d, want 1", len(items))
	}
	if items[0].Content != "pinned one" {
		t.Errorf("survivor = %q", items[0].Content)
	}
}

func TestPasteItem_WritesSystemClipboard(t *testing.T) {
	s, _ := newTestStore(t)

	var written string
	s.writeClipboard = func(text string) error {
		written = text
		return nil
	}

	s.AddItem("copy me", "")
	before := s.Items()

	s.PasteItem(before[0].ID)
	if written != "copy me" {
		t.Errorf("written = %q, want %q", written, "copy me")
	}

	// No history mutation
	after := s.Items()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Error("PasteItem mutated history")
	}

	// Unknown id writes nothing
	written = ""
	s.PasteItem("nonexistent")
	if written != "" {
		t.Errorf("unknown id wrote %q", written)
	}
}

func TestRoundTrip_PersistedState(t *testing.T) {
	mem := store.NewMemory()
	cfg := config.DefaultConfig()

	s1 := NewStore(mem, cfg)
	s1.writeClipboard = func(string) error { return nil }
	s1.AddItem("first", "")
	s1.AddItem("second", "")
	s1.PinItem(s1.Items()[1].ID)

	s2 := NewStore(mem, cfg)
	got := s2.Items()
	want := s1.Items()

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("item %d differs: %+v vs %+v", i, got[i], want[i])
		}
	}
}

func TestWatch_CapturesNewText(t *testing.T) {
	s, _ := newTestStore(t)

	reads := []string{"captured", "captured", "another"}
	i := 0
	s.readClipboard = func() (string, error) {
		if i < len(reads) {
			v := reads[i]
			i++
			return v, nil
		}
		return "another", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	s.Watch(ctx, 10*time.Millisecond)

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("len(Items) = %d, want 2 (dedupe by last-seen)", len(items))
	}
	if items[0].Content != "another" || items[1].Content != "captured" {
		t.Errorf("items = %q, %q", items[0].Content, items[1].Content)
	}
}

func TestWatch_ReadFailuresIgnored(t *testing.T) {
	s, _ := newTestStore(t)

	s.readClipboard = func() (string, error) { return "", fmt.Errorf("permission denied") }

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s.Watch(ctx, 10*time.Millisecond)

	if n := len(s.Items()); n != 0 {
		t.Errorf("len(Items) = %d, want 0", n)
	}
}
