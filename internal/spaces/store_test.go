package spaces

import (
	"testing"

	"github.com/zdesklabs/zdesk/internal/store"
)

func activeCount(s *Store) int {
	n := 0
	for _, sp := range s.Spaces() {
		if sp.IsActive {
			n++
		}
	}
	return n
}

func TestNewStore_DefaultSpace(t *testing.T) {
	s := NewStore(store.NewMemory())

	got := s.Spaces()
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != DefaultSpaceID || got[0].Name != "Desktop 1" {
		t.Errorf("default space = %+v", got[0])
	}
	if !got[0].IsActive {
		t.Error("default space not active")
	}
}

func TestAddSpace_SequentialIDs(t *testing.T) {
	s := NewStore(store.NewMemory())

	sp2 := s.AddSpace()
	sp3 := s.AddSpace()

	if sp2.ID != "space-2" || sp3.ID != "space-3" {
		t.Errorf("ids = %q, %q", sp2.ID, sp3.ID)
	}
	if sp2.Name != "Desktop 2" || sp3.Name != "Desktop 3" {
		t.Errorf("names = %q, %q", sp2.Name, sp3.Name)
	}
	if sp2.IsActive || sp3.IsActive {
		t.Error("new spaces must start inactive")
	}
	if activeCount(s) != 1 {
		t.Errorf("active count = %d, want 1", activeCount(s))
	}
}

func TestAddSpace_NoIDReuseAfterRemove(t *testing.T) {
	s := NewStore(store.NewMemory())

	sp2 := s.AddSpace()
	s.AddSpace()
	s.RemoveSpace(sp2.ID)

	sp4 := s.AddSpace()
	if sp4.ID != "space-4" {
		t.Errorf("id = %q, want space-4", sp4.ID)
	}
}

func TestRemoveSpace_LastSpaceRejected(t *testing.T) {
	s := NewStore(store.NewMemory())

	s.RemoveSpace(DefaultSpaceID)

	if len(s.Spaces()) != 1 {
		t.Fatal("removing the only space must be a no-op")
	}
	if activeCount(s) != 1 {
		t.Errorf("active count = %d, want 1", activeCount(s))
	}
}

func TestRemoveSpace_ActiveFallsBackToFirst(t *testing.T) {
	s := NewStore(store.NewMemory())
	sp2 := s.AddSpace()

	s.SetActiveSpace(sp2.ID)
	s.RemoveSpace(sp2.ID)

	if got := s.ActiveSpace().ID; got != DefaultSpaceID {
		t.Errorf("active = %q, want %q", got, DefaultSpaceID)
	}
	if activeCount(s) != 1 {
		t.Errorf("active count = %d, want 1", activeCount(s))
	}
}

func TestSetActiveSpace_UnknownNoOp(t *testing.T) {
	s := NewStore(store.NewMemory())
	s.AddSpace()

	s.SetActiveSpace("space-99")

	if got := s.ActiveSpace().ID; got != DefaultSpaceID {
		t.Errorf("active = %q, want %q", got, DefaultSpaceID)
	}
}

func TestRenameSpace(t *testing.T) {
	s := NewStore(store.NewMemory())

	s.RenameSpace(DefaultSpaceID, "Work")
	if got := s.Spaces()[0].Name; got != "Work" {
		t.Errorf("name = %q, want Work", got)
	}

	s.RenameSpace(DefaultSpaceID, "   ")
	if got := s.Spaces()[0].Name; got != "Work" {
		t.Error("blank rename must be a no-op")
	}
}

func TestMoveWindowToSpace_SingleOwner(t *testing.T) {
	s := NewStore(store.NewMemory())
	sp2 := s.AddSpace()

	s.MoveWindowToSpace("w1", DefaultSpaceID)
	s.MoveWindowToSpace("w1", sp2.ID)

	if got := s.WindowsInSpace(DefaultSpaceID); len(got) != 0 {
		t.Errorf("first space still owns %v", got)
	}
	got := s.WindowsInSpace(sp2.ID)
	if len(got) != 1 || got[0] != "w1" {
		t.Errorf("second space windows = %v, want [w1]", got)
	}
}

func TestMoveWindowToSpace_UnknownSpaceNoOp(t *testing.T) {
	s := NewStore(store.NewMemory())

	s.MoveWindowToSpace("w1", DefaultSpaceID)
	s.MoveWindowToSpace("w1", "space-99")

	got := s.WindowsInSpace(DefaultSpaceID)
	if len(got) != 1 || got[0] != "w1" {
		t.Errorf("windows = %v, want [w1]", got)
	}
}

func TestSpaceForWindow(t *testing.T) {
	s := NewStore(store.NewMemory())
	sp2 := s.AddSpace()
	s.MoveWindowToSpace("w1", sp2.ID)

	if got := s.SpaceForWindow("w1").ID; got != sp2.ID {
		t.Errorf("space = %q, want %q", got, sp2.ID)
	}
	if got := s.SpaceForWindow("unassigned").ID; got != DefaultSpaceID {
		t.Errorf("unassigned window space = %q, want active %q", got, DefaultSpaceID)
	}
}

func TestCycling_WrapsBothWays(t *testing.T) {
	s := NewStore(store.NewMemory())
	sp2 := s.AddSpace()
	sp3 := s.AddSpace()

	s.GoToNextSpace()
	if got := s.ActiveSpace().ID; got != sp2.ID {
		t.Fatalf("active = %q, want %q", got, sp2.ID)
	}
	s.GoToNextSpace()
	s.GoToNextSpace()
	if got := s.ActiveSpace().ID; got != DefaultSpaceID {
		t.Errorf("next did not wrap: active = %q", got)
	}

	s.GoToPrevSpace()
	if got := s.ActiveSpace().ID; got != sp3.ID {
		t.Errorf("prev did not wrap: active = %q", got)
	}
	if activeCount(s) != 1 {
		t.Errorf("active count = %d, want 1", activeCount(s))
	}
}

func TestRoundTrip_PersistedState(t *testing.T) {
	mem := store.NewMemory()

	s1 := NewStore(mem)
	sp2 := s1.AddSpace()
	s1.RenameSpace(sp2.ID, "Work")
	s1.SetActiveSpace(sp2.ID)
	s1.MoveWindowToSpace("w1", sp2.ID)

	s2 := NewStore(mem)
	if got := s2.ActiveSpace(); got.ID != sp2.ID || got.Name != "Work" {
		t.Errorf("active after reload = %+v", got)
	}
	wins := s2.WindowsInSpace(sp2.ID)
	if len(wins) != 1 || wins[0] != "w1" {
		t.Errorf("windows after reload = %v", wins)
	}
	if activeCount(s2) != 1 {
		t.Errorf("active count = %d, want 1", activeCount(s2))
	}
}
