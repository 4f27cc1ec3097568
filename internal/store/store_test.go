package store

import (
	"os"
	"path/filepath"
	"testing"
)

func mkdirBackups(baseDir string) error {
	return os.MkdirAll(filepath.Join(baseDir, "backups"), 0700)
}

type spacesBlob []struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestLoad_MissingKey(t *testing.T) {
	mem := NewMemory()

	got, result := Load(mem, KeySpaces, spacesBlob{{ID: "space-1", Name: "Desktop 1"}})
	if result.Status != UsedDefault {
		t.Errorf("Status = %q, want %q", result.Status, UsedDefault)
	}
	if result.Reason != "missing key" {
		t.Errorf("Reason = %q", result.Reason)
	}
	if len(got) != 1 || got[0].ID != "space-1" {
		t.Errorf("default not returned: %+v", got)
	}
}

func TestLoad_Hydrated(t *testing.T) {
	mem := NewMemory()
	if err := mem.Put(KeySpaces, `[{"id":"space-2","name":"Work"}]`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, result := Load(mem, KeySpaces, spacesBlob{})
	if result.Status != Hydrated {
		t.Fatalf("Status = %q, want %q", result.Status, Hydrated)
	}
	if len(got) != 1 || got[0].Name != "Work" {
		t.Errorf("got %+v", got)
	}
}

func TestLoad_MalformedFallsBack(t *testing.T) {
	mem := NewMemory()
	if err := mem.Put(KeySpaces, "{not json"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, result := Load(mem, KeySpaces, spacesBlob{{ID: "space-1"}})
	if result.Status != UsedDefault {
		t.Errorf("Status = %q, want %q", result.Status, UsedDefault)
	}
	if len(got) != 1 || got[0].ID != "space-1" {
		t.Errorf("default not returned: %+v", got)
	}
}

func TestSave_RoundTrip(t *testing.T) {
	mem := NewMemory()

	Save(mem, KeyRecentApps, []string{"finder", "terminal"})

	got, result := Load(mem, KeyRecentApps, []string(nil))
	if result.Status != Hydrated {
		t.Fatalf("Status = %q, want %q", result.Status, Hydrated)
	}
	if len(got) != 2 || got[0] != "finder" || got[1] != "terminal" {
		t.Errorf("got %v", got)
	}
}

func TestSave_FailureSwallowed(t *testing.T) {
	mem := NewMemory()
	mem.FailPuts = true

	// Must not panic or surface the error
	Save(mem, KeyRecentApps, []string{"finder"})

	_, result := Load(mem, KeyRecentApps, []string(nil))
	if result.Status != UsedDefault {
		t.Errorf("Status = %q, want %q after failed save", result.Status, UsedDefault)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := NewMemory()
	Save(src, KeyRecentApps, []string{"finder"})
	Save(src, KeySpaces, spacesBlob{{ID: "space-1", Name: "Desktop 1"}})

	path := filepath.Join(t.TempDir(), "backup.json")
	exported, err := Export(src, "", path)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if exported.Count != 2 {
		t.Errorf("exported Count = %d, want 2", exported.Count)
	}

	dst := NewMemory()
	imported, err := Import(dst, path)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if imported.Count != 2 {
		t.Errorf("imported Count = %d, want 2", imported.Count)
	}

	apps, result := Load(dst, KeyRecentApps, []string(nil))
	if result.Status != Hydrated {
		t.Fatalf("Status = %q after import", result.Status)
	}
	if len(apps) != 1 || apps[0] != "finder" {
		t.Errorf("apps = %v", apps)
	}
}

func TestExport_DefaultPath(t *testing.T) {
	baseDir := t.TempDir()
	// mimic db.Init's backups dir
	if err := mkdirBackups(baseDir); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}

	mem := NewMemory()
	Save(mem, KeyRecentApps, []string{"finder"})

	out, err := Export(mem, baseDir, "")
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if filepath.Dir(out.Path) != filepath.Join(baseDir, "backups") {
		t.Errorf("Path = %q, want under backups dir", out.Path)
	}
}

func TestImport_MissingFile(t *testing.T) {
	if _, err := Import(NewMemory(), filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Import of missing file should fail")
	}
}
