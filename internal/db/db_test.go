package db

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/zdesklabs/zdesk/internal/config"
)

func TestInit_CreatesDatabase(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	if _, err := os.Stat(filepath.Join(tmpDir, "zdesk.db")); err != nil {
		t.Errorf("database file not created: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmpDir, "backups")); err != nil {
		t.Errorf("backups directory not created: %v", err)
	}

	version, err := GetUserVersion(database)
	if err != nil {
		t.Fatalf("GetUserVersion failed: %v", err)
	}
	if version != CurrentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, CurrentSchemaVersion)
	}
}

func TestInit_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()

	db1, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("first Init failed: %v", err)
	}
	db1.Close()

	db2, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("second Init failed: %v", err)
	}
	db2.Close()
}

func TestConfigurePool(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	// Should not panic with nil config or zero values
	ConfigurePool(database, nil)
	ConfigurePool(database, &config.Config{})
	ConfigurePool(database, &config.Config{DBMaxOpenConns: 1, DBMaxIdleConns: 1})
}

func TestSnapshots_GetMissing(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	snaps := NewSnapshots(database)
	_, ok, err := snaps.Get("nonexistent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Get of missing key reported present")
	}
}

func TestSnapshots_PutGetRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	snaps := NewSnapshots(database)
	if err := snaps.Put("zdesk:spaces", `[{"id":"space-1"}]`); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	value, ok, err := snaps.Get("zdesk:spaces")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Get reported key missing after Put")
	}
	if value != `[{"id":"space-1"}]` {
		t.Errorf("value = %q", value)
	}
}

func TestSnapshots_PutReplaces(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	snaps := NewSnapshots(database)
	if err := snaps.Put("k", "v1"); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := snaps.Put("k", "v2"); err != nil {
		t.Fatalf("second Put failed: %v", err)
	}

	value, _, err := snaps.Get("k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if value != "v2" {
		t.Errorf("value = %q, want v2", value)
	}

	keys, err := snaps.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("len(keys) = %d, want 1", len(keys))
	}
}

func TestSnapshots_Keys(t *testing.T) {
	tmpDir := t.TempDir()

	database, err := Init(tmpDir)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer database.Close()

	snaps := NewSnapshots(database)
	for _, k := range []string{"b", "a", "c"} {
		if err := snaps.Put(k, "{}"); err != nil {
			t.Fatalf("Put %q failed: %v", k, err)
		}
	}

	keys, err := snaps.Keys()
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Errorf("keys = %v, want [a b c]", keys)
	}
}
