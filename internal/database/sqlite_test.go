package database

import (
	"path/filepath"
	"testing"
	"testing/fstest"
)

func TestOpenMemoryRunsMigrations(t *testing.T) {
	db, err := Open(Config{Path: MemoryPath})
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM migrations").Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("expected 2 applied migrations, got %d", n)
	}
	if _, err := db.Exec("INSERT INTO debug_log (session_id, request_type, message) VALUES ('s', 'route', 'm')"); err != nil {
		t.Errorf("debug_log table missing: %v", err)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "explorer.db")
	db, err := Open(Config{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	db.Close()

	db, err = Open(Config{Path: path})
	if err != nil {
		t.Fatalf("reopening failed: %v", err)
	}
	defer db.Close()

	applied, err := NewMigrationManager(db, Migrations).GetAppliedMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if !applied[1] || !applied[2] || len(applied) != 2 {
		t.Errorf("unexpected applied set %v", applied)
	}
}

func TestLoadMigrationsSkipsBadNames(t *testing.T) {
	source := fstest.MapFS{
		"migrations/002_second.sql": {Data: []byte("SELECT 2")},
		"migrations/001_first.sql":  {Data: []byte("SELECT 1")},
		"migrations/readme.sql":     {Data: []byte("--")},
		"migrations/notes.txt":      {Data: []byte("ignored")},
	}
	migrations, err := NewMigrationManager(nil, source).LoadMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Name != "001_first" || migrations[1].Version != 2 {
		t.Errorf("unexpected order %+v", migrations)
	}
}
