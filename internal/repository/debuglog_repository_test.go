package repository

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/jengzang/route-simplex/internal/database"
)

func newRepo(t *testing.T) *DebugLogRepository {
	t.Helper()
	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "explorer.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDebugLogRepository(db)
}

func TestDebugLogAppendAndList(t *testing.T) {
	repo := newRepo(t)

	if err := repo.Append("a", "single route", "settled 10 nodes\n"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append("a", "triangulation", ""); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append("b", "triangulation", "other session\n"); err != nil {
		t.Fatal(err)
	}
	if err := repo.Append("a", "triangulation", "12 splits\n"); err != nil {
		t.Fatal(err)
	}

	entries, err := repo.List("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].RequestType != "single route" || entries[1].Message != "12 splits\n" {
		t.Errorf("unexpected entries %+v", entries)
	}

	want := "Debug log for single route request\nsettled 10 nodes\nEnd of log for single route request\n" +
		"=============================================\n"
	if got := entries[0].Text(); got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if strings.Count(entries[1].Text(), "\n") != 4 {
		t.Errorf("unexpected framing %q", entries[1].Text())
	}
}

func TestDebugLogVisibility(t *testing.T) {
	repo := newRepo(t)

	visible, err := repo.Visible("a")
	if err != nil || visible {
		t.Fatalf("Visible() = %v, %v; want hidden by default", visible, err)
	}
	for _, want := range []bool{true, false, true} {
		got, err := repo.ToggleVisible("a")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("ToggleVisible() = %v, want %v", got, want)
		}
	}
}

func TestDebugLogDeleteSession(t *testing.T) {
	repo := newRepo(t)
	repo.Append("a", "route", "x\n")
	repo.ToggleVisible("a")

	if err := repo.DeleteSession("a"); err != nil {
		t.Fatal(err)
	}
	entries, err := repo.List("a")
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
	if visible, _ := repo.Visible("a"); visible {
		t.Error("visibility should be reset")
	}
}
