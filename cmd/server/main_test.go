package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cityverse/internal/adapter/tuning"
)

func TestIntEnv(t *testing.T) {
	t.Setenv("CITYVERSE_TEST_INT", " 7 ")
	if got := intEnv("CITYVERSE_TEST_INT", 3); got != 7 {
		t.Fatalf("intEnv()=%d want 7", got)
	}
	t.Setenv("CITYVERSE_TEST_INT", "seven")
	if got := intEnv("CITYVERSE_TEST_INT", 3); got != 3 {
		t.Fatalf("intEnv()=%d want fallback 3", got)
	}
}

func TestStringEnv_FallsBackOnBlank(t *testing.T) {
	t.Setenv("CITYVERSE_TEST_STR", "   ")
	if got := stringEnv("CITYVERSE_TEST_STR", ":8080"); got != ":8080" {
		t.Fatalf("stringEnv()=%q want %q", got, ":8080")
	}
}

func TestMigrationSource_Embedded(t *testing.T) {
	t.Setenv("CITYVERSE_MIGRATIONS", "")
	fsys, dir := migrationSource()
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatalf("expected embedded migrations")
	}
}

func TestMigrationSource_UsesEnvDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "0001_x.sql"), []byte("SELECT 1;"), 0o644); err != nil {
		t.Fatalf("write migration: %v", err)
	}
	t.Setenv("CITYVERSE_MIGRATIONS", dir)

	fsys, sub := migrationSource()
	b, err := fs.ReadFile(fsys, filepath.Join(sub, "0001_x.sql"))
	if err != nil {
		t.Fatalf("read override migration: %v", err)
	}
	if string(b) != "SELECT 1;" {
		t.Fatalf("unexpected migration body %q", b)
	}
}

func TestMustBuildRepos_LocalJournal(t *testing.T) {
	t.Setenv("CITYVERSE_DB_DSN", "")
	t.Setenv("CITYVERSE_SQLITE_PATH", filepath.Join(t.TempDir(), "data", "journal.db"))

	tun := mustLoadTuningFrom(t, filepath.Join("..", "..", "configs", "tuning.yaml"))
	repos := mustBuildRepos(tun)
	defer func() { _ = repos.close() }()

	shops, err := repos.shops.ListShops(t.Context())
	if err != nil {
		t.Fatalf("list shops: %v", err)
	}
	if len(shops) != len(tun.DemoShops) {
		t.Fatalf("expected %d seeded shops, got %d", len(tun.DemoShops), len(shops))
	}
}

func mustLoadTuningFrom(t *testing.T, path string) tuning.Tuning {
	t.Helper()
	t.Setenv("CITYVERSE_TUNING", path)
	return mustLoadTuning()
}

type fixedAnchor struct {
	at  time.Time
	err error
}

func (f fixedAnchor) Anchor(_ context.Context, fallback time.Time) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	if f.at.IsZero() {
		return fallback, nil
	}
	return f.at, nil
}

func TestClockAnchor(t *testing.T) {
	stored := time.Unix(1600000000, 0).UTC()
	if got := clockAnchor(fixedAnchor{at: stored}); !got.Equal(stored) {
		t.Fatalf("clockAnchor()=%v want stored %v", got, stored)
	}

	t.Setenv("CITYVERSE_CLOCK_START_UNIX", "1700000000")
	want := time.Unix(1700000000, 0).UTC()
	if got := clockAnchor(fixedAnchor{}); !got.Equal(want) {
		t.Fatalf("clockAnchor()=%v want env fallback %v", got, want)
	}
	if got := clockAnchor(fixedAnchor{err: errors.New("down")}); !got.Equal(want) {
		t.Fatalf("clockAnchor()=%v want fallback on error %v", got, want)
	}
}
