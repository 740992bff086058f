package db

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/neboloop/socialshare/internal/db/migrations"
	"github.com/neboloop/socialshare/internal/logging"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logging.Disable()
	t.Cleanup(logging.Enable)

	store, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestMigrationsApplied(t *testing.T) {
	store := newTestStore(t)

	v, err := migrations.Version(store.DB())
	if err != nil {
		t.Fatalf("Version failed: %v", err)
	}
	if v != 2 {
		t.Errorf("Expected schema version 2, got %d", v)
	}
}

func TestOptions(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, ok, err := store.LoadOption(ctx, "tzss_settings"); err != nil || ok {
		t.Fatalf("Expected missing option, got ok=%v err=%v", ok, err)
	}

	if err := store.SaveOption(ctx, "tzss_settings", `{"style":"icons"}`); err != nil {
		t.Fatalf("SaveOption failed: %v", err)
	}
	if err := store.SaveOption(ctx, "tzss_settings", `{"style":"labels"}`); err != nil {
		t.Fatalf("SaveOption overwrite failed: %v", err)
	}

	v, ok, err := store.LoadOption(ctx, "tzss_settings")
	if err != nil || !ok {
		t.Fatalf("LoadOption failed: ok=%v err=%v", ok, err)
	}
	if v != `{"style":"labels"}` {
		t.Errorf("Unexpected value %q", v)
	}

	if err := store.RemoveOption(ctx, "tzss_settings"); err != nil {
		t.Fatalf("RemoveOption failed: %v", err)
	}
	if err := store.RemoveOption(ctx, "tzss_settings"); err != nil {
		t.Fatalf("RemoveOption on missing option failed: %v", err)
	}
	if _, ok, _ := store.LoadOption(ctx, "tzss_settings"); ok {
		t.Error("Option still present after delete")
	}
}

func TestTransientsExpire(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	now := time.Unix(1_700_000_000, 0)
	store.now = func() time.Time { return now }

	if err := store.SaveTransient(ctx, "tzss_license_check", "valid", 24*time.Hour); err != nil {
		t.Fatalf("SaveTransient failed: %v", err)
	}

	v, ok, err := store.LoadTransient(ctx, "tzss_license_check")
	if err != nil || !ok || v != "valid" {
		t.Fatalf("Expected cached value, got %q ok=%v err=%v", v, ok, err)
	}

	now = now.Add(24 * time.Hour)
	if _, ok, _ := store.LoadTransient(ctx, "tzss_license_check"); ok {
		t.Error("Transient should have expired")
	}

	n, err := store.PurgeTransients(ctx)
	if err != nil {
		t.Fatalf("PurgeTransients failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 purged transient, got %d", n)
	}
}

func TestRemoveTransient(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.SaveTransient(ctx, "k", "v", time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := store.RemoveTransient(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := store.LoadTransient(ctx, "k"); ok {
		t.Error("Transient still present after delete")
	}
}
