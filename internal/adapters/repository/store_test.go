package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// exerciseStore runs the contract every Store implementation must satisfy.
func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	// Missing key is absent, not an error
	v, ok, err := s.Get(ctx, "fitcheck.history.v1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("expected missing key, got ok=%v value=%q", ok, v)
	}

	if err := s.Set(ctx, "fitcheck.history.v1", `[{"bmi":22.9}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, ok, err = s.Get(ctx, "fitcheck.history.v1")
	if err != nil || !ok {
		t.Fatalf("expected stored value, got ok=%v err=%v", ok, err)
	}
	if v != `[{"bmi":22.9}]` {
		t.Errorf("unexpected value %q", v)
	}

	// Overwrite replaces the previous value
	if err := s.Set(ctx, "fitcheck.history.v1", `[]`); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if v, _, _ = s.Get(ctx, "fitcheck.history.v1"); v != `[]` {
		t.Errorf("expected overwritten value, got %q", v)
	}

	// Keys are independent
	if err := s.Set(ctx, "other", "x"); err != nil {
		t.Fatalf("set other failed: %v", err)
	}

	if err := s.Remove(ctx, "fitcheck.history.v1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, ok, _ = s.Get(ctx, "fitcheck.history.v1"); ok {
		t.Error("expected key to be removed")
	}
	if v, ok, _ = s.Get(ctx, "other"); !ok || v != "x" {
		t.Errorf("remove touched another key: ok=%v value=%q", ok, v)
	}

	// Removing again is not an error
	if err := s.Remove(ctx, "fitcheck.history.v1"); err != nil {
		t.Errorf("second remove failed: %v", err)
	}

	if _, _, err := s.Get(ctx, ""); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
	if err := s.Set(ctx, "", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	exerciseStore(t, s)

	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
	if err := s.Set(context.Background(), "k", "v"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed after close, got %v", err)
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "store")
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)

	// No temp files are left behind
	if err := s.Set(context.Background(), "k", "v"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestFileStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	if err := first.Set(ctx, "k", "persisted"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	second, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("reopen file store: %v", err)
	}
	v, ok, err := second.Get(ctx, "k")
	if err != nil || !ok || v != "persisted" {
		t.Errorf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestFileStore_RejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("new file store: %v", err)
	}
	for _, key := range []string{"../escape", `a\b`, "..", "."} {
		if err := s.Set(context.Background(), key, "x"); !errors.Is(err, ErrInvalidKey) {
			t.Errorf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db", "fitcheck.db")
	s, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	exerciseStore(t, s)

	if err := s.Set(ctx, "k", "persisted"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	reopened, err := NewSQLiteStore(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite store: %v", err)
	}
	defer reopened.Close()
	v, ok, err := reopened.Get(ctx, "k")
	if err != nil || !ok || v != "persisted" {
		t.Errorf("expected persisted value, got %q ok=%v err=%v", v, ok, err)
	}
}

func TestSQLiteStore_InMemory(t *testing.T) {
	s, err := NewSQLiteStore(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("new sqlite store: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		driver string
		path   string
	}{
		{DriverMemory, ""},
		{"  Memory ", ""},
		{DriverFile, t.TempDir()},
		{DriverSQLite, filepath.Join(t.TempDir(), "kv.db")},
	}
	for _, tt := range tests {
		s, err := Open(ctx, tt.driver, tt.path)
		if err != nil {
			t.Fatalf("open %q: %v", tt.driver, err)
		}
		exerciseStore(t, s)
		_ = s.Close()
	}

	if _, err := Open(ctx, "redis", ""); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}
