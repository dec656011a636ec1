package kv

import (
	"context"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get missing = ok=%v err=%v, want absent", ok, err)
	}

	if err := s.Set(ctx, "wins", "3"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "wins")
	if err != nil || !ok || v != "3" {
		t.Fatalf("Get = %q ok=%v err=%v, want \"3\"", v, ok, err)
	}

	// Overwrite
	if err := s.Set(ctx, "wins", "4"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	if v, _, _ := s.Get(ctx, "wins"); v != "4" {
		t.Fatalf("Get after overwrite = %q, want \"4\"", v)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemory())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kv.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	testStore(t, s)

	// Values survive reopening the same file.
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	v, ok, err := reopened.Get(context.Background(), "wins")
	if err != nil || !ok || v != "4" {
		t.Fatalf("Get after reopen = %q ok=%v err=%v, want \"4\"", v, ok, err)
	}
}
