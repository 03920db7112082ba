package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
)

func setupSQLite(t *testing.T) *SQLiteBackend {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todolist-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	backend, err := NewSQLiteBackend(db)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	return backend
}

// exerciseBackend runs the shared key-value contract against any backend.
func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	if _, err := backend.Get(ctx, "todolist-app-data"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got: %v", err)
	}

	if err := backend.Put(ctx, "todolist-app-data", []byte(`{"tasks":[]}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := backend.Get(ctx, "todolist-app-data")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"tasks":[]}` {
		t.Fatalf("unexpected value: %q", got)
	}

	if err := backend.Put(ctx, "todolist-app-data", []byte(`{"tasks":[1]}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err = backend.Get(ctx, "todolist-app-data")
	if err != nil {
		t.Fatalf("get after overwrite: %v", err)
	}
	if string(got) != `{"tasks":[1]}` {
		t.Fatalf("unexpected overwritten value: %q", got)
	}

	if err := backend.Delete(ctx, "todolist-app-data"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := backend.Delete(ctx, "todolist-app-data"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}

	if err := backend.Put(ctx, "../escape", []byte("x")); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got: %v", err)
	}
}

func TestSQLiteBackendContract(t *testing.T) {
	exerciseBackend(t, setupSQLite(t))
}

func TestFileBackendContract(t *testing.T) {
	backend, err := NewFileBackend(filepath.Join(t.TempDir(), "store"))
	if err != nil {
		t.Fatalf("new file backend: %v", err)
	}
	exerciseBackend(t, backend)
}

func TestMemoryBackendContract(t *testing.T) {
	backend := NewMemoryBackend()
	exerciseBackend(t, backend)

	if err := backend.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := backend.Put(context.Background(), "k", []byte("v")); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got: %v", err)
	}
}

func TestOpenByDriver(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		driver string
		path   string
	}{
		{DriverSQLite, filepath.Join(dir, "nested", "todolist.db")},
		{DriverFile, filepath.Join(dir, "files")},
		{DriverMemory, ""},
	}
	for _, tc := range cases {
		backend, err := Open(tc.driver, tc.path)
		if err != nil {
			t.Fatalf("open %s: %v", tc.driver, err)
		}
		if err := backend.Put(t.Context(), "k", []byte("v")); err != nil {
			t.Fatalf("%s put: %v", tc.driver, err)
		}
		if err := backend.Close(); err != nil {
			t.Fatalf("%s close: %v", tc.driver, err)
		}
	}

	if _, err := Open("redis", ""); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
