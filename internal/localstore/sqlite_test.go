package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "onboarding.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSQLite_ReadEmpty(t *testing.T) {
	store := openTestStore(t)

	raw, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if raw != nil {
		t.Errorf("empty cache should read as nil, got %q", raw)
	}
}

func TestSQLite_WriteReadRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	snapshot := []byte(`{"userId":"u","currentStep":2}`)
	if err := store.Write(ctx, snapshot); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(raw) != string(snapshot) {
		t.Errorf("Read = %q, expected %q", raw, snapshot)
	}
}

func TestSQLite_WriteReplacesSlot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, []byte(`{"currentStep":1}`)); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := store.Write(ctx, []byte(`{"currentStep":2}`)); err != nil {
		t.Fatalf("second Write: %v", err)
	}

	raw, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(raw) != `{"currentStep":2}` {
		t.Errorf("Read = %q, expected the later write to win", raw)
	}
}

func TestSQLite_Clear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Write(ctx, []byte(`{}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	raw, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if raw != nil {
		t.Errorf("cache should be empty after Clear, got %q", raw)
	}

	// Clearing twice is fine.
	if err := store.Clear(ctx); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "onboarding.db")
	ctx := context.Background()

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Write(ctx, []byte(`{"currentStep":3}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = second.Close() }()

	raw, err := second.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(raw) != `{"currentStep":3}` {
		t.Errorf("snapshot did not survive reopen, got %q", raw)
	}
}

func TestSQLite_ReadFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT snapshot FROM session_cache").
		WillReturnError(errors.New("disk I/O error"))

	store := NewSQLiteWithDB(db)
	if _, err := store.Read(context.Background()); err == nil {
		t.Fatal("expected the driver failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSQLite_WriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("INSERT INTO session_cache").
		WillReturnError(errors.New("database is locked"))

	store := NewSQLiteWithDB(db)
	if err := store.Write(context.Background(), []byte(`{}`)); err == nil {
		t.Fatal("expected the driver failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestMemory_RoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	raw, err := store.Read(ctx)
	if err != nil || raw != nil {
		t.Fatalf("empty read = %q, %v", raw, err)
	}

	if err := store.Write(ctx, []byte(`{"currentStep":1}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, err = store.Read(ctx)
	if err != nil || string(raw) != `{"currentStep":1}` {
		t.Fatalf("Read = %q, %v", raw, err)
	}

	// The returned slice is a copy; mutating it must not corrupt the store.
	raw[0] = 'X'
	again, _ := store.Read(ctx)
	if string(again) != `{"currentStep":1}` {
		t.Errorf("stored snapshot was mutated through a read: %q", again)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if raw, _ := store.Read(ctx); raw != nil {
		t.Errorf("cache should be empty after Clear, got %q", raw)
	}
}
