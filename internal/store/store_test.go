package store

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewStore_CreatesDatabaseFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file should exist after creating store")
	}
}

func TestNewStore_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	var name string
	err := s.DB().QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
		"snapshots",
	).Scan(&name)
	if err != nil {
		t.Errorf("table snapshots should exist after migrations: %v", err)
	}
}

func TestStore_Close(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("close should not return error: %v", err)
	}

	if _, err := s.DB().Exec("SELECT 1"); err == nil {
		t.Error("DB operations should fail after close")
	}
}

func TestSnapshots_AppendAssignsSequentialIndexes(t *testing.T) {
	repo := newTestStore(t).Snapshots()

	for want := 0; want < 3; want++ {
		snap := &Snapshot{Width: 4, Height: 2, Data: []byte{byte(want)}}

		got, err := repo.Append(snap)
		if err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		if got != want || snap.Index != want {
			t.Errorf("Append() index = %d (snap.Index %d), want %d", got, snap.Index, want)
		}
		if snap.ID == "" {
			t.Error("Append() should assign an ID")
		}
		if snap.Format != "png" {
			t.Errorf("Format = %q, want png default", snap.Format)
		}
	}

	n, err := repo.Count()
	if err != nil || n != 3 {
		t.Errorf("Count() = %d, %v; want 3", n, err)
	}
}

func TestSnapshots_Get(t *testing.T) {
	repo := newTestStore(t).Snapshots()
	data := []byte{0x89, 'P', 'N', 'G', 0, 1, 2, 3}

	index, err := repo.Append(&Snapshot{Width: 640, Height: 480, Data: data})
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	got, err := repo.Get(index)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got.Data, data) {
		t.Errorf("Data = %v, want %v", got.Data, data)
	}
	if got.Width != 640 || got.Height != 480 {
		t.Errorf("size = %dx%d, want 640x480", got.Width, got.Height)
	}

	for _, bad := range []int{-1, 1, 99} {
		if _, err := repo.Get(bad); !errors.Is(err, ErrNotFound) {
			t.Errorf("Get(%d) error = %v, want ErrNotFound", bad, err)
		}
	}
}

func TestSnapshots_ListInCaptureOrder(t *testing.T) {
	repo := newTestStore(t).Snapshots()

	var ids []string
	for i := 0; i < 4; i++ {
		snap := &Snapshot{Width: 1, Height: 1, Data: []byte{byte(i)}}
		if _, err := repo.Append(snap); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
		ids = append(ids, snap.ID)
	}

	list, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != len(ids) {
		t.Fatalf("List() returned %d snapshots, want %d", len(list), len(ids))
	}
	for i, s := range list {
		if s.Index != i || s.ID != ids[i] {
			t.Errorf("List()[%d] = (%d, %s), want (%d, %s)", i, s.Index, s.ID, i, ids[i])
		}
		if s.Data != nil {
			t.Errorf("List()[%d] should not carry pixel data", i)
		}
	}
}

func TestSnapshots_Immutable(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Snapshots().Append(&Snapshot{Width: 1, Height: 1, Data: []byte{1}}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}

	if _, err := s.DB().Exec(`UPDATE snapshots SET data = ? WHERE seq = 0`, []byte{2}); err == nil {
		t.Error("updating a snapshot should be rejected")
	}

	if _, err := s.DB().Exec(`DELETE FROM snapshots WHERE seq = 0`); err == nil {
		t.Error("deleting a snapshot should be rejected")
	}
	if n, err := s.Snapshots().Count(); err != nil || n != 1 {
		t.Errorf("Count() = %d, %v; want 1 after rejected delete", n, err)
	}
}

func TestSnapshots_MemoryStoresAreIndependent(t *testing.T) {
	a := newTestStore(t)
	b := newTestStore(t)

	a.Snapshots().Append(&Snapshot{Width: 1, Height: 1, Data: []byte{1}})

	if n, _ := b.Snapshots().Count(); n != 0 {
		t.Errorf("second in-memory store sees %d snapshots, want 0", n)
	}
}
