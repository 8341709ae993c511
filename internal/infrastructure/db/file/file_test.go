package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/core/domain"
	"github.com/smarttodo/tasks-api/internal/infrastructure/docstore"
)

func TestBackend_ReadMissingFile(t *testing.T) {
	b := NewBackend(filepath.Join(t.TempDir(), "db.json"))

	if _, err := b.Read(context.Background()); !errors.Is(err, docstore.ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestBackend_WriteCreatesDirectoryAndLeavesNoTemp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "db.json")
	b := NewBackend(path)

	if err := b.Write(context.Background(), []byte(`{"users":[],"tasks":[]}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, err := b.Read(context.Background())
	if err != nil || string(data) != `{"users":[],"tasks":[]}` {
		t.Fatalf("Read: %s %v", data, err)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestBackend_StoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	store := docstore.NewStore(NewBackend(path), zerolog.Nop())

	err := store.Update(context.Background(), func(s *domain.Snapshot) error {
		s.Users = append(s.Users, domain.User{ID: "u1", Email: "a@example.com", Role: domain.RoleUser})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	reopened := docstore.NewStore(NewBackend(path), zerolog.Nop())
	snap, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(snap.Users) != 1 || snap.Users[0].Email != "a@example.com" {
		t.Fatalf("unexpected users after reopen: %+v", snap.Users)
	}
}

func TestBackend_CorruptFileIsUnavailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := docstore.NewStore(NewBackend(path), zerolog.Nop())

	if _, err := store.Load(context.Background()); !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
