package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/radar/internal/db"
)

func TestStore_HashLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	created, err := s.HSetNX(ctx, "k", "1", "a")
	if err != nil || !created {
		t.Fatalf("expected field created, got %v %v", created, err)
	}
	created, err = s.HSetNX(ctx, "k", "1", "b")
	if err != nil || created {
		t.Fatalf("second HSetNX must not overwrite, got %v %v", created, err)
	}
	if _, err := s.HSetNX(ctx, "k", "2", "c"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := s.HGetAll(ctx, "k")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 2 || m["1"] != "a" {
		t.Fatalf("unexpected hash %v", m)
	}

	m["1"] = "mutated"
	if again, _ := s.HGetAll(ctx, "k"); again["1"] != "a" {
		t.Fatal("HGetAll must return a copy")
	}

	if err := s.HDel(ctx, "k", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, _ := s.HGetAll(ctx, "k"); len(m) != 1 {
		t.Fatalf("expected 1 field, got %v", m)
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m, _ := s.HGetAll(ctx, "k"); len(m) != 0 {
		t.Fatalf("expected empty hash, got %v", m)
	}
}

func TestStore_Closed(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.WaitForReady(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()

	if err := s.Ping(ctx); !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := s.HSetNX(ctx, "k", "f", "v"); !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, err := s.HGetAll(ctx, "k"); !errors.Is(err, db.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
