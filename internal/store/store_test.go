package store

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.Put(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("got %q, want v1", got)
	}

	// Overwrite replaces the full value
	if err := s.Put(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, _ = s.Get(ctx, "k")
	if string(got) != "v2" {
		t.Fatalf("got %q, want v2", got)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()
	_ = s.Put(ctx, "k", []byte("abc"))
	v, _ := s.Get(ctx, "k")
	v[0] = 'X'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated through returned slice: %q", again)
	}
}

func TestUserDataKey(t *testing.T) {
	if got := UserDataKey("ana@x.com"); got != "user_data_ana@x.com" {
		t.Fatalf("unexpected key: %s", got)
	}
}
