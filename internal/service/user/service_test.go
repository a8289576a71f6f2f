package user

import (
	"context"
	"errors"
	"testing"

	"staybook/internal/domain"
	"staybook/internal/testfixtures"
)

func TestService_Create(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	svc := New(store, Config{NewID: testfixtures.NewIDGenerator("user").NextFunc()})
	ctx := context.Background()

	u, err := svc.Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if u.ID() != "user-1" || u.Name() != "Alice" {
		t.Fatalf("Create() = %q/%q, want %q/%q", u.ID(), u.Name(), "user-1", "Alice")
	}

	if _, err := svc.Create(ctx, ""); !errors.Is(err, domain.ErrEmptyUserName) {
		t.Fatalf("Create() error = %v, want %v", err, domain.ErrEmptyUserName)
	}
}

func TestService_GetByID(t *testing.T) {
	store := testfixtures.NewMemoryStore()
	svc := New(store, Config{NewID: testfixtures.NewIDGenerator("user").NextFunc()})
	ctx := context.Background()

	u, err := svc.Create(ctx, "Alice")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	got, err := svc.GetByID(ctx, u.ID())
	if err != nil {
		t.Fatalf("GetByID() unexpected error: %v", err)
	}
	if got.Name() != "Alice" {
		t.Fatalf("Name() = %q, want %q", got.Name(), "Alice")
	}

	if _, err := svc.GetByID(ctx, "missing"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("GetByID() error = %v, want %v", err, ErrUserNotFound)
	}
}
