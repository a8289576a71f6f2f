package testfixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	"staybook/internal/domain"
	"staybook/internal/repository"
)

func TestClock(t *testing.T) {
	start := ReferenceTime()
	clock := NewClock(start)

	if got := clock.Now(); !got.Equal(start) {
		t.Fatalf("Now() = %v, want %v", got, start)
	}

	clock.Advance(48 * time.Hour)
	if got := clock.Now(); !got.Equal(start.Add(48 * time.Hour)) {
		t.Fatalf("Now() after Advance = %v, want %v", got, start.Add(48*time.Hour))
	}

	later := start.AddDate(0, 1, 0)
	clock.Set(later)
	if got := clock.NowFunc()(); !got.Equal(later) {
		t.Fatalf("NowFunc()() = %v, want %v", got, later)
	}
}

func TestIDGenerator(t *testing.T) {
	gen := NewIDGenerator("booking")

	if got := gen.Next(); got != "booking-1" {
		t.Fatalf("Next() = %q, want %q", got, "booking-1")
	}
	if got := gen.NextFunc()(); got != "booking-2" {
		t.Fatalf("NextFunc()() = %q, want %q", got, "booking-2")
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	if _, err := store.Properties().ByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("ByID() error = %v, want %v", err, repository.ErrNotFound)
	}

	p, err := domain.NewProperty("property-1", "Seaside flat", "", 4, 100)
	if err != nil {
		t.Fatalf("NewProperty() unexpected error: %v", err)
	}
	if err := store.Properties().Save(ctx, p); err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}

	got, err := store.Properties().ByID(ctx, "property-1")
	if err != nil {
		t.Fatalf("ByID() unexpected error: %v", err)
	}
	if got != p {
		t.Fatal("ByID() did not return the saved aggregate")
	}
}

func TestMemoryStore_Do(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var ran bool
	err := store.Do(ctx, func(ctx context.Context, tx repository.Store, after func(repository.AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return nil
	})
	if err != nil {
		t.Fatalf("Do() unexpected error: %v", err)
	}
	if !ran {
		t.Fatal("after-commit hook did not run on success")
	}

	ran = false
	wantErr := errors.New("boom")
	err = store.Do(ctx, func(ctx context.Context, tx repository.Store, after func(repository.AfterCommit)) error {
		after(func(context.Context) { ran = true })
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Do() error = %v, want %v", err, wantErr)
	}
	if ran {
		t.Fatal("after-commit hook ran on failure")
	}
}
