package usage

import (
	"context"
	"testing"
	"time"
)

func TestConsumeWithinLimit(t *testing.T) {
	svc := NewService(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Consume(ctx, "user-1", 1); err != nil {
			t.Fatalf("consume %d: %v", i+1, err)
		}
	}

	if _, err := svc.Consume(ctx, "user-1", 1); err != ErrLimitReached {
		t.Fatalf("expected ErrLimitReached, got %v", err)
	}
}

func TestCanConsumeReportsWithoutConsuming(t *testing.T) {
	svc := NewService(1)
	ctx := context.Background()

	ok, u, err := svc.CanConsume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("can consume: %v", err)
	}
	if !ok {
		t.Fatal("expected fresh user to be allowed")
	}
	if u.Used != 0 {
		t.Fatalf("CanConsume must not consume, used=%d", u.Used)
	}

	if _, err := svc.Consume(ctx, "user-1", 1); err != nil {
		t.Fatalf("consume: %v", err)
	}
	ok, _, err = svc.CanConsume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("can consume: %v", err)
	}
	if ok {
		t.Fatal("expected exhausted user to be blocked")
	}
}

func TestUsersHaveIndependentQuotas(t *testing.T) {
	svc := NewService(1)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 1); err != nil {
		t.Fatalf("consume user-1: %v", err)
	}
	if _, err := svc.Consume(ctx, "user-2", 1); err != nil {
		t.Fatalf("expected user-2 unaffected by user-1's quota: %v", err)
	}
}

func TestExpiredWindowResets(t *testing.T) {
	store := newMemoryStore(1)
	svc := NewPostgresService(store)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 1); err != nil {
		t.Fatalf("consume: %v", err)
	}

	store.mu.Lock()
	u := store.data["user-1"]
	u.ResetsAt = time.Now().UTC().Add(-time.Minute)
	store.data["user-1"] = u
	store.mu.Unlock()

	got, err := svc.Consume(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("expected consume after window expiry to succeed: %v", err)
	}
	if got.Used != 1 {
		t.Fatalf("expected used=1 after reset, got %d", got.Used)
	}
}

func TestResetClearsUsage(t *testing.T) {
	svc := NewService(2)
	ctx := context.Background()

	if _, err := svc.Consume(ctx, "user-1", 2); err != nil {
		t.Fatalf("consume: %v", err)
	}
	u, err := svc.Reset(ctx, "user-1")
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if u.Used != 0 {
		t.Fatalf("expected used=0 after reset, got %d", u.Used)
	}
}
