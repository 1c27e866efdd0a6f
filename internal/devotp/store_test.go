package devotp

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryStore_PutAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	expiresAt := time.Now().UTC().Add(5 * time.Minute)

	if err := store.Put(ctx, "a@x.io", "123456", expiresAt); err != nil {
		t.Fatalf("Put: %v", err)
	}

	otp, ok, err := store.Get(ctx, "a@x.io")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get should return OTP after Put")
	}
	if otp != "123456" {
		t.Errorf("otp = %q, want %q", otp, "123456")
	}
}

func TestMemoryStore_PutReplacesEarlierCode(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	expiresAt := time.Now().UTC().Add(5 * time.Minute)

	_ = store.Put(ctx, "a@x.io", "111111", expiresAt)
	_ = store.Put(ctx, "a@x.io", "222222", expiresAt)

	otp, ok, _ := store.Get(ctx, "a@x.io")
	if !ok || otp != "222222" {
		t.Errorf("ok=%v otp=%q, want latest code", ok, otp)
	}
}

func TestMemoryStore_Get_ReturnsFalseWhenMissing(t *testing.T) {
	store := NewMemoryStore()

	otp, ok, err := store.Get(context.Background(), "nobody@x.io")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("Get should return false when OTP is missing")
	}
	if otp != "" {
		t.Errorf("otp = %q, want empty string", otp)
	}
}

func TestMemoryStore_Get_ExpiredEntriesAreDropped(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.nowF = func() time.Time { return now }
	ctx := context.Background()

	_ = store.Put(ctx, "a@x.io", "123456", now)

	if _, ok, _ := store.Get(ctx, "a@x.io"); ok {
		t.Error("Get should return false at the expiry instant")
	}
	store.mu.RLock()
	_, present := store.m["a@x.io"]
	store.mu.RUnlock()
	if present {
		t.Error("expired entry should be removed")
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	expiresAt := time.Now().UTC().Add(5 * time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		email := "user-" + string(rune('0'+i)) + "@x.io"
		go func() {
			defer wg.Done()
			_ = store.Put(ctx, email, "123456", expiresAt)
		}()
		go func() {
			defer wg.Done()
			_, _, _ = store.Get(ctx, email)
		}()
	}
	wg.Wait()
}

func TestMemoryStore_GetKeepsCodeStoredAfterExpiryCheck(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	if err := store.Put(ctx, "a@x.io", "111111", base.Add(-time.Minute)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// A fresh code arrives between the read of the expired entry and its removal.
	var once sync.Once
	store.nowF = func() time.Time {
		once.Do(func() {
			if err := store.Put(ctx, "a@x.io", "222222", base.Add(5*time.Minute)); err != nil {
				t.Errorf("Put: %v", err)
			}
		})
		return base
	}

	otp, ok, err := store.Get(ctx, "a@x.io")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok || otp != "222222" {
		t.Errorf("Get = %q, %v; want fresh code", otp, ok)
	}

	otp, ok, _ = store.Get(ctx, "a@x.io")
	if !ok || otp != "222222" {
		t.Errorf("fresh code was dropped: Get = %q, %v", otp, ok)
	}
}
