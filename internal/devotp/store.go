// Package devotp holds OTPs for dev-only retrieval by recipient email, used only
// when dev OTP mode is enabled (DevService/GetOTP).
package devotp

import (
	"context"
	"sync"
	"time"
)

// Store holds the latest plain OTP sent to each email. Not used in production.
type Store interface {
	// Put stores otp for email until expiresAt, replacing any earlier code.
	Put(ctx context.Context, email, otp string, expiresAt time.Time) error
	// Get returns the otp for email if present and not expired. Returns ok false if missing or expired.
	Get(ctx context.Context, email string) (otp string, ok bool, err error)
}

type entry struct {
	otp       string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]entry
	nowF func() time.Time
}

// NewMemoryStore returns a new in-memory dev OTP store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]entry),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

// Put stores otp for email until expiresAt.
func (s *MemoryStore) Put(_ context.Context, email, otp string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[email] = entry{otp: otp, expiresAt: expiresAt}
	return nil
}

// Get returns the otp for email if present and not expired. Expired entries are dropped.
func (s *MemoryStore) Get(_ context.Context, email string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.m[email]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	now := s.nowF()
	if e.expiresAt.After(now) {
		return e.otp, true, nil
	}

	// A Put may have landed since RUnlock; only drop the entry if it is still expired.
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok = s.m[email]
	if !ok {
		return "", false, nil
	}
	if e.expiresAt.After(now) {
		return e.otp, true, nil
	}
	delete(s.m, email)
	return "", false, nil
}
