package repository

import (
	"context"
	"sync"
	"time"

	"account-auth/internal/account/domain"
)

// MemoryRepository is an in-process Repository for tests and database-less
// development runs. Accounts are copied on the way in and out.
type MemoryRepository struct {
	mu      sync.Mutex
	byID    map[string]*domain.Account
	byEmail map[string]string
	now     func() time.Time
}

// NewMemoryRepository returns an empty MemoryRepository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]string),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byEmail[email]
	if !ok {
		return nil, nil
	}
	return r.byID[id].Clone(), nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return a.Clone(), nil
}

func (r *MemoryRepository) Create(_ context.Context, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	r.byID[a.ID] = a.Clone()
	r.byEmail[a.Email] = a.ID
	return nil
}

func (r *MemoryRepository) Update(_ context.Context, id string, p domain.Patch) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if p.ExpectRefreshTokenHash != nil && a.RefreshTokenHash != *p.ExpectRefreshTokenHash {
		return nil, domain.ErrStaleWrite
	}
	p.Apply(a, r.now())
	return a.Clone(), nil
}
