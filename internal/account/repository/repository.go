package repository

import (
	"context"

	"account-auth/internal/account/domain"
)

// Repository persists accounts. Finders return nil, nil when no account matches.
// Update applies a partial patch atomically and returns the updated account; it
// returns domain.ErrNotFound for an unknown id and domain.ErrStaleWrite when the
// patch precondition no longer holds.
type Repository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, id string, p domain.Patch) (*domain.Account, error)
}
