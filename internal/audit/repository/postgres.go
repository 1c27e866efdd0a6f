package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"account-auth/internal/audit/domain"
)

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PostgresRepository struct {
	db execer
}

// NewPostgresRepository returns an audit log repository backed by db (usually a *pgxpool.Pool).
func NewPostgresRepository(db execer) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create persists the audit log. The audit log must have ID set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.AuditLog) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO audit_logs (id, account_id, action, resource, ip, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, nullable(a.AccountID), a.Action, a.Resource, a.IP, nullable(a.Metadata), a.CreatedAt,
	)
	if err != nil {
		return oops.Code("AUDIT_CREATE_FAILED").
			With("operation", "insert audit log").
			With("action", a.Action).
			Wrap(err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
