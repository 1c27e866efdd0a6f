package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"

	"account-auth/internal/account/domain"
)

// pool is the subset of *pgxpool.Pool used here; pgxmock satisfies it in tests.
type pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const accountColumns = `id, email, user_name, phone, password_hash, role, email_verified,
	email_otp, email_otp_expires_at, reset_otp, reset_otp_expires_at,
	refresh_token_hash, created_at, updated_at`

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool pool
	now  func() time.Time
}

// NewPostgresRepository returns an account repository backed by p (usually a *pgxpool.Pool).
func NewPostgresRepository(p pool) *PostgresRepository {
	return &PostgresRepository{pool: p, now: func() time.Time { return time.Now().UTC() }}
}

// FindByEmail returns the account registered with email (exact match), or nil if none.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_EMAIL_FAILED").
			With("operation", "get account by email").
			Wrap(err)
	}
	return a, nil
}

// FindByID returns the account with id, or nil if none.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	a, err := scanAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_GET_BY_ID_FAILED").
			With("operation", "get account by id").
			With("id", id).
			Wrap(err)
	}
	return a, nil
}

// Create inserts a. ID and timestamps must already be set.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	if err := a.Validate(); err != nil {
		return oops.Code("ACCOUNT_INVALID").With("operation", "validate account").Wrap(err)
	}
	emailOTP, emailExp := pairColumns(a.EmailOTP)
	resetOTP, resetExp := pairColumns(a.ResetOTP)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		a.ID,
		a.Email,
		nullable(a.UserName),
		a.Phone,
		a.PasswordHash,
		string(a.Role),
		a.EmailVerified,
		emailOTP,
		emailExp,
		resetOTP,
		resetExp,
		nullable(a.RefreshTokenHash),
		a.CreatedAt,
		a.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("ACCOUNT_EMAIL_TAKEN").
				With("operation", "insert account").
				Wrap(domain.ErrDuplicateEmail)
		}
		return oops.Code("ACCOUNT_CREATE_FAILED").
			With("operation", "insert account").
			With("id", a.ID).
			Wrap(err)
	}
	return nil
}

// Update applies p to the account with id in a single statement. When
// p.ExpectRefreshTokenHash is set the row is only updated if the stored digest
// still equals it.
func (r *PostgresRepository) Update(ctx context.Context, id string, p domain.Patch) (*domain.Account, error) {
	if p.Empty() {
		return nil, oops.Code("ACCOUNT_UPDATE_EMPTY").With("id", id).Errorf("empty account patch")
	}
	query, args := buildUpdate(id, p, r.now())
	a, err := scanAccount(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		if p.ExpectRefreshTokenHash != nil {
			return nil, oops.Code("ACCOUNT_STALE_WRITE").With("id", id).Wrap(domain.ErrStaleWrite)
		}
		return nil, oops.Code("ACCOUNT_NOT_FOUND").With("id", id).Wrap(domain.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ACCOUNT_UPDATE_FAILED").
			With("operation", "update account").
			With("id", id).
			Wrap(err)
	}
	return a, nil
}

func buildUpdate(id string, p domain.Patch, now time.Time) (string, []any) {
	args := []any{id}
	var sets []string
	set := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.PasswordHash != nil {
		set("password_hash", *p.PasswordHash)
	}
	if p.EmailVerified != nil {
		set("email_verified", *p.EmailVerified)
	}
	switch {
	case p.ClearEmailOTP:
		sets = append(sets, "email_otp = NULL", "email_otp_expires_at = NULL")
	case p.EmailOTP != nil:
		set("email_otp", p.EmailOTP.Code)
		set("email_otp_expires_at", p.EmailOTP.ExpiresAt)
	}
	switch {
	case p.ClearResetOTP:
		sets = append(sets, "reset_otp = NULL", "reset_otp_expires_at = NULL")
	case p.ResetOTP != nil:
		set("reset_otp", p.ResetOTP.Code)
		set("reset_otp_expires_at", p.ResetOTP.ExpiresAt)
	}
	if p.RefreshTokenHash != nil {
		set("refresh_token_hash", nullable(*p.RefreshTokenHash))
	}
	set("updated_at", now)

	where := "id = $1"
	if p.ExpectRefreshTokenHash != nil {
		args = append(args, nullable(*p.ExpectRefreshTokenHash))
		where += fmt.Sprintf(" AND refresh_token_hash IS NOT DISTINCT FROM $%d", len(args))
	}
	query := "UPDATE accounts SET " + strings.Join(sets, ", ") +
		" WHERE " + where + " RETURNING " + accountColumns
	return query, args
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var (
		a                  domain.Account
		role               string
		userName           *string
		emailOTP, resetOTP *string
		emailExp, resetExp *time.Time
		refreshTokenHash   *string
	)
	err := row.Scan(
		&a.ID,
		&a.Email,
		&userName,
		&a.Phone,
		&a.PasswordHash,
		&role,
		&a.EmailVerified,
		&emailOTP,
		&emailExp,
		&resetOTP,
		&resetExp,
		&refreshTokenHash,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Role = domain.Role(role)
	if userName != nil {
		a.UserName = *userName
	}
	if refreshTokenHash != nil {
		a.RefreshTokenHash = *refreshTokenHash
	}
	a.EmailOTP = pairFromColumns(emailOTP, emailExp)
	a.ResetOTP = pairFromColumns(resetOTP, resetExp)
	return &a, nil
}

func pairColumns(p *domain.OTPPair) (*string, *time.Time) {
	if p == nil {
		return nil, nil
	}
	code, exp := p.Code, p.ExpiresAt
	return &code, &exp
}

func pairFromColumns(code *string, exp *time.Time) *domain.OTPPair {
	if code == nil || exp == nil {
		return nil
	}
	return &domain.OTPPair{Code: *code, ExpiresAt: exp.UTC()}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
