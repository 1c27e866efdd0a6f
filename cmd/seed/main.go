// seed creates the initial verified ADMIN account from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD. Idempotent: an existing account with that email is left untouched.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"account-auth/internal/account/domain"
	accountrepo "account-auth/internal/account/repository"
	"account-auth/internal/config"
	"account-auth/internal/db"
	"account-auth/internal/logging"
	"account-auth/internal/security"
)

type accountStore interface {
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
}

func main() {
	cfg, err := config.LoadDatabase()
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logger := logging.SetDefault(logging.Options{Service: "account-auth-seed", Format: cfg.LogFormat, Level: cfg.LogLevel})
	if cfg.DatabaseURL == "" {
		logger.Error("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.DatabaseURL, db.DefaultConnectAttempts)
	if err != nil {
		logger.Error("db", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	created, err := seedAdmin(ctx, accountrepo.NewPostgresRepository(pool), security.NewHasher(cfg.BcryptCost),
		cfg.SeedAdminEmail, cfg.SeedAdminPassword, cfg.SeedAdminPhone, time.Now().UTC())
	if err != nil {
		logger.Error("seed admin", "error", err)
		pool.Close()
		os.Exit(1)
	}
	if !created {
		logger.Info("Seed already applied; admin exists. Skipping.", "email", cfg.SeedAdminEmail)
		return
	}
	logger.Info("Seed completed successfully.")
	fmt.Printf("Admin login: %s\n", strings.TrimSpace(cfg.SeedAdminEmail))
}

// seedAdmin creates a verified ADMIN account unless one with email already exists.
func seedAdmin(ctx context.Context, repo accountStore, hasher *security.Hasher, email, password, phone string, now time.Time) (bool, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return false, errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD are required")
	}
	existing, err := repo.FindByEmail(ctx, email)
	if err != nil {
		return false, fmt.Errorf("seed check: %w", err)
	}
	if existing != nil {
		return false, nil
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	err = repo.Create(ctx, &domain.Account{
		ID:            uuid.New().String(),
		Email:         email,
		UserName:      "Admin",
		Phone:         phone,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if errors.Is(err, domain.ErrDuplicateEmail) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
