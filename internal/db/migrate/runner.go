// Package migrate applies the embedded account-auth schema with golang-migrate.
package migrate

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/samber/oops"

	"account-auth/internal/db"
)

// ErrNoChange is returned by Run when the schema is already at the target version.
var ErrNoChange = migrate.ErrNoChange

// Direction values accepted by Run.
const (
	Up   = "up"
	Down = "down"
)

// stepper is the part of *migrate.Migrate that Run drives.
type stepper interface {
	Up() error
	Down() error
}

// Run applies (up) or rolls back (down) every embedded migration against dsn.
// It returns ErrNoChange when there is nothing to do; callers usually treat that as success.
func Run(dsn, direction string) error {
	if dsn == "" {
		return oops.Code("MIGRATE_CONFIG_INVALID").
			Errorf("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}
	if direction != Up && direction != Down {
		return oops.Code("MIGRATE_CONFIG_INVALID").
			With("direction", direction).
			Errorf("direction must be up or down, got %q", direction)
	}

	src, err := iofs.New(db.MigrationFS, "migrations")
	if err != nil {
		return oops.Code("MIGRATE_SOURCE_FAILED").With("operation", "open embedded migrations").Wrap(err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return oops.Code("MIGRATE_CONNECT_FAILED").With("operation", "open migration target").Wrap(err)
	}
	defer func() { _, _ = m.Close() }()

	return apply(m, direction)
}

func apply(m stepper, direction string) error {
	var err error
	switch direction {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return oops.Code("MIGRATE_CONFIG_INVALID").Errorf("direction must be up or down, got %q", direction)
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return ErrNoChange
	}
	if err != nil {
		return oops.Code("MIGRATION_FAILED").With("direction", direction).Wrap(err)
	}
	return nil
}
