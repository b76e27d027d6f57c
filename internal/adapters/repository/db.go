package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/comitanigiacomo/kanso-habits/internal/config"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
}

// Open connects to the configured SQL database and applies pool settings.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	switch cfg.Driver {
	case config.DriverPgx, config.DriverPostgres, config.DriverSQLite:
	default:
		return nil, fmt.Errorf("repository: driver %q has no SQL backend", cfg.Driver)
	}

	if cfg.Driver == config.DriverSQLite {
		if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("repository: failed to create database directory: %w", err)
			}
		}
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("repository: failed to connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverSQLite {
		// A single writer avoids SQLITE_BUSY under concurrent requests.
		db.SetMaxOpenConns(1)
		return db, nil
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	return db, nil
}
