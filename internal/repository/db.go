package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Config struct {
	Driver           string // "sqlite" or "postgres"
	DSN              string // empty sqlite DSN means in-memory
	MaxConns         int32
	MinConns         int32
	MaxConnLifetime  time.Duration
	MaxConnIdleTime  time.Duration
	DialTimeout      time.Duration
	StatementTimeout time.Duration
}

// DB is an open handle plus the dialect its SQL must be built for.
type DB struct {
	SQL     *sql.DB
	Dialect string
	pool    *pgxpool.Pool
	logger  *slog.Logger
}

// Open connects with the configured driver. Postgres goes through a pgx pool
// wrapped as *sql.DB.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Driver {
	case "", dialect.SQLite, "sqlite":
		return openSQLite(cfg, logger)
	case dialect.Postgres, "pgx":
		return openPostgres(ctx, cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func openSQLite(cfg Config, logger *slog.Logger) (*DB, error) {
	dsn := cfg.DSN
	inMemory := dsn == "" || dsn == ":memory:"
	if inMemory {
		dsn = ":memory:"
	} else if !strings.Contains(dsn, "_pragma=foreign_keys") {
		// ent's sqlite migrator refuses to run with foreign keys off
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=foreign_keys(1)"
	}
	logger.Info("repository.open", "driver", "sqlite", "in_memory", inMemory)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		logger.Error("repository.open.failed", "driver", "sqlite", "err", err)
		return nil, err
	}
	// one writer; an in-memory database lives only as long as its connection
	db.SetMaxOpenConns(1)
	if inMemory {
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}
	return &DB{SQL: db, Dialect: dialect.SQLite, logger: logger}, nil
}

func openPostgres(ctx context.Context, cfg Config, logger *slog.Logger) (*DB, error) {
	logger.Info("repository.open", "driver", "postgres")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("repository.open.failed", "driver", "postgres", "err", err)
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	pc.MinConns = cfg.MinConns
	if cfg.MaxConnLifetime > 0 {
		pc.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	}
	pc.ConnConfig.RuntimeParams["application_name"] = "tripdocs"
	if cfg.StatementTimeout > 0 {
		pc.ConnConfig.RuntimeParams["statement_timeout"] = fmt.Sprintf("%d", cfg.StatementTimeout.Milliseconds())
	}

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("repository.open.failed", "driver", "postgres", "err", err)
		return nil, err
	}
	return &DB{SQL: stdlib.OpenDBFromPool(pool), Dialect: dialect.Postgres, pool: pool, logger: logger}, nil
}

// Close closes the database connections gracefully.
func (d *DB) Close() {
	if d == nil {
		return
	}
	if err := d.SQL.Close(); err != nil {
		d.logger.Error("repository.close.failed", "err", err)
	}
	if d.pool != nil {
		d.pool.Close()
	}
	d.logger.Info("repository.closed")
}

// HealthCheck pings the database; timeout 0 means no extra deadline.
func (d *DB) HealthCheck(ctx context.Context, timeout time.Duration) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	if d.pool != nil {
		return d.pool.Ping(ctx)
	}
	return d.SQL.PingContext(ctx)
}
