package data

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ KV = (*SQLKV)(nil)

// SQLKV keeps entries in the kv_entries table. It runs on sqlite3 and postgres.
type SQLKV struct {
	db  *sqlx.DB
	now func() time.Time
}

type kvRow struct {
	Key       string        `db:"entry_key"`
	Value     string        `db:"value"`
	ExpiresAt sql.NullInt64 `db:"expires_at"`
}

// OpenSQLKV connects to the database and applies pending migrations.
// driver is "sqlite3" or "postgres".
func OpenSQLKV(ctx context.Context, driver, source string) (*SQLKV, error) {
	db, err := sqlx.ConnectContext(ctx, driver, source)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLKV{db: db, now: time.Now}, nil
}

// RunMigrations applies all pending migrations from the embedded migrations directory.
func RunMigrations(db *sqlx.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	var dbDriver database.Driver
	switch db.DriverName() {
	case "sqlite3":
		dbDriver, err = sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	case "postgres":
		dbDriver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported migration driver %q", db.DriverName())
	}
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, db.DriverName(), dbDriver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	var row kvRow
	err := s.db.GetContext(ctx, &row,
		s.db.Rebind(`SELECT entry_key, value, expires_at FROM kv_entries WHERE entry_key = ?`), key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, err
	}

	if row.ExpiresAt.Valid && row.ExpiresAt.Int64 <= s.now().UnixMilli() {
		_, _ = s.db.ExecContext(ctx,
			s.db.Rebind(`DELETE FROM kv_entries WHERE entry_key = ? AND expires_at = ?`), key, row.ExpiresAt.Int64)
		return nil, ErrKeyNotFound
	}
	return []byte(row.Value), nil
}

func (s *SQLKV) Put(ctx context.Context, key string, value []byte) error {
	return s.upsert(ctx, kvRow{Key: key, Value: string(value)})
}

func (s *SQLKV) PutTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.upsert(ctx, kvRow{
		Key:       key,
		Value:     string(value),
		ExpiresAt: sql.NullInt64{Int64: s.now().Add(ttl).UnixMilli(), Valid: true},
	})
}

func (s *SQLKV) upsert(ctx context.Context, row kvRow) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO kv_entries (entry_key, value, expires_at)
		VALUES (:entry_key, :value, :expires_at)
		ON CONFLICT (entry_key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at`, row)
	return err
}

func (s *SQLKV) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM kv_entries WHERE entry_key = ?`), key)
	return err
}

func (s *SQLKV) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}
