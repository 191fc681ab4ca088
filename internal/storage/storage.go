// Package storage owns the single sqlite session the whole app shares and
// the versioned schema migrations that evolve it between app releases.
package storage

import (
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/euroviaje/trip-ledger/internal"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps the one gorm session. It is opened once at startup and lives
// for the rest of the process; repositories borrow the handle, they never
// own it.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

func Open(cfg internal.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Silent)
	if cfg.LogQueries {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, internal.NewInternalError("failed to open database", err)
	}

	// sqlite ships with foreign keys off; cascading deletes depend on this.
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, internal.NewInternalError("failed to enable foreign keys", err)
	}

	logger.Info("database opened", "path", cfg.Path)

	return &Store{db: db, logger: logger}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate applies every pending schema migration in order. The goose
// version table makes this idempotent: running it N times leaves the same
// schema as running it once.
func (s *Store) Migrate() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return internal.NewInternalError("failed to unwrap sql connection", err)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetTableName("schema_migrations")
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return internal.NewInternalError("failed to set migration dialect", err)
	}

	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return internal.NewInternalError("failed to apply migrations", err)
	}

	version, err := goose.GetDBVersion(sqlDB)
	if err != nil {
		return internal.NewInternalError("failed to read schema version", err)
	}
	s.logger.Info("schema up to date", "version", version)

	return nil
}

// Version reports the current schema version from the goose table.
func (s *Store) Version() (int64, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return 0, internal.NewInternalError("failed to unwrap sql connection", err)
	}
	goose.SetTableName("schema_migrations")
	if err := goose.SetDialect("sqlite3"); err != nil {
		return 0, internal.NewInternalError("failed to set migration dialect", err)
	}
	return goose.GetDBVersion(sqlDB)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to unwrap sql connection: %w", err)
	}
	return sqlDB.Close()
}
