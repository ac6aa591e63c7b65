package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.nhat.io/otelsql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/goto/oaflow/internal/store"
)

//go:embed migrations/*.sql
var migrationFs embed.FS

type Store struct {
	db     *gorm.DB
	config store.Config
}

func NewStore(c store.Config) (*Store, error) {
	driverName, err := otelsql.Register("pgx",
		otelsql.AllowRoot(),
		otelsql.TraceQueryWithoutArgs(),
		otelsql.TraceRowsClose(),
		otelsql.TraceRowsAffected(),
		otelsql.WithDatabaseName(c.Name),
	)
	if err != nil {
		return nil, fmt.Errorf("registering instrumented driver: %w", err)
	}

	sqlDB, err := sql.Open(driverName, c.DSN())
	if err != nil {
		return nil, err
	}
	if c.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	}
	if c.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	}
	if err := otelsql.RecordStats(sqlDB); err != nil {
		return nil, fmt.Errorf("recording db stats: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(c.LogLevel)),
	})
	if err != nil {
		return nil, err
	}
	if err := gormDB.Use(otelgorm.NewPlugin(otelgorm.WithDBName(c.Name))); err != nil {
		return nil, fmt.Errorf("registering gorm tracing plugin: %w", err)
	}

	return &Store{db: gormDB, config: c}, nil
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate applies every pending embedded migration
func (s *Store) Migrate() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Rollback reverts the last applied migration
func (s *Store) Rollback() error {
	m, err := s.migrator()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("reverting migration: %w", err)
	}
	return nil
}

func (s *Store) migrator() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFs, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", source, s.config.MigrationURL())
	if err != nil {
		return nil, fmt.Errorf("initializing migrator: %w", err)
	}
	return m, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}
