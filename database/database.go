package database

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"github.com/lshigami/smartcampus/config"
	"github.com/lshigami/smartcampus/internal/model"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InMemoryDSN is a private in-memory sqlite database with foreign keys on.
const InMemoryDSN = "file::memory:?_pragma=foreign_keys(1)"

// NewDatabase opens the configured database. Postgres is the production
// driver; sqlite serves local development and the CLI.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormLogger(cfg.Log.Level)}

	switch cfg.Database.Driver {
	case "sqlite":
		db, err := OpenSQLite(sqliteDSN(cfg.Database.Path), gormCfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.Database.Path).Msg("SQLite database connection established")
		return db, nil
	case "postgres", "":
		if cfg.Database.Host == "" || cfg.Database.User == "" || cfg.Database.Name == "" {
			return nil, fmt.Errorf("database configuration is incomplete")
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.Database.Host, cfg.Database.User, cfg.Database.Password, cfg.Database.Name, cfg.Database.Port, cfg.Database.SSLMode,
		)
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info().Str("host", cfg.Database.Host).Str("name", cfg.Database.Name).Msg("Database connection established")
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.Database.Driver)
	}
}

// OpenSQLite opens a sqlite database through the pure-Go driver. SQLite
// serializes writers, so the pool is limited to one connection; this also
// keeps an in-memory database alive and shared across queries.
func OpenSQLite(dsn string, gormCfg *gorm.Config) (*gorm.DB, error) {
	if gormCfg == nil {
		gormCfg = &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	}
	db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// OpenInMemory returns a migrated, empty in-memory database.
func OpenInMemory() (*gorm.DB, error) {
	db, err := OpenSQLite(InMemoryDSN, nil)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the exam subsystem owns or reads.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Course{},
		&model.Registration{},
		&model.Setting{},
		&model.Exam{},
		&model.ExamAttempt{},
		&model.ExamQuestion{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Info().Msg("Database migrated successfully")
	return nil
}

func sqliteDSN(path string) string {
	if path == "" {
		path = "smartcampus.db"
	}
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func gormLogger(level string) logger.Interface {
	if strings.EqualFold(level, "debug") {
		return logger.Default.LogMode(logger.Info)
	}
	return logger.Default.LogMode(logger.Warn)
}
