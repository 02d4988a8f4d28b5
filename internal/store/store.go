package store

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/abhisek/pathweaver/internal/logger"
)

// Config selects the database backend.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string

	// DSN is the connection string. For sqlite this is the database file
	// path (or a file: URI).
	DSN string
}

// ConfigFromEnv reads PATHWEAVER_DB_DRIVER and PATHWEAVER_DB_DSN. Defaults
// to a local sqlite file so the server runs without any setup.
func ConfigFromEnv() Config {
	cfg := Config{
		Driver: strings.ToLower(os.Getenv("PATHWEAVER_DB_DRIVER")),
		DSN:    os.Getenv("PATHWEAVER_DB_DSN"),
	}
	if cfg.Driver == "" {
		cfg.Driver = "sqlite"
	}
	if cfg.DSN == "" && cfg.Driver == "sqlite" {
		cfg.DSN = "pathweaver.db"
	}
	return cfg
}

// Open connects to the configured database, runs migrations, and seeds the
// singleton stats row.
func Open(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	case "sqlite":
		db, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info("database ready", "driver", cfg.Driver)
	return db, nil
}

// Migrate creates or updates the schema and seeds the stats row.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&SavedPath{},
		&ProgressRecord{},
		&Achievement{},
		&LLMRequestEvent{},
		&SiteStats{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	seed := SiteStats{ID: siteStatsRowID, UpdatedAt: time.Now().UTC()}
	if err := db.Where(SiteStats{ID: siteStatsRowID}).FirstOrCreate(&seed).Error; err != nil {
		return fmt.Errorf("seed site stats: %w", err)
	}
	return nil
}
