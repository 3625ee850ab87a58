package db

import (
	"fmt"
	"log"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Options selects the lead store backend
type Options struct {
	Path        string // local SQLite file
	TursoURL    string // remote libsql database, takes precedence over Path
	TursoToken  string
	Environment string
}

// Initialize sets up the database connection.
// A configured Turso URL opens a remote libsql database, otherwise a local
// SQLite file is used with WAL mode for concurrency.
func Initialize(opts Options) error {
	var err error

	// Determine log level based on environment
	logLevel := logger.Info
	if opts.Environment == "production" {
		logLevel = logger.Warn
	}
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	if opts.TursoURL != "" {
		DB, err = gorm.Open(sqlite.New(sqlite.Config{
			DriverName: "libsql",
			DSN:        tursoDSN(opts.TursoURL, opts.TursoToken),
		}), gormCfg)
		if err != nil {
			return fmt.Errorf("failed to connect to turso database: %w", err)
		}
		log.Println("Database connection established (Turso libsql)")
		return nil
	}

	// Enable WAL mode for better concurrency support
	dsn := opts.Path + "?_journal_mode=WAL"

	DB, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connection established (WAL mode enabled)")
	return nil
}

// tursoDSN appends the auth token to a libsql URL
func tursoDSN(url, token string) string {
	if token == "" {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "authToken=" + token
}

// AutoMigrate runs database migrations for the provided models
func AutoMigrate(models ...interface{}) error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(models...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
