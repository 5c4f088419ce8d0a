// Package main is the entry point for the person and book API server.
// It wires together configuration, the database connection, the services
// and the HTTP router.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aoideee/people-books-api/internal/data"
	"github.com/aoideee/people-books-api/internal/logger"
	"github.com/aoideee/people-books-api/internal/service"
	"github.com/aoideee/people-books-api/internal/validator"
)

// appVersion is the current version of the API, shown in logs and the healthcheck.
const appVersion = "1.0.0"

// applicationDependencies bundles every shared resource that HTTP handlers need.
// A pointer to this struct is passed as the receiver on all handler and route methods.
type applicationDependencies struct {
	config    serverConfig           // Server configuration loaded at startup
	logger    *slog.Logger           // Structured logger
	models    data.Models            // Repositories for all tables
	persons   *service.PersonService // Person operations
	books     *service.BookService   // Book operations
	validator *validator.Validator   // Request payload validation
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newApplication builds the services on top of models.
func newApplication(cfg serverConfig, log *slog.Logger, models data.Models) *applicationDependencies {
	return &applicationDependencies{
		config:    cfg,
		logger:    log,
		models:    models,
		persons:   service.NewPersonService(models.Persons, log, cfg.baseURL),
		books:     service.NewBookService(models.Books, log, cfg.baseURL),
		validator: validator.New(),
	}
}

// runServe opens the database, applies the schema when configured to,
// and serves HTTP until a shutdown signal arrives.
func runServe(cfg serverConfig) error {
	log := newLogger(cfg)

	dialect, db, err := openDB(cfg)
	if err != nil {
		log.Error(err.Error())
		return err
	}
	defer db.Close() // Close the pool cleanly when runServe returns.

	log.Info("database connection pool established", "driver", dialect.Name)

	if cfg.db.autoMigrate {
		if err := migrate(db, dialect); err != nil {
			log.Error(err.Error())
			return err
		}
		log.Info("database schema applied")
	}

	app := newApplication(cfg, log, data.NewModels(db, dialect))
	return app.serve()
}

// runMigrate applies the schema and exits.
func runMigrate(cfg serverConfig) error {
	log := newLogger(cfg)

	dialect, db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrate(db, dialect); err != nil {
		return err
	}
	log.Info("database schema applied", "driver", dialect.Name)
	return nil
}

func newLogger(cfg serverConfig) *slog.Logger {
	return logger.New(logger.Config{
		Format:      cfg.logFormat,
		Environment: cfg.environment,
		Level:       logger.ParseLevel(cfg.logLevel),
		AddSource:   cfg.logSource,
	})
}

// openDB resolves the configured dialect and opens its connection pool.
func openDB(cfg serverConfig) (data.Dialect, *sql.DB, error) {
	dialect, err := data.DialectFor(cfg.db.driver)
	if err != nil {
		return data.Dialect{}, nil, err
	}

	db, err := data.Open(dialect, data.DBConfig{
		DSN:          cfg.db.dsn,
		MaxOpenConns: cfg.db.maxOpenConns,
		MaxIdleConns: cfg.db.maxIdleConns,
		MaxIdleTime:  cfg.db.maxIdleTime,
	})
	if err != nil {
		return data.Dialect{}, nil, err
	}
	return dialect, db, nil
}

func migrate(db *sql.DB, dialect data.Dialect) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return data.Migrate(ctx, db, dialect)
}
