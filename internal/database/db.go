// Package database owns the MySQL connection for the API.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/guilhermereis1k/oscar-cinema/internal/config"
)

// pingTimeout bounds the startup connectivity check.
const pingTimeout = 5 * time.Second

// buildDSN assembles the driver DSN. parseTime maps DATETIME columns onto
// time.Time and loc=UTC keeps every stored timestamp in UTC, which the
// scheduling rules rely on.
func buildDSN(user, pass, host, port, name string) string {
	auth := user
	if pass != "" {
		auth = user + ":" + pass
	}
	return fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)
}

// poolLimits normalizes the configured pool settings, falling back to safe
// values when a setting is missing or nonsensical.
func poolLimits(cfg config.Config) (open, idle int, lifetime time.Duration) {
	open, idle, lifetime = cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnLifetime
	if open <= 0 {
		open = 25
	}
	if idle <= 0 || idle > open {
		idle = open
	}
	if lifetime <= 0 {
		lifetime = 30 * time.Minute
	}
	return open, idle, lifetime
}

// Open connects to MySQL using the app configuration, applies the pool
// limits and verifies connectivity before returning the handle.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	open, idle, lifetime := poolLimits(cfg)
	db.SetMaxOpenConns(open)
	db.SetMaxIdleConns(idle)
	db.SetConnMaxLifetime(lifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}
	return db, nil
}
