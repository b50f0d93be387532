package common

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

// DBConfig holds the connection settings for the postgres pool.
type DBConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

// DSN renders the config as a postgres connection URI.
func (c DBConfig) DSN() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.Name, sslMode)
}

func NewDB(cfg DBConfig) (*sql.DB, error) {
	return connectDB(cfg.DSN(), cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.MaxIdleTime)
}

// connectDB opens the pool and pings it before handing it out.
func connectDB(URI string, maxOpenConns int, maxIdleConns int, maxIdleTime time.Duration) (*sql.DB, error) {
	db, err := sql.Open("postgres", URI)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxIdleTime(maxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate applies every pending migration found at source, e.g. "file://migrations".
func Migrate(source, dsn string) (*migrate.Migrate, error) {
	m, err := migrate.New(source, dsn)
	if err != nil {
		return nil, fmt.Errorf("could not load migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("could not apply migrations: %w", err)
	}

	return m, nil
}

func CloseDB(db *sql.DB) error {
	return db.Close()
}
