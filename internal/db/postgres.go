package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS site_content (
    id TEXT PRIMARY KEY,
    content BYTEA NOT NULL,
    content_hash TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS leads (
    id TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    name TEXT NOT NULL,
    email TEXT NOT NULL,
    contacted BOOLEAN NOT NULL DEFAULT false
);

CREATE INDEX IF NOT EXISTS leads_created_at ON leads (created_at DESC);`

// Postgres talks to a hosted database through the pgx stdlib driver.
type Postgres struct {
	url  string
	conn *sql.DB
}

func NewPostgres(url string) *Postgres {
	return &Postgres{url: url}
}

func (p *Postgres) InitDb(ctx context.Context) error {
	conn, err := sql.Open("pgx", p.url)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	conn.SetConnMaxIdleTime(5 * time.Minute)
	conn.SetConnMaxLifetime(30 * time.Minute)
	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(20)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("ping db: %w", err)
	}
	p.conn = conn

	if _, err := conn.ExecContext(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	dbLogger.Info().Msg("Database initialized")
	return nil
}

func (p *Postgres) Get() *sql.DB {
	return p.conn
}

func (p *Postgres) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Postgres) Rebind(query string) string {
	return dollarPlaceholders(query)
}

func (p *Postgres) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	query = p.Rebind(query)
	dbLogger.Debug().Str("query", query).Msg("Query")
	return p.conn.QueryContext(ctx, query, args...)
}

func (p *Postgres) QueryRow(ctx context.Context, query string, args ...any) *sql.Row {
	query = p.Rebind(query)
	dbLogger.Debug().Str("query", query).Msg("QueryRow")
	return p.conn.QueryRowContext(ctx, query, args...)
}

func (p *Postgres) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	query = p.Rebind(query)
	dbLogger.Debug().Str("query", query).Msg("Exec")
	return p.conn.ExecContext(ctx, query, args...)
}
