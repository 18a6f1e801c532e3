package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type Db interface {
	InitDb(ctx context.Context) error

	Get() *sql.DB
	Close() error

	// Rebind rewrites ? placeholders into the dialect's own form.
	Rebind(query string) string

	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *sql.Row
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
}

var dbLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	dbLogger = l
}

// Open returns the dialect for driver, "sqlite" or "postgres".
func Open(driver, dsn string) (Db, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		return NewSQLite(dsn), nil
	case "postgres", "pgx":
		return NewPostgres(dsn), nil
	}
	return nil, &UnknownDriverError{Driver: driver}
}

type UnknownDriverError struct {
	Driver string
}

func (e *UnknownDriverError) Error() string {
	return "unknown database driver: " + e.Driver
}

// dollarPlaceholders turns ? into $1, $2, ... outside of quoted strings.
func dollarPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
