// Package sqlite adaptador de persistencia embebido (un solo archivo) para granjas sin
// servidor PostgreSQL. Implementa los mismos puertos que el paquete postgres.
//
// Cantidades y fechas se guardan como TEXT y se convierten aquí, para que los decimales
// sean exactos y las fechas comparables como cadenas.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	sqlitedrv "modernc.org/sqlite" // driver sqlite en Go puro
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
)

const (
	dayLayout = "2006-01-02"
	// timeLayout ancho fijo en UTC: el orden de cadenas coincide con el orden temporal.
	timeLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Querier subconjunto común de *sql.DB y *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Open abre (o crea) la base SQLite en path con claves foráneas activas.
// Usa una sola conexión: SQLite serializa escrituras y así las tx no se bloquean entre sí.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		path = "tenebrio.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

func wrapErr(op string, err error) error {
	return domain.NewPersistenceError(op, err)
}

// isUniqueViolation indica si err es una violación de UNIQUE o PRIMARY KEY.
func isUniqueViolation(err error) bool {
	var se *sqlitedrv.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE || se.Code() == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func parseDay(s string) (time.Time, error) {
	return time.Parse(dayLayout, s)
}

func nullDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decimalPtr(s sql.NullString) (*decimal.Decimal, error) {
	if !s.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
