package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		category   TEXT NOT NULL,
		name       TEXT NOT NULL,
		unit       TEXT NOT NULL DEFAULT 'kg',
		created_at TEXT NOT NULL,
		UNIQUE (category, name)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_moves (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL REFERENCES items(id),
		move_type  TEXT NOT NULL CHECK (move_type IN ('in', 'out')),
		qty_kg     TEXT NOT NULL CHECK (CAST(qty_kg AS REAL) >= 0),
		ref_type   TEXT NOT NULL DEFAULT '',
		ref_id     TEXT NOT NULL DEFAULT '',
		note       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_moves_item_type ON stock_moves (item_id, move_type)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS batch_months (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL UNIQUE,
		start_date TEXT NOT NULL,
		end_date   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS pallets (
		id             TEXT PRIMARY KEY,
		code           TEXT NOT NULL UNIQUE,
		room_id        TEXT NOT NULL REFERENCES rooms(id),
		batch_month_id TEXT NOT NULL REFERENCES batch_months(id),
		tray_count     INTEGER NOT NULL CHECK (tray_count >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS production_tasks (
		id          TEXT PRIMARY KEY,
		day         TEXT NOT NULL,
		task_name   TEXT NOT NULL,
		responsible TEXT NOT NULL DEFAULT '',
		minutes     INTEGER NOT NULL DEFAULT 0,
		location    TEXT NOT NULL DEFAULT '',
		note        TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS production_task_pallets (
		task_id   TEXT NOT NULL REFERENCES production_tasks(id) ON DELETE CASCADE,
		pallet_id TEXT NOT NULL REFERENCES pallets(id),
		position  INTEGER NOT NULL,
		PRIMARY KEY (task_id, pallet_id)
	)`,
	`CREATE TABLE IF NOT EXISTS feed_events (
		id        TEXT PRIMARY KEY,
		task_id   TEXT NOT NULL REFERENCES production_tasks(id) ON DELETE CASCADE,
		pallet_id TEXT NOT NULL REFERENCES pallets(id),
		item_id   TEXT NOT NULL REFERENCES items(id),
		qty_kg    TEXT NOT NULL CHECK (CAST(qty_kg AS REAL) >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS production_outputs (
		id              TEXT PRIMARY KEY,
		task_id         TEXT NOT NULL UNIQUE REFERENCES production_tasks(id) ON DELETE CASCADE,
		frass_kg        TEXT,
		larvae_total_kg TEXT,
		created_at      TEXT NOT NULL
	)`,
}

// Migrate crea las tablas si no existen.
func Migrate(ctx context.Context, db *sql.DB) (retErr error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: sentencia %d: %w", i, err)
		}
	}
	return tx.Commit()
}
