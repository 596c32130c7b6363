package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente. Las salas, lotes y pallets se cargan con cmd/seed.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS items (
		id         TEXT PRIMARY KEY,
		category   TEXT NOT NULL,
		name       TEXT NOT NULL,
		unit       TEXT NOT NULL DEFAULT 'kg',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (category, name)
	)`,
	`CREATE TABLE IF NOT EXISTS stock_moves (
		id         TEXT PRIMARY KEY,
		item_id    TEXT NOT NULL REFERENCES items(id),
		move_type  TEXT NOT NULL CHECK (move_type IN ('in', 'out')),
		qty_kg     NUMERIC(14,3) NOT NULL CHECK (qty_kg >= 0),
		ref_type   TEXT NOT NULL DEFAULT '',
		ref_id     TEXT NOT NULL DEFAULT '',
		note       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_moves_item_type ON stock_moves (item_id, move_type)`,
	`CREATE INDEX IF NOT EXISTS idx_stock_moves_ref ON stock_moves (ref_type, ref_id)`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id   TEXT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS batch_months (
		id         TEXT PRIMARY KEY,
		code       TEXT NOT NULL UNIQUE,
		start_date DATE NOT NULL,
		end_date   DATE NOT NULL
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
		day         DATE NOT NULL,
		task_name   TEXT NOT NULL,
		responsible TEXT NOT NULL DEFAULT '',
		minutes     INTEGER NOT NULL DEFAULT 0,
		location    TEXT NOT NULL DEFAULT '',
		note        TEXT NOT NULL DEFAULT '',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_production_tasks_day ON production_tasks (day)`,
	`CREATE TABLE IF NOT EXISTS production_task_pallets (
		task_id   TEXT NOT NULL REFERENCES production_tasks(id) ON DELETE CASCADE,
		pallet_id TEXT NOT NULL REFERENCES pallets(id),
		position  INTEGER NOT NULL,
		PRIMARY KEY (task_id, pallet_id)
	)`,
	`CREATE TABLE IF NOT EXISTS feed_events (
		seq       BIGINT GENERATED ALWAYS AS IDENTITY,
		id        TEXT PRIMARY KEY,
		task_id   TEXT NOT NULL REFERENCES production_tasks(id) ON DELETE CASCADE,
		pallet_id TEXT NOT NULL REFERENCES pallets(id),
		item_id   TEXT NOT NULL REFERENCES items(id),
		qty_kg    NUMERIC(14,3) NOT NULL CHECK (qty_kg >= 0)
	)`,
	`CREATE TABLE IF NOT EXISTS production_outputs (
		id              TEXT PRIMARY KEY,
		task_id         TEXT NOT NULL UNIQUE REFERENCES production_tasks(id) ON DELETE CASCADE,
		frass_kg        NUMERIC(14,3) CHECK (frass_kg >= 0),
		larvae_total_kg NUMERIC(14,3) CHECK (larvae_total_kg >= 0),
		created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate aplica el esquema dentro de una transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("migrate: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	for i, stmt := range schema {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: sentencia %d: %w", i, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("migrate: commit: %w", err)
	}
	return nil
}
