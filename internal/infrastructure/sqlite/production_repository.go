package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var (
	_ repository.ProductionTaskRepository   = (*ProductionTaskRepo)(nil)
	_ repository.FeedEventRepository        = (*FeedEventRepo)(nil)
	_ repository.ProductionOutputRepository = (*ProductionOutputRepo)(nil)
)

// ProductionTaskRepo tareas de producción sobre SQLite.
type ProductionTaskRepo struct {
	q Querier
}

// NewProductionTaskRepository construye el adaptador. Pasar db o tx.
func NewProductionTaskRepository(q Querier) *ProductionTaskRepo {
	return &ProductionTaskRepo{q: q}
}

const taskColumns = `id, day, task_name, responsible, minutes, location, note, created_at`

// Create inserta la tarea y sus pallets.
func (r *ProductionTaskRepo) Create(ctx context.Context, task *entity.ProductionTask) error {
	if _, err := r.q.ExecContext(ctx,
		`INSERT INTO production_tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		task.ID, task.Day.Format(dayLayout), task.TaskName, task.Responsible, task.Minutes,
		task.Location, task.Note, formatTime(task.CreatedAt),
	); err != nil {
		return wrapErr("insert production task", err)
	}
	for i, palletID := range task.PalletIDs {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO production_task_pallets (task_id, pallet_id, position) VALUES (?, ?, ?)`,
			task.ID, palletID, i,
		); err != nil {
			return wrapErr("insert production task pallet", err)
		}
	}
	return nil
}

// GetByID obtiene una tarea con sus pallets; nil, nil si no existe.
func (r *ProductionTaskRepo) GetByID(ctx context.Context, id string) (*entity.ProductionTask, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM production_tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get production task", err)
	}
	if t.PalletIDs, err = r.palletIDs(ctx, t.ID); err != nil {
		return nil, err
	}
	return t, nil
}

// ListByDay lista tareas por día (rango inclusivo, extremos opcionales).
func (r *ProductionTaskRepo) ListByDay(ctx context.Context, from, to *time.Time) ([]*entity.ProductionTask, error) {
	query := `SELECT ` + taskColumns + ` FROM production_tasks WHERE 1 = 1`
	var args []any
	if from != nil {
		query += ` AND day >= ?`
		args = append(args, from.Format(dayLayout))
	}
	if to != nil {
		query += ` AND day <= ?`
		args = append(args, to.Format(dayLayout))
	}
	query += ` ORDER BY day DESC, created_at DESC`

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list production tasks", err)
	}
	var list []*entity.ProductionTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			_ = rows.Close()
			return nil, wrapErr("scan production task", err)
		}
		list = append(list, t)
	}
	err = rows.Err()
	_ = rows.Close()
	if err != nil {
		return nil, wrapErr("list production tasks", err)
	}
	// Los pallets se cargan con las filas ya cerradas: la conexión es única.
	for _, t := range list {
		if t.PalletIDs, err = r.palletIDs(ctx, t.ID); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Count número total de tareas.
func (r *ProductionTaskRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM production_tasks`).Scan(&n); err != nil {
		return 0, wrapErr("count production tasks", err)
	}
	return n, nil
}

func (r *ProductionTaskRepo) palletIDs(ctx context.Context, taskID string) ([]string, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT pallet_id FROM production_task_pallets WHERE task_id = ? ORDER BY position`, taskID)
	if err != nil {
		return nil, wrapErr("list task pallets", err)
	}
	defer func() { _ = rows.Close() }()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, wrapErr("scan task pallet", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanTask(s scanner) (*entity.ProductionTask, error) {
	var t entity.ProductionTask
	var day, created string
	if err := s.Scan(&t.ID, &day, &t.TaskName, &t.Responsible, &t.Minutes,
		&t.Location, &t.Note, &created); err != nil {
		return nil, err
	}
	var err error
	if t.Day, err = parseDay(day); err != nil {
		return nil, err
	}
	if t.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &t, nil
}

// FeedEventRepo consumos de pienso sobre SQLite.
type FeedEventRepo struct {
	q Querier
}

// NewFeedEventRepository construye el adaptador. Pasar db o tx.
func NewFeedEventRepository(q Querier) *FeedEventRepo {
	return &FeedEventRepo{q: q}
}

// Create inserta un consumo.
func (r *FeedEventRepo) Create(ctx context.Context, ev *entity.FeedEvent) error {
	if _, err := r.q.ExecContext(ctx,
		`INSERT INTO feed_events (id, task_id, pallet_id, item_id, qty_kg) VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.TaskID, ev.PalletID, ev.ItemID, ev.QtyKg.String(),
	); err != nil {
		return wrapErr("insert feed event", err)
	}
	return nil
}

// ListByTask lista los consumos de la tarea en orden de inserción.
func (r *FeedEventRepo) ListByTask(ctx context.Context, taskID string) ([]*entity.FeedEvent, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, task_id, pallet_id, item_id, qty_kg FROM feed_events WHERE task_id = ? ORDER BY rowid`, taskID)
	if err != nil {
		return nil, wrapErr("list feed events", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.FeedEvent
	for rows.Next() {
		var ev entity.FeedEvent
		var qty string
		if err := rows.Scan(&ev.ID, &ev.TaskID, &ev.PalletID, &ev.ItemID, &qty); err != nil {
			return nil, wrapErr("scan feed event", err)
		}
		if ev.QtyKg, err = decimal.NewFromString(qty); err != nil {
			return nil, wrapErr("parse feed event qty", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}

// Count número total de consumos.
func (r *FeedEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM feed_events`).Scan(&n); err != nil {
		return 0, wrapErr("count feed events", err)
	}
	return n, nil
}

// ProductionOutputRepo salidas de frass/larva sobre SQLite.
type ProductionOutputRepo struct {
	q Querier
}

// NewProductionOutputRepository construye el adaptador. Pasar db o tx.
func NewProductionOutputRepository(q Querier) *ProductionOutputRepo {
	return &ProductionOutputRepo{q: q}
}

// Create inserta la salida de una tarea.
func (r *ProductionOutputRepo) Create(ctx context.Context, out *entity.ProductionOutput) error {
	if _, err := r.q.ExecContext(ctx,
		`INSERT INTO production_outputs (id, task_id, frass_kg, larvae_total_kg, created_at) VALUES (?, ?, ?, ?, ?)`,
		out.ID, out.TaskID, nullDecimal(out.FrassKg), nullDecimal(out.LarvaeTotalKg), formatTime(out.CreatedAt),
	); err != nil {
		return wrapErr("insert production output", err)
	}
	return nil
}

// GetByTask devuelve la salida de la tarea o nil, nil.
func (r *ProductionOutputRepo) GetByTask(ctx context.Context, taskID string) (*entity.ProductionOutput, error) {
	var out entity.ProductionOutput
	var frass, larvae sql.NullString
	var created string
	err := r.q.QueryRowContext(ctx,
		`SELECT id, task_id, frass_kg, larvae_total_kg, created_at FROM production_outputs WHERE task_id = ?`, taskID,
	).Scan(&out.ID, &out.TaskID, &frass, &larvae, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get production output", err)
	}
	if out.FrassKg, err = decimalPtr(frass); err != nil {
		return nil, wrapErr("parse frass", err)
	}
	if out.LarvaeTotalKg, err = decimalPtr(larvae); err != nil {
		return nil, wrapErr("parse larvae", err)
	}
	if out.CreatedAt, err = parseTime(created); err != nil {
		return nil, wrapErr("parse output time", err)
	}
	return &out, nil
}
