package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var (
	_ repository.ProductionTaskRepository   = (*ProductionTaskRepo)(nil)
	_ repository.FeedEventRepository        = (*FeedEventRepo)(nil)
	_ repository.ProductionOutputRepository = (*ProductionOutputRepo)(nil)
)

// ProductionTaskRepo tareas de producción sobre PostgreSQL (usable con pool o tx).
type ProductionTaskRepo struct {
	q Querier
}

// NewProductionTaskRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionTaskRepository(q Querier) *ProductionTaskRepo {
	return &ProductionTaskRepo{q: q}
}

// taskSelect devuelve cada tarea con sus pallets agregados en orden de registro.
const taskSelect = `
	SELECT t.id, t.day, t.task_name, t.responsible, t.minutes, t.location, t.note, t.created_at,
	       COALESCE(array_agg(tp.pallet_id ORDER BY tp.position) FILTER (WHERE tp.pallet_id IS NOT NULL), '{}')
	FROM production_tasks t
	LEFT JOIN production_task_pallets tp ON tp.task_id = t.id`

// Create inserta la tarea y sus filas en production_task_pallets.
func (r *ProductionTaskRepo) Create(ctx context.Context, task *entity.ProductionTask) error {
	query := `
		INSERT INTO production_tasks (id, day, task_name, responsible, minutes, location, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	if _, err := r.q.Exec(ctx, query,
		task.ID, task.Day, task.TaskName, task.Responsible, task.Minutes,
		task.Location, task.Note, task.CreatedAt,
	); err != nil {
		return wrapErr("insert production task", err)
	}
	for i, palletID := range task.PalletIDs {
		if _, err := r.q.Exec(ctx,
			`INSERT INTO production_task_pallets (task_id, pallet_id, position) VALUES ($1, $2, $3)`,
			task.ID, palletID, i,
		); err != nil {
			return wrapErr("insert production task pallet", err)
		}
	}
	return nil
}

// GetByID obtiene una tarea por ID; nil, nil si no existe.
func (r *ProductionTaskRepo) GetByID(ctx context.Context, id string) (*entity.ProductionTask, error) {
	query := taskSelect + ` WHERE t.id = $1 GROUP BY t.id`
	t, err := scanTask(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get production task", err)
	}
	return t, nil
}

// ListByDay lista tareas por día (rango inclusivo, extremos opcionales).
func (r *ProductionTaskRepo) ListByDay(ctx context.Context, from, to *time.Time) ([]*entity.ProductionTask, error) {
	query := taskSelect + ` WHERE 1 = 1`
	var args []any
	pos := 1
	if from != nil {
		query += fmt.Sprintf(" AND t.day >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND t.day <= $%d", pos)
		args = append(args, *to)
	}
	query += ` GROUP BY t.id ORDER BY t.day DESC, t.created_at DESC`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list production tasks", err)
	}
	defer rows.Close()
	var list []*entity.ProductionTask
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, wrapErr("scan production task", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Count número total de tareas.
func (r *ProductionTaskRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM production_tasks`).Scan(&n); err != nil {
		return 0, wrapErr("count production tasks", err)
	}
	return n, nil
}

func scanTask(row pgx.Row) (*entity.ProductionTask, error) {
	var t entity.ProductionTask
	if err := row.Scan(&t.ID, &t.Day, &t.TaskName, &t.Responsible, &t.Minutes,
		&t.Location, &t.Note, &t.CreatedAt, &t.PalletIDs); err != nil {
		return nil, err
	}
	return &t, nil
}

// FeedEventRepo consumos de pienso sobre PostgreSQL.
type FeedEventRepo struct {
	q Querier
}

// NewFeedEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFeedEventRepository(q Querier) *FeedEventRepo {
	return &FeedEventRepo{q: q}
}

// Create inserta un consumo.
func (r *FeedEventRepo) Create(ctx context.Context, ev *entity.FeedEvent) error {
	query := `
		INSERT INTO feed_events (id, task_id, pallet_id, item_id, qty_kg)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, ev.ID, ev.TaskID, ev.PalletID, ev.ItemID, ev.QtyKg); err != nil {
		return wrapErr("insert feed event", err)
	}
	return nil
}

// ListByTask lista los consumos de una tarea en orden de inserción.
func (r *FeedEventRepo) ListByTask(ctx context.Context, taskID string) ([]*entity.FeedEvent, error) {
	query := `SELECT id, task_id, pallet_id, item_id, qty_kg FROM feed_events WHERE task_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, taskID)
	if err != nil {
		return nil, wrapErr("list feed events", err)
	}
	defer rows.Close()
	var list []*entity.FeedEvent
	for rows.Next() {
		var ev entity.FeedEvent
		if err := rows.Scan(&ev.ID, &ev.TaskID, &ev.PalletID, &ev.ItemID, &ev.QtyKg); err != nil {
			return nil, wrapErr("scan feed event", err)
		}
		list = append(list, &ev)
	}
	return list, rows.Err()
}

// Count número total de consumos.
func (r *FeedEventRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM feed_events`).Scan(&n); err != nil {
		return 0, wrapErr("count feed events", err)
	}
	return n, nil
}

// ProductionOutputRepo salidas de frass/larva sobre PostgreSQL.
type ProductionOutputRepo struct {
	q Querier
}

// NewProductionOutputRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOutputRepository(q Querier) *ProductionOutputRepo {
	return &ProductionOutputRepo{q: q}
}

// Create inserta la salida de una tarea.
func (r *ProductionOutputRepo) Create(ctx context.Context, out *entity.ProductionOutput) error {
	query := `
		INSERT INTO production_outputs (id, task_id, frass_kg, larvae_total_kg, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, out.ID, out.TaskID, out.FrassKg, out.LarvaeTotalKg, out.CreatedAt); err != nil {
		return wrapErr("insert production output", err)
	}
	return nil
}

// GetByTask devuelve la salida de la tarea o nil, nil si no tiene.
func (r *ProductionOutputRepo) GetByTask(ctx context.Context, taskID string) (*entity.ProductionOutput, error) {
	query := `SELECT id, task_id, frass_kg, larvae_total_kg, created_at FROM production_outputs WHERE task_id = $1`
	var out entity.ProductionOutput
	var frass, larvae decimal.NullDecimal
	err := r.q.QueryRow(ctx, query, taskID).Scan(&out.ID, &out.TaskID, &frass, &larvae, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrapErr("get production output", err)
	}
	if frass.Valid {
		out.FrassKg = &frass.Decimal
	}
	if larvae.Valid {
		out.LarvaeTotalKg = &larvae.Decimal
	}
	return &out, nil
}
