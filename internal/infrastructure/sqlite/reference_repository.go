package sqlite

import (
	"context"
	"strings"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo lectura de salas, lotes y pallets sobre SQLite.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar db o tx.
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// ListRooms lista las salas por nombre.
func (r *ReferenceRepo) ListRooms(ctx context.Context) ([]*entity.Room, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, name FROM rooms ORDER BY name`)
	if err != nil {
		return nil, wrapErr("list rooms", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.Room
	for rows.Next() {
		var room entity.Room
		if err := rows.Scan(&room.ID, &room.Name); err != nil {
			return nil, wrapErr("scan room", err)
		}
		list = append(list, &room)
	}
	return list, rows.Err()
}

// ListBatchMonths lista los lotes por código.
func (r *ReferenceRepo) ListBatchMonths(ctx context.Context) ([]*entity.BatchMonth, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT id, code, start_date, end_date FROM batch_months ORDER BY code`)
	if err != nil {
		return nil, wrapErr("list batch months", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.BatchMonth
	for rows.Next() {
		var bm entity.BatchMonth
		var start, end string
		if err := rows.Scan(&bm.ID, &bm.Code, &start, &end); err != nil {
			return nil, wrapErr("scan batch month", err)
		}
		if bm.StartDate, err = parseDay(start); err != nil {
			return nil, wrapErr("parse batch month start", err)
		}
		if bm.EndDate, err = parseDay(end); err != nil {
			return nil, wrapErr("parse batch month end", err)
		}
		list = append(list, &bm)
	}
	return list, rows.Err()
}

// ListPallets lista los pallets por código.
func (r *ReferenceRepo) ListPallets(ctx context.Context) ([]*entity.Pallet, error) {
	return r.queryPallets(ctx, `SELECT id, code, room_id, batch_month_id, tray_count FROM pallets ORDER BY code`)
}

// GetPalletsByIDs devuelve los pallets existentes en el orden de ids.
func (r *ReferenceRepo) GetPalletsByIDs(ctx context.Context, ids []string) ([]*entity.Pallet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	found, err := r.queryPallets(ctx,
		`SELECT id, code, room_id, batch_month_id, tray_count FROM pallets WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Pallet, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	list := make([]*entity.Pallet, 0, len(found))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			list = append(list, p)
		}
	}
	return list, nil
}

func (r *ReferenceRepo) queryPallets(ctx context.Context, query string, args ...any) ([]*entity.Pallet, error) {
	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr("list pallets", err)
	}
	defer func() { _ = rows.Close() }()
	var list []*entity.Pallet
	for rows.Next() {
		var p entity.Pallet
		if err := rows.Scan(&p.ID, &p.Code, &p.RoomID, &p.BatchMonthID, &p.TrayCount); err != nil {
			return nil, wrapErr("scan pallet", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
