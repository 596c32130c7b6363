package postgres

import (
	"context"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ repository.ReferenceRepository = (*ReferenceRepo)(nil)

// ReferenceRepo lectura de salas, lotes y pallets sobre PostgreSQL.
type ReferenceRepo struct {
	q Querier
}

// NewReferenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReferenceRepository(q Querier) *ReferenceRepo {
	return &ReferenceRepo{q: q}
}

// ListRooms lista las salas por nombre.
func (r *ReferenceRepo) ListRooms(ctx context.Context) ([]*entity.Room, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM rooms ORDER BY name`)
	if err != nil {
		return nil, wrapErr("list rooms", err)
	}
	defer rows.Close()
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

// ListBatchMonths lista los lotes mensuales por código.
func (r *ReferenceRepo) ListBatchMonths(ctx context.Context) ([]*entity.BatchMonth, error) {
	rows, err := r.q.Query(ctx, `SELECT id, code, start_date, end_date FROM batch_months ORDER BY code`)
	if err != nil {
		return nil, wrapErr("list batch months", err)
	}
	defer rows.Close()
	var list []*entity.BatchMonth
	for rows.Next() {
		var bm entity.BatchMonth
		if err := rows.Scan(&bm.ID, &bm.Code, &bm.StartDate, &bm.EndDate); err != nil {
			return nil, wrapErr("scan batch month", err)
		}
		list = append(list, &bm)
	}
	return list, rows.Err()
}

// ListPallets lista los pallets por código.
func (r *ReferenceRepo) ListPallets(ctx context.Context) ([]*entity.Pallet, error) {
	rows, err := r.q.Query(ctx, `SELECT id, code, room_id, batch_month_id, tray_count FROM pallets ORDER BY code`)
	if err != nil {
		return nil, wrapErr("list pallets", err)
	}
	defer rows.Close()
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

// GetPalletsByIDs devuelve los pallets existentes en el orden de ids.
func (r *ReferenceRepo) GetPalletsByIDs(ctx context.Context, ids []string) ([]*entity.Pallet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `
		SELECT p.id, p.code, p.room_id, p.batch_month_id, p.tray_count
		FROM unnest($1::text[]) WITH ORDINALITY AS wanted(id, ord)
		JOIN pallets p ON p.id = wanted.id
		ORDER BY wanted.ord`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapErr("get pallets", err)
	}
	defer rows.Close()
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
