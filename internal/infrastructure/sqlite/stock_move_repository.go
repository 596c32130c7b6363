package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo libro de movimientos sobre SQLite.
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar db o tx.
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const stockMoveColumns = `id, item_id, move_type, qty_kg, ref_type, ref_id, note, created_at`

// Create inserta un movimiento.
func (r *StockMoveRepo) Create(ctx context.Context, move *entity.StockMove) error {
	if move.ID == "" {
		move.ID = uuid.New().String()
	}
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO stock_moves (`+stockMoveColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		move.ID, move.ItemID, move.MoveType, move.QtyKg.String(),
		move.RefType, move.RefID, move.Note, formatTime(move.CreatedAt),
	)
	if err != nil {
		return wrapErr("insert stock move", err)
	}
	return nil
}

// SumByItem suma en decimal exacto las cantidades del ítem con el tipo dado.
func (r *StockMoveRepo) SumByItem(ctx context.Context, itemID, moveType string) (decimal.Decimal, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT qty_kg FROM stock_moves WHERE item_id = ? AND move_type = ?`, itemID, moveType)
	if err != nil {
		return decimal.Zero, wrapErr("sum stock moves", err)
	}
	defer func() { _ = rows.Close() }()
	sum := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, wrapErr("scan stock move qty", err)
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, wrapErr("parse stock move qty", err)
		}
		sum = sum.Add(d)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, wrapErr("sum stock moves", err)
	}
	return sum, nil
}

// List lista movimientos, más recientes primero.
func (r *StockMoveRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockMove, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+stockMoveColumns+` FROM stock_moves ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, wrapErr("list stock moves", err)
	}
	return scanStockMoves(rows)
}

// ListByRef lista los movimientos de una procedencia.
func (r *StockMoveRepo) ListByRef(ctx context.Context, refType, refID string) ([]*entity.StockMove, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+stockMoveColumns+` FROM stock_moves WHERE ref_type = ? AND ref_id = ? ORDER BY rowid`,
		refType, refID)
	if err != nil {
		return nil, wrapErr("list stock moves by ref", err)
	}
	return scanStockMoves(rows)
}

// Count número total de movimientos.
func (r *StockMoveRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock_moves`).Scan(&n); err != nil {
		return 0, wrapErr("count stock moves", err)
	}
	return n, nil
}

func scanStockMoves(rows *sql.Rows) ([]*entity.StockMove, error) {
	defer func() { _ = rows.Close() }()
	var list []*entity.StockMove
	for rows.Next() {
		var m entity.StockMove
		var qty, created string
		if err := rows.Scan(&m.ID, &m.ItemID, &m.MoveType, &qty,
			&m.RefType, &m.RefID, &m.Note, &created); err != nil {
			return nil, wrapErr("scan stock move", err)
		}
		d, err := decimal.NewFromString(qty)
		if err != nil {
			return nil, wrapErr("parse stock move qty", err)
		}
		m.QtyKg = d
		if m.CreatedAt, err = parseTime(created); err != nil {
			return nil, wrapErr("parse stock move time", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
