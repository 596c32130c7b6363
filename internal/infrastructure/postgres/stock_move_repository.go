package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

// StockMoveRepo libro de movimientos sobre PostgreSQL (usable con pool o tx).
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

const stockMoveColumns = `id, item_id, move_type, qty_kg, ref_type, ref_id, note, created_at`

// Create inserta un movimiento. Los CHECK de la tabla rechazan tipos fuera de {in,out} y cantidades negativas.
func (r *StockMoveRepo) Create(ctx context.Context, move *entity.StockMove) error {
	if move.ID == "" {
		move.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_moves (` + stockMoveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		move.ID, move.ItemID, move.MoveType, move.QtyKg,
		move.RefType, move.RefID, move.Note, move.CreatedAt,
	)
	if err != nil {
		return wrapErr("insert stock move", err)
	}
	return nil
}

// SumByItem suma qty_kg de los movimientos del ítem con el tipo dado.
func (r *StockMoveRepo) SumByItem(ctx context.Context, itemID, moveType string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(qty_kg), 0)
		FROM stock_moves WHERE item_id = $1 AND move_type = $2`
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, query, itemID, moveType).Scan(&sum); err != nil {
		return decimal.Zero, wrapErr("sum stock moves", err)
	}
	return sum, nil
}

// List lista movimientos, más recientes primero.
func (r *StockMoveRepo) List(ctx context.Context, limit, offset int) ([]*entity.StockMove, error) {
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapErr("list stock moves", err)
	}
	return scanStockMoves(rows)
}

// ListByRef lista los movimientos con la etiqueta de procedencia indicada.
func (r *StockMoveRepo) ListByRef(ctx context.Context, refType, refID string) ([]*entity.StockMove, error) {
	query := `SELECT ` + stockMoveColumns + ` FROM stock_moves WHERE ref_type = $1 AND ref_id = $2 ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, refType, refID)
	if err != nil {
		return nil, wrapErr("list stock moves by ref", err)
	}
	return scanStockMoves(rows)
}

// Count número total de movimientos.
func (r *StockMoveRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_moves`).Scan(&n); err != nil {
		return 0, wrapErr("count stock moves", err)
	}
	return n, nil
}

func scanStockMoves(rows pgx.Rows) ([]*entity.StockMove, error) {
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		var m entity.StockMove
		if err := rows.Scan(&m.ID, &m.ItemID, &m.MoveType, &m.QtyKg,
			&m.RefType, &m.RefID, &m.Note, &m.CreatedAt); err != nil {
			return nil, wrapErr("scan stock move", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
