package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
)

// StockMoveRepository define el puerto del libro de movimientos de stock (solo inserción).
// Usable con pool o dentro de una transacción.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	// SumByItem suma qty_kg de los movimientos del ítem con el tipo indicado; 0 si no hay.
	SumByItem(ctx context.Context, itemID, moveType string) (decimal.Decimal, error)
	List(ctx context.Context, limit, offset int) ([]*entity.StockMove, error)
	ListByRef(ctx context.Context, refType, refID string) ([]*entity.StockMove, error)
	Count(ctx context.Context) (int, error)
}
