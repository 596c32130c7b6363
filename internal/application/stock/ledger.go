package stock

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

// Ledger libro de movimientos de un almacén. El saldo no se guarda: se deriva sumando
// entradas menos salidas en cada consulta.
//
// Construido sobre un repositorio atado a una transacción, Record escribe en esa tx y
// Balance ve las escrituras aún no confirmadas de la misma tx.
type Ledger struct {
	moves repository.StockMoveRepository
}

// NewLedger construye el libro sobre el repositorio indicado (pool o tx).
func NewLedger(moves repository.StockMoveRepository) *Ledger {
	return &Ledger{moves: moves}
}

// Balance devuelve Σ(in) − Σ(out) del ítem; 0 si no tiene movimientos.
func (l *Ledger) Balance(ctx context.Context, itemID string) (decimal.Decimal, error) {
	in, err := l.moves.SumByItem(ctx, itemID, entity.MoveTypeIn)
	if err != nil {
		return decimal.Zero, err
	}
	out, err := l.moves.SumByItem(ctx, itemID, entity.MoveTypeOut)
	if err != nil {
		return decimal.Zero, err
	}
	return in.Sub(out), nil
}

// Record agrega el movimiento al libro. No hace commit: eso corresponde a quien abrió la tx.
func (l *Ledger) Record(ctx context.Context, move *entity.StockMove) error {
	if move == nil {
		return fmt.Errorf("ledger: movimiento nil: %w", domain.ErrInvalidInput)
	}
	return l.moves.Create(ctx, move)
}
