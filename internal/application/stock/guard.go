package stock

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
)

// Guard valida una salida contra el saldo derivado antes de persistirla.
type Guard struct {
	ledger *Ledger
}

// NewGuard construye el guard sobre un libro.
func NewGuard(ledger *Ledger) *Guard {
	return &Guard{ledger: ledger}
}

// CheckSufficient devuelve *domain.InsufficientStockError si el saldo actual es menor que requested.
func (g *Guard) CheckSufficient(ctx context.Context, itemID string, requested decimal.Decimal) error {
	current, err := g.ledger.Balance(ctx, itemID)
	if err != nil {
		return err
	}
	if current.LessThan(requested) {
		return &domain.InsufficientStockError{ItemID: itemID, Current: current, Requested: requested}
	}
	return nil
}
