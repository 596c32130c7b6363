package stock

import (
	"context"

	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando el repositorio
// de movimientos atado a esa tx. Commit si fn devuelve nil, Rollback en cualquier otro caso.
type TxRunner interface {
	Run(ctx context.Context, fn func(moveRepo repository.StockMoveRepository) error) error
}
