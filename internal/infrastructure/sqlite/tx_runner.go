package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/tenebrio-farm/internal/application/production"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite.
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// Run ejecuta fn con el repo de movimientos atado a la tx.
func (r *TxRunner) Run(ctx context.Context, fn func(moveRepo repository.StockMoveRepository) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(NewStockMoveRepository(tx))
	})
}

// RunProduction ejecuta fn con los repos de un registro de producción atados a la tx.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	moveRepo repository.StockMoveRepository,
	taskRepo repository.ProductionTaskRepository,
	feedRepo repository.FeedEventRepository,
	outputRepo repository.ProductionOutputRepository,
) error) error {
	return r.inTx(ctx, func(tx *sql.Tx) error {
		return fn(
			NewStockMoveRepository(tx),
			NewProductionTaskRepository(tx),
			NewFeedEventRepository(tx),
			NewProductionOutputRepository(tx),
		)
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
