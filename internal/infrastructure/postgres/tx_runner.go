package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/tenebrio-farm/internal/application/production"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and production.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo de movimientos atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(moveRepo repository.StockMoveRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewStockMoveRepository(tx))
	})
}

// RunProduction inicia una transacción con todos los repos de un registro de producción.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	moveRepo repository.StockMoveRepository,
	taskRepo repository.ProductionTaskRepository,
	feedRepo repository.FeedEventRepository,
	outputRepo repository.ProductionOutputRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewStockMoveRepository(tx),
			NewProductionTaskRepository(tx),
			NewFeedEventRepository(tx),
			NewProductionOutputRepository(tx),
		)
	})
}

// inTx el Rollback diferido cubre errores y panics; tras un Commit correcto es un no-op.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return wrapErr("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrapErr("commit transaction", err)
	}
	return nil
}
