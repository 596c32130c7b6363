package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/tenebrio-farm/internal/application/production"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/postgres"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite"
	"github.com/jhoicas/tenebrio-farm/pkg/config"
)

// txRunner lo cumplen los runners de ambos adaptadores.
type txRunner interface {
	stock.TxRunner
	production.TxRunner
}

// store repositorios del backend elegido con DB_DRIVER.
type store struct {
	tx      txRunner
	items   repository.ItemRepository
	moves   repository.StockMoveRepository
	tasks   repository.ProductionTaskRepository
	feeds   repository.FeedEventRepository
	outputs repository.ProductionOutputRepository
	ref     repository.ReferenceRepository
	migrate func(ctx context.Context) error
	close   func()
}

func openStore(ctx context.Context, cfg config.DBConfig) (*store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &store{
			tx:      sqlite.NewTxRunner(db),
			items:   sqlite.NewItemRepository(db),
			moves:   sqlite.NewStockMoveRepository(db),
			tasks:   sqlite.NewProductionTaskRepository(db),
			feeds:   sqlite.NewFeedEventRepository(db),
			outputs: sqlite.NewProductionOutputRepository(db),
			ref:     sqlite.NewReferenceRepository(db),
			migrate: func(ctx context.Context) error { return sqlite.Migrate(ctx, db) },
			close:   func() { _ = db.Close() },
		}, nil
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &store{
			tx:      postgres.NewTxRunner(pool),
			items:   postgres.NewItemRepository(pool),
			moves:   postgres.NewStockMoveRepository(pool),
			tasks:   postgres.NewProductionTaskRepository(pool),
			feeds:   postgres.NewFeedEventRepository(pool),
			outputs: postgres.NewProductionOutputRepository(pool),
			ref:     postgres.NewReferenceRepository(pool),
			migrate: func(ctx context.Context) error { return postgres.Migrate(ctx, pool) },
			close:   pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver no soportado: %s", cfg.Driver)
	}
}
