package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite/sqlitetest"
)

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_BalanceSinMovimientosEsCero(t *testing.T) {
	l := stock.NewLedger(&memMoves{})
	bal, err := l.Balance(context.Background(), "salvado")
	require.NoError(t, err)
	assert.True(t, bal.IsZero())
}

func TestLedger_BalanceEntradasMenosSalidas(t *testing.T) {
	repo := &memMoves{}
	l := stock.NewLedger(repo)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, move("salvado", entity.MoveTypeIn, "100")))
	require.NoError(t, l.Record(ctx, move("salvado", entity.MoveTypeOut, "17.5")))
	require.NoError(t, l.Record(ctx, move("salvado", entity.MoveTypeIn, "0.25")))
	require.NoError(t, l.Record(ctx, move("zanahoria", entity.MoveTypeIn, "40")))

	bal, err := l.Balance(ctx, "salvado")
	require.NoError(t, err)
	assert.Equal(t, "82.75", bal.String())

	// el saldo es la suma con signo de los movimientos
	signed := decimal.Zero
	for _, m := range repo.moves {
		if m.ItemID == "salvado" {
			signed = signed.Add(m.Signed())
		}
	}
	assert.True(t, signed.Equal(bal))
}

// TestLedger_OrdenDeRegistroNoAfectaSaldo registra el mismo conjunto de entradas y salidas en
// varios órdenes, en memoria y sobre SQLite, y compara el saldo final.
func TestLedger_OrdenDeRegistroNoAfectaSaldo(t *testing.T) {
	type leg struct{ moveType, qty string }
	base := []leg{
		{entity.MoveTypeIn, "100"},
		{entity.MoveTypeOut, "17.5"},
		{entity.MoveTypeIn, "0.25"},
		{entity.MoveTypeOut, "0.1"},
		{entity.MoveTypeOut, "40"},
		{entity.MoveTypeIn, "0.2"},
	}
	reversed := make([]leg, len(base))
	for i, l := range base {
		reversed[len(base)-1-i] = l
	}
	outsFirst := make([]leg, 0, len(base))
	for _, typ := range []string{entity.MoveTypeOut, entity.MoveTypeIn} {
		for _, l := range base {
			if l.moveType == typ {
				outsFirst = append(outsFirst, l)
			}
		}
	}
	orders := map[string][]leg{"original": base, "invertido": reversed, "salidas primero": outsFirst}

	backends := map[string]func(t *testing.T) (repository.StockMoveRepository, string){
		"memoria": func(t *testing.T) (repository.StockMoveRepository, string) {
			return &memMoves{}, "salvado"
		},
		"sqlite": func(t *testing.T) (repository.StockMoveRepository, string) {
			fx := sqlitetest.New(t)
			return fx.Moves, fx.CreateFeedItem(t, "Salvado").ID
		},
	}

	for backend, open := range backends {
		for name, legs := range orders {
			t.Run(backend+"/"+name, func(t *testing.T) {
				repo, itemID := open(t)
				l := stock.NewLedger(repo)
				ctx := context.Background()
				for _, lg := range legs {
					m := move(itemID, lg.moveType, lg.qty)
					m.ID = uuid.New().String()
					require.NoError(t, l.Record(ctx, m))
				}
				bal, err := l.Balance(ctx, itemID)
				require.NoError(t, err)
				assert.Equal(t, "42.85", bal.String())
			})
		}
	}
}

func TestLedger_BalancePuedeSerNegativoSinGuard(t *testing.T) {
	l := stock.NewLedger(&memMoves{})
	ctx := context.Background()
	require.NoError(t, l.Record(ctx, move("salvado", entity.MoveTypeOut, "5")))

	bal, err := l.Balance(ctx, "salvado")
	require.NoError(t, err)
	assert.Equal(t, "-5", bal.String())
}

func TestLedger_RecordNil(t *testing.T) {
	err := stock.NewLedger(&memMoves{}).Record(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_PropagaErrorDePersistencia(t *testing.T) {
	boom := domain.NewPersistenceError("sum stock_moves", errors.New("disk I/O error"))
	_, err := stock.NewLedger(&memMoves{sumErr: boom}).Balance(context.Background(), "x")
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guard
// ──────────────────────────────────────────────────────────────────────────────

func TestGuard_CheckSufficient(t *testing.T) {
	repo := &memMoves{moves: []*entity.StockMove{move("salvado", entity.MoveTypeIn, "10")}}
	g := stock.NewGuard(stock.NewLedger(repo))
	ctx := context.Background()

	assert.NoError(t, g.CheckSufficient(ctx, "salvado", decimal.NewFromInt(10)), "igual al saldo es suficiente")
	assert.NoError(t, g.CheckSufficient(ctx, "salvado", decimal.Zero))

	err := g.CheckSufficient(ctx, "salvado", decimal.RequireFromString("10.001"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ins *domain.InsufficientStockError
	require.True(t, errors.As(err, &ins))
	assert.Equal(t, "10", ins.Current.String())
	assert.Equal(t, "10.001", ins.Requested.String())
	assert.Contains(t, err.Error(), "actual=10 kg")
	assert.Contains(t, err.Error(), "solicitado=10.001 kg")
}

func TestGuard_ItemSinMovimientos(t *testing.T) {
	g := stock.NewGuard(stock.NewLedger(&memMoves{}))
	err := g.CheckSufficient(context.Background(), "nuevo", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestGuard_NoEscribe(t *testing.T) {
	repo := &memMoves{moves: []*entity.StockMove{move("salvado", entity.MoveTypeIn, "1")}}
	g := stock.NewGuard(stock.NewLedger(repo))
	_ = g.CheckSufficient(context.Background(), "salvado", decimal.NewFromInt(5))
	_ = g.CheckSufficient(context.Background(), "salvado", decimal.NewFromInt(1))
	assert.Len(t, repo.moves, 1)
}
