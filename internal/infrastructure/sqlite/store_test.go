package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/seed"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite/sqlitetest"
)

func outMove(itemID, qty string) *entity.StockMove {
	return &entity.StockMove{
		ID:        uuid.New().String(),
		ItemID:    itemID,
		MoveType:  entity.MoveTypeOut,
		QtyKg:     decimal.RequireFromString(qty),
		CreatedAt: time.Now(),
	}
}

func TestMigrate_Idempotente(t *testing.T) {
	fx := sqlitetest.New(t)
	require.NoError(t, sqlite.Migrate(context.Background(), fx.DB))
}

func TestSumByItem_DecimalExacto(t *testing.T) {
	fx := sqlitetest.New(t)
	item := fx.CreateFeedItem(t, "Salvado")
	fx.StockIn(t, item.ID, "0.1")
	fx.StockIn(t, item.ID, "0.2")

	sum, err := fx.Moves.SumByItem(context.Background(), item.ID, entity.MoveTypeIn)
	require.NoError(t, err)
	assert.Equal(t, "0.3", sum.String())

	none, err := fx.Moves.SumByItem(context.Background(), item.ID, entity.MoveTypeOut)
	require.NoError(t, err)
	assert.True(t, none.IsZero())
}

func TestTxRunner_RollbackYCommit(t *testing.T) {
	fx := sqlitetest.New(t)
	item := fx.CreateFeedItem(t, "Salvado")
	fx.StockIn(t, item.ID, "10")
	ctx := context.Background()
	boom := errors.New("abortar")

	err := fx.Tx.Run(ctx, func(moves repository.StockMoveRepository) error {
		require.NoError(t, moves.Create(ctx, outMove(item.ID, "4")))
		staged, err := moves.SumByItem(ctx, item.ID, entity.MoveTypeOut)
		require.NoError(t, err)
		assert.Equal(t, "4", staged.String(), "la tx ve sus propias escrituras")
		return boom
	})
	assert.ErrorIs(t, err, boom)
	n, err := fx.Moves.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "rollback descarta la salida")

	require.NoError(t, fx.Tx.Run(ctx, func(moves repository.StockMoveRepository) error {
		return moves.Create(ctx, outMove(item.ID, "4"))
	}))
	n, err = fx.Moves.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListMoves_MasRecientesPrimero(t *testing.T) {
	fx := sqlitetest.New(t)
	item := fx.CreateFeedItem(t, "Salvado")
	for _, q := range []string{"1", "2", "3"} {
		fx.StockIn(t, item.ID, q)
	}
	list, err := fx.Moves.List(context.Background(), 2, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "3", list[0].QtyKg.String())

	rest, err := fx.Moves.List(context.Background(), 10, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
	assert.Equal(t, "1", rest[0].QtyKg.String())
}

func TestRestricciones(t *testing.T) {
	fx := sqlitetest.New(t)
	ctx := context.Background()
	item := fx.CreateFeedItem(t, "Salvado")

	dup, err := entity.NewItem(entity.ItemCategoryFeed, "Salvado", "kg")
	require.NoError(t, err)
	dup.ID = uuid.New().String()
	assert.ErrorIs(t, fx.Items.Create(ctx, dup), domain.ErrDuplicate)

	err = fx.Moves.Create(ctx, outMove(item.ID, "-1"))
	assert.ErrorIs(t, err, domain.ErrPersistence, "CHECK qty_kg >= 0")

	err = fx.Moves.Create(ctx, outMove("fantasma", "1"))
	assert.ErrorIs(t, err, domain.ErrPersistence, "FOREIGN KEY item_id")
}

func TestProductionTask_PalletsEnOrden(t *testing.T) {
	fx := sqlitetest.New(t)
	fx.SeedPallets(t, "Sala 1;2026-01;A;3\nSala 1;2026-01;B;4\nSala 2;2026-02;C;5\n")
	ctx := context.Background()

	order := []string{seed.PalletID("C"), seed.PalletID("A")}
	task := &entity.ProductionTask{
		ID:        uuid.New().String(),
		Day:       time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		TaskName:  "Cribado",
		PalletIDs: order,
		CreatedAt: time.Now(),
	}
	require.NoError(t, fx.Tasks.Create(ctx, task))

	got, err := fx.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order, got.PalletIDs)
	assert.Equal(t, "2026-02-10", got.Day.Format("2006-01-02"))

	missing, err := fx.Tasks.GetByID(ctx, "no-existe")
	require.NoError(t, err)
	assert.Nil(t, missing)

	pallets, err := fx.Ref.GetPalletsByIDs(ctx, []string{seed.PalletID("B"), "no-existe", seed.PalletID("A")})
	require.NoError(t, err)
	require.Len(t, pallets, 2)
	assert.Equal(t, "B", pallets[0].Code)
	assert.Equal(t, 3, pallets[1].TrayCount)
}
