package postgres_test

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/application/production"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/postgres"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/seed"
	"github.com/jhoicas/tenebrio-farm/pkg/config"
)

// ──────────────────────────────────────────────────────────────────────────────
// Integración contra PostgreSQL real. Requiere TEST_DATABASE_URL; cada test
// trabaja en un schema propio que se elimina al terminar.
// ──────────────────────────────────────────────────────────────────────────────

func newPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()

	admin, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	schemaName := "t_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	_, err = admin.Exec(ctx, `CREATE SCHEMA `+schemaName)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = admin.Exec(context.Background(), `DROP SCHEMA `+schemaName+` CASCADE`)
		admin.Close()
	})

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	pool, err := postgres.NewPool(ctx, config.DBConfig{
		DatabaseURL: dsn + sep + "search_path=" + url.QueryEscape(schemaName),
		MaxConns:    4,
	})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func seedPallets(t *testing.T, pool *pgxpool.Pool, csv string) {
	t.Helper()
	ref, err := seed.ReadCSV(strings.NewReader(csv), "")
	require.NoError(t, err)
	for _, stmt := range seed.Statements(ref) {
		_, err := pool.Exec(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
}

func createFeedItem(t *testing.T, pool *pgxpool.Pool, name string) *entity.Item {
	t.Helper()
	item, err := entity.NewItem(entity.ItemCategoryFeed, name, "")
	require.NoError(t, err)
	item.ID = uuid.New().String()
	require.NoError(t, postgres.NewItemRepository(pool).Create(context.Background(), item))
	return item
}

func stockIn(t *testing.T, pool *pgxpool.Pool, itemID, kg string) {
	t.Helper()
	m, err := entity.NewStockMove(itemID, entity.MoveTypeIn, decimal.RequireFromString(kg), entity.MoveRef{Type: entity.RefTypeManual})
	require.NoError(t, err)
	require.NoError(t, postgres.NewStockMoveRepository(pool).Create(context.Background(), m))
}

func TestPostgres_MigrateIdempotente(t *testing.T) {
	pool := newPool(t)
	require.NoError(t, postgres.Migrate(context.Background(), pool))
}

func TestPostgres_SumaNumericExacta(t *testing.T) {
	pool := newPool(t)
	item := createFeedItem(t, pool, "Salvado")
	stockIn(t, pool, item.ID, "0.1")
	stockIn(t, pool, item.ID, "0.2")

	bal, err := stock.NewLedger(postgres.NewStockMoveRepository(pool)).Balance(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.3").Equal(bal), bal.String())
}

func TestPostgres_ItemDuplicado(t *testing.T) {
	pool := newPool(t)
	createFeedItem(t, pool, "Salvado")

	dup, err := entity.NewItem(entity.ItemCategoryFeed, "Salvado", "")
	require.NoError(t, err)
	dup.ID = uuid.New().String()
	err = postgres.NewItemRepository(pool).Create(context.Background(), dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPostgres_PalletsEnOrdenSolicitado(t *testing.T) {
	pool := newPool(t)
	seedPallets(t, pool, "Sala 1;2026-01;P-A;3\nSala 1;2026-01;P-B;5\nSala 1;2026-01;P-C;7\n")

	ids := []string{seed.PalletID("P-C"), "no-existe", seed.PalletID("P-A"), seed.PalletID("P-B")}
	pallets, err := postgres.NewReferenceRepository(pool).GetPalletsByIDs(context.Background(), ids)
	require.NoError(t, err)
	require.Len(t, pallets, 3)
	assert.Equal(t, "P-C", pallets[0].Code)
	assert.Equal(t, "P-A", pallets[1].Code)
	assert.Equal(t, "P-B", pallets[2].Code)
	assert.Equal(t, 7, pallets[0].TrayCount)
}

func TestPostgres_RegistroDeProduccion(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	seedPallets(t, pool, "Sala 1;2026-01;P-10;10\nSala 1;2026-01;P-08;8\n")
	feed := createFeedItem(t, pool, "Salvado")
	stockIn(t, pool, feed.ID, "100")

	tx := postgres.NewTxRunner(pool)
	ref := postgres.NewReferenceRepository(pool)
	uc := production.NewRecordProductionUseCase(tx, postgres.NewItemRepository(pool), ref, nil, zerolog.Nop())

	res, err := uc.RecordProduction(ctx, dto.RecordProductionRequest{
		Day:               "2026-02-10",
		TaskName:          "Alimentación",
		Feed1ItemID:       feed.ID,
		Feed1QtyPerTrayKg: "1",
		FrassKg:           "2.5",
		PalletIDs:         []string{seed.PalletID("P-08"), seed.PalletID("P-10")},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.FeedEvents)

	bal, err := stock.NewLedger(postgres.NewStockMoveRepository(pool)).Balance(ctx, feed.ID)
	require.NoError(t, err)
	assert.Equal(t, "82", bal.String())

	task, err := postgres.NewProductionTaskRepository(pool).GetByID(ctx, res.TaskID)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, []string{seed.PalletID("P-08"), seed.PalletID("P-10")}, task.PalletIDs)

	events, err := postgres.NewFeedEventRepository(pool).ListByTask(ctx, res.TaskID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "8", events[0].QtyKg.String())
	assert.Equal(t, "10", events[1].QtyKg.String())

	out, err := postgres.NewProductionOutputRepository(pool).GetByTask(ctx, res.TaskID)
	require.NoError(t, err)
	require.NotNil(t, out)
	require.NotNil(t, out.FrassKg)
	assert.True(t, decimal.RequireFromString("2.5").Equal(*out.FrassKg))
	assert.Nil(t, out.LarvaeTotalKg)

	moves, err := postgres.NewStockMoveRepository(pool).ListByRef(ctx, entity.RefTypeProduction, res.TaskID)
	require.NoError(t, err)
	assert.Len(t, moves, 2)
}

func TestPostgres_StockInsuficienteRevierteTodo(t *testing.T) {
	pool := newPool(t)
	ctx := context.Background()
	seedPallets(t, pool, "Sala 1;2026-01;P-10;10\nSala 1;2026-01;P-08;8\n")
	feed := createFeedItem(t, pool, "Salvado")
	stockIn(t, pool, feed.ID, "100")

	uc := production.NewRecordProductionUseCase(postgres.NewTxRunner(pool),
		postgres.NewItemRepository(pool), postgres.NewReferenceRepository(pool), nil, zerolog.Nop())
	_, err := uc.RecordProduction(ctx, dto.RecordProductionRequest{
		Day:               "2026-02-10",
		TaskName:          "Alimentación",
		Feed1ItemID:       feed.ID,
		Feed1QtyPerTrayKg: "6",
		PalletIDs:         []string{seed.PalletID("P-10"), seed.PalletID("P-08")},
	})
	var perr *domain.ProductionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domain.FailureInsufficientStock, perr.Kind)

	tasks, err := postgres.NewProductionTaskRepository(pool).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, tasks)
	feeds, err := postgres.NewFeedEventRepository(pool).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, feeds)
	moves, err := postgres.NewStockMoveRepository(pool).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, moves)
}
