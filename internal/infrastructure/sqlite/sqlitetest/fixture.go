// Package sqlitetest base SQLite temporal con esquema y datos de referencia para tests de
// integración de los casos de uso y de la API.
package sqlitetest

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/seed"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite"
)

// Fixture repos atados a la conexión (fuera de tx) más el runner transaccional.
type Fixture struct {
	DB      *sql.DB
	Tx      *sqlite.TxRunner
	Items   *sqlite.ItemRepo
	Moves   *sqlite.StockMoveRepo
	Tasks   *sqlite.ProductionTaskRepo
	Feeds   *sqlite.FeedEventRepo
	Outputs *sqlite.ProductionOutputRepo
	Ref     *sqlite.ReferenceRepo
}

// New crea la base en un directorio temporal del test y aplica el esquema.
func New(t testing.TB) *Fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "farm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	return &Fixture{
		DB:      db,
		Tx:      sqlite.NewTxRunner(db),
		Items:   sqlite.NewItemRepository(db),
		Moves:   sqlite.NewStockMoveRepository(db),
		Tasks:   sqlite.NewProductionTaskRepository(db),
		Feeds:   sqlite.NewFeedEventRepository(db),
		Outputs: sqlite.NewProductionOutputRepository(db),
		Ref:     sqlite.NewReferenceRepository(db),
	}
}

// SeedPallets carga salas, lotes y pallets desde un CSV "sala;lote;pallet;bandejas".
func (f *Fixture) SeedPallets(t testing.TB, csv string) *seed.Reference {
	t.Helper()
	ref, err := seed.ReadCSV(strings.NewReader(csv), "")
	require.NoError(t, err)
	for _, stmt := range seed.Statements(ref) {
		_, err := f.DB.ExecContext(context.Background(), stmt)
		require.NoError(t, err, stmt)
	}
	return ref
}

// CreateFeedItem da de alta un ítem de pienso.
func (f *Fixture) CreateFeedItem(t testing.TB, name string) *entity.Item {
	t.Helper()
	item, err := entity.NewItem(entity.ItemCategoryFeed, name, "")
	require.NoError(t, err)
	item.ID = uuid.New().String()
	require.NoError(t, f.Items.Create(context.Background(), item))
	return item
}

// StockIn registra una entrada manual de kg.
func (f *Fixture) StockIn(t testing.TB, itemID string, kg string) {
	t.Helper()
	move, err := entity.NewStockMove(itemID, entity.MoveTypeIn, decimal.RequireFromString(kg), entity.MoveRef{Type: entity.RefTypeManual})
	require.NoError(t, err)
	move.ID = uuid.New().String()
	require.NoError(t, f.Moves.Create(context.Background(), move))
}

// Counts número de filas de cada tabla que escribe un registro de producción.
type Counts struct {
	Tasks, FeedEvents, StockMoves int
}

func (f *Fixture) Counts(t testing.TB) Counts {
	t.Helper()
	ctx := context.Background()
	var c Counts
	var err error
	c.Tasks, err = f.Tasks.Count(ctx)
	require.NoError(t, err)
	c.FeedEvents, err = f.Feeds.Count(ctx)
	require.NoError(t, err)
	c.StockMoves, err = f.Moves.Count(ctx)
	require.NoError(t, err)
	return c
}
