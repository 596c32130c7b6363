package reference_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/application/reference"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/seed"
	"github.com/jhoicas/tenebrio-farm/internal/infrastructure/sqlite/sqlitetest"
)

func TestUseCase_ListsSeededReference(t *testing.T) {
	fx := sqlitetest.New(t)
	fx.SeedPallets(t, "sala;lote;pallet;bandejas\nSala 2;2026-02;P-20;12\nSala 1;2026-01;P-10;10\n")
	uc := reference.NewUseCase(fx.Ref)
	ctx := context.Background()

	rooms, err := uc.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "Sala 1", rooms[0].Name)

	bms, err := uc.ListBatchMonths(ctx)
	require.NoError(t, err)
	require.Len(t, bms, 2)
	assert.Equal(t, "2026-02", bms[1].Code)
	assert.Equal(t, "2026-02-01", bms[1].StartDate)
	assert.Equal(t, "2026-02-28", bms[1].EndDate)

	pallets, err := uc.ListPallets(ctx)
	require.NoError(t, err)
	require.Len(t, pallets, 2)
	assert.Equal(t, "P-10", pallets[0].Code)
	assert.Equal(t, 10, pallets[0].TrayCount)
	assert.Equal(t, seed.RoomID("Sala 1"), pallets[0].RoomID)
	assert.Equal(t, seed.BatchMonthID("2026-01"), pallets[0].BatchMonthID)
}

func TestUseCase_EmptyStore(t *testing.T) {
	fx := sqlitetest.New(t)
	uc := reference.NewUseCase(fx.Ref)

	pallets, err := uc.ListPallets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pallets)
}
