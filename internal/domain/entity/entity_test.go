package entity_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
)

func TestNewItem(t *testing.T) {
	it, err := entity.NewItem(" feed ", " Salvado ", "")
	require.NoError(t, err)
	assert.Equal(t, "feed", it.Category)
	assert.Equal(t, "Salvado", it.Name)
	assert.Equal(t, entity.DefaultItemUnit, it.Unit)
	assert.False(t, it.CreatedAt.IsZero())

	_, err = entity.NewItem("", "Salvado", "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.NewItem("feed", " ", "kg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNewStockMove(t *testing.T) {
	m, err := entity.NewStockMove("salvado", entity.MoveTypeOut, decimal.NewFromInt(5), entity.MoveRef{
		Type: entity.RefTypeProduction, ID: "task-1", Note: "PRO P-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-1", m.RefID)
	assert.Equal(t, "-5", m.Signed().String())

	in, err := entity.NewStockMove("salvado", entity.MoveTypeIn, decimal.Zero, entity.MoveRef{})
	require.NoError(t, err, "cantidad cero es válida a nivel de entidad")
	assert.True(t, in.Signed().IsZero())

	_, err = entity.NewStockMove("salvado", "adjust", decimal.NewFromInt(1), entity.MoveRef{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.NewStockMove("salvado", entity.MoveTypeIn, decimal.NewFromInt(-1), entity.MoveRef{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = entity.NewStockMove("", entity.MoveTypeIn, decimal.NewFromInt(1), entity.MoveRef{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPallet_FeedFor(t *testing.T) {
	p := &entity.Pallet{TrayCount: 8}
	assert.Equal(t, "2", p.FeedFor(decimal.RequireFromString("0.25")).String())
	assert.True(t, (&entity.Pallet{}).FeedFor(decimal.NewFromInt(3)).IsZero())
}

func TestProductionOutput_HasValues(t *testing.T) {
	var nilOut *entity.ProductionOutput
	assert.False(t, nilOut.HasValues())
	assert.False(t, (&entity.ProductionOutput{}).HasValues())

	zero := decimal.Zero
	assert.True(t, (&entity.ProductionOutput{LarvaeTotalKg: &zero}).HasValues(), "cero explícito cuenta como valor")
}
