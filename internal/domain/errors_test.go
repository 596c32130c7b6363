package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
)

func TestValidationError(t *testing.T) {
	err := domain.NewValidationError("day", "Fecha inválida")
	assert.Equal(t, "day: Fecha inválida", err.Error())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, "sin campo", domain.NewValidationError("", "sin campo").Error())
}

func TestPersistenceError_IsYUnwrap(t *testing.T) {
	cause := errors.New("database is locked")
	err := fmt.Errorf("registrar: %w", domain.NewPersistenceError("insert stock_move", cause))

	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insert stock_move: database is locked")
}

func TestNewProductionError_Clasifica(t *testing.T) {
	cases := []struct {
		name  string
		cause error
		kind  domain.FailureKind
		msg   string
	}{
		{
			"stock insuficiente",
			&domain.InsufficientStockError{ItemID: "x", Current: decimal.NewFromInt(40), Requested: decimal.NewFromInt(48)},
			domain.FailureInsufficientStock,
			"PRO falló: stock insuficiente: actual=40 kg, solicitado=48 kg",
		},
		{
			"persistencia",
			domain.NewPersistenceError("insert feed_event", errors.New("FOREIGN KEY constraint failed")),
			domain.FailurePersistence,
			"PRO falló: error al guardar en la base de datos",
		},
		{
			"inesperado",
			fmt.Errorf("%w: nil map", domain.ErrUnexpected),
			domain.FailureUnexpected,
			"PRO falló: error inesperado",
		},
		{
			"desconocido",
			errors.New("algo raro"),
			domain.FailureUnexpected,
			"PRO falló: error inesperado",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			perr := domain.NewProductionError(tc.cause)
			assert.Equal(t, tc.kind, perr.Kind)
			assert.Equal(t, tc.msg, perr.UserMessage())
			assert.Equal(t, "PRO falló: "+tc.cause.Error(), perr.Error())
			assert.ErrorIs(t, perr, tc.cause)
		})
	}
}

func TestProductionError_ConservaCadena(t *testing.T) {
	ins := &domain.InsufficientStockError{ItemID: "salvado", Current: decimal.Zero, Requested: decimal.NewFromInt(1)}
	var err error = domain.NewProductionError(ins)

	var got *domain.InsufficientStockError
	require.True(t, errors.As(err, &got))
	assert.Equal(t, "salvado", got.ItemID)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}
