package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
)

// Tipos de movimiento de stock (conjunto cerrado).
const (
	MoveTypeIn  = "in"  // entrada
	MoveTypeOut = "out" // salida
)

// Tipos de referencia (procedencia) usados por la aplicación.
const (
	RefTypeProduction = "production"
	RefTypeManual     = "manual"
)

// StockMove movimiento de stock de un ítem. Solo se inserta, nunca se actualiza.
type StockMove struct {
	ID        string
	ItemID    string
	MoveType  string
	QtyKg     decimal.Decimal // siempre >= 0; el signo lo da MoveType
	RefType   string
	RefID     string
	Note      string
	CreatedAt time.Time
}

// MoveRef etiqueta de procedencia (ref_type, ref_id) de un movimiento.
type MoveRef struct {
	Type string
	ID   string
	Note string
}

// IsValidMoveType indica si t pertenece a {in, out}.
func IsValidMoveType(t string) bool {
	return t == MoveTypeIn || t == MoveTypeOut
}

// NewStockMove construye un movimiento validando tipo y cantidad.
func NewStockMove(itemID, moveType string, qtyKg decimal.Decimal, ref MoveRef) (*StockMove, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, domain.NewValidationError("item_id", "ítem requerido")
	}
	if !IsValidMoveType(moveType) {
		return nil, domain.NewValidationError("move_type", "tipo de movimiento debe ser in u out")
	}
	if qtyKg.IsNegative() {
		return nil, domain.NewValidationError("qty_kg", "la cantidad no puede ser negativa")
	}
	return &StockMove{
		ItemID:    itemID,
		MoveType:  moveType,
		QtyKg:     qtyKg,
		RefType:   ref.Type,
		RefID:     ref.ID,
		Note:      ref.Note,
		CreatedAt: time.Now(),
	}, nil
}

// Signed cantidad con signo: positiva para entradas, negativa para salidas.
func (m *StockMove) Signed() decimal.Decimal {
	if m.MoveType == MoveTypeOut {
		return m.QtyKg.Neg()
	}
	return m.QtyKg
}
