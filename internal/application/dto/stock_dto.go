package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest body para POST /api/stock/items.
type CreateItemRequest struct {
	Category string `json:"category" form:"category"`
	Name     string `json:"name" form:"name"`
	Unit     string `json:"unit" form:"unit"`
}

// ItemResponse ítem en respuestas.
type ItemResponse struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterStockMoveRequest body para POST /api/stock/moves.
type RegisterStockMoveRequest struct {
	ItemID   string          `json:"item_id" form:"item_id"`
	MoveType string          `json:"move_type" form:"move_type"`
	QtyKg    decimal.Decimal `json:"qty_kg" form:"qty_kg"`
	RefType  string          `json:"ref_type,omitempty" form:"ref_type"`
	RefID    string          `json:"ref_id,omitempty" form:"ref_id"`
	Note     string          `json:"note,omitempty" form:"note"`
}

// StockMoveResponse movimiento en respuestas.
type StockMoveResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	MoveType  string          `json:"move_type"`
	QtyKg     decimal.Decimal `json:"qty_kg"`
	RefType   string          `json:"ref_type,omitempty"`
	RefID     string          `json:"ref_id,omitempty"`
	Note      string          `json:"note,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// StockQtyResponse saldo derivado de un ítem.
type StockQtyResponse struct {
	ItemID string          `json:"item_id"`
	QtyKg  decimal.Decimal `json:"qty_kg"`
}
