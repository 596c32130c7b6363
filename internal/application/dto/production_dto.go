package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordProductionRequest entrada cruda del formulario de registro de producción (PRO).
// Todos los campos llegan como texto; el caso de uso los interpreta.
type RecordProductionRequest struct {
	Day               string   `json:"day" form:"day"`
	TaskName          string   `json:"task_name" form:"task_name"`
	Responsible       string   `json:"responsible" form:"responsible"`
	Minutes           string   `json:"minutes" form:"minutes"`
	Location          string   `json:"location" form:"location"`
	Note              string   `json:"note" form:"note"`
	Feed1ItemID       string   `json:"feed1_item_id" form:"feed1_item_id"`
	Feed1QtyPerTrayKg string   `json:"feed1_qty_per_tray_kg" form:"feed1_qty_per_tray_kg"`
	Feed2ItemID       string   `json:"feed2_item_id" form:"feed2_item_id"`
	Feed2QtyPerTrayKg string   `json:"feed2_qty_per_tray_kg" form:"feed2_qty_per_tray_kg"`
	FrassKg           string   `json:"frass_kg" form:"frass_kg"`
	LarvaeTotalKg     string   `json:"larvae_total_kg" form:"larvae_total_kg"`
	PalletIDs         []string `json:"pallet_ids" form:"pallet_ids"`
}

// RecordProductionResponse resultado de un registro de producción confirmado.
type RecordProductionResponse struct {
	TaskID     string `json:"task_id"`
	FeedEvents int    `json:"feed_events"`
	StockMoves int    `json:"stock_moves"`
	HasOutput  bool   `json:"has_output"`
}

// FeedEventResponse consumo de pienso en el detalle de una tarea.
type FeedEventResponse struct {
	ID       string          `json:"id"`
	PalletID string          `json:"pallet_id"`
	ItemID   string          `json:"item_id"`
	QtyKg    decimal.Decimal `json:"qty_kg"`
}

// ProductionOutputResponse salida registrada de una tarea.
type ProductionOutputResponse struct {
	FrassKg       *decimal.Decimal `json:"frass_kg,omitempty"`
	LarvaeTotalKg *decimal.Decimal `json:"larvae_total_kg,omitempty"`
}

// ProductionTaskResponse tarea con su detalle.
type ProductionTaskResponse struct {
	ID          string                    `json:"id"`
	Day         string                    `json:"day"`
	TaskName    string                    `json:"task_name"`
	Responsible string                    `json:"responsible,omitempty"`
	Minutes     int                       `json:"minutes"`
	Location    string                    `json:"location,omitempty"`
	Note        string                    `json:"note,omitempty"`
	PalletIDs   []string                  `json:"pallet_ids"`
	FeedEvents  []FeedEventResponse       `json:"feed_events,omitempty"`
	Output      *ProductionOutputResponse `json:"output,omitempty"`
	StockMoves  []StockMoveResponse       `json:"stock_moves,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
}
