package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductionTask tarea diaria de producción (alimentación, cribado, cosecha...).
type ProductionTask struct {
	ID          string
	Day         time.Time
	TaskName    string
	Responsible string
	Minutes     int
	Location    string
	Note        string
	PalletIDs   []string // relación muchos-a-muchos con pallets
	CreatedAt   time.Time
}

// FeedEvent consumo de pienso de un pallet dentro de una tarea. Solo lo crea el registro de producción.
type FeedEvent struct {
	ID       string
	TaskID   string
	PalletID string
	ItemID   string
	QtyKg    decimal.Decimal
}

// ProductionOutput salida registrada de una tarea: frass y/o larva.
type ProductionOutput struct {
	ID            string
	TaskID        string
	FrassKg       *decimal.Decimal
	LarvaeTotalKg *decimal.Decimal
	CreatedAt     time.Time
}

// HasValues indica si hay al menos un total que registrar.
func (o *ProductionOutput) HasValues() bool {
	return o != nil && (o.FrassKg != nil || o.LarvaeTotalKg != nil)
}
