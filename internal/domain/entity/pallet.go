package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Room sala de cría.
type Room struct {
	ID   string
	Name string
}

// BatchMonth ciclo mensual de lote (ej. "2026-01").
type BatchMonth struct {
	ID        string
	Code      string
	StartDate time.Time
	EndDate   time.Time
}

// Pallet pallet de bandejas ubicado en una sala y asignado a un lote mensual.
type Pallet struct {
	ID           string
	Code         string
	RoomID       string
	BatchMonthID string
	TrayCount    int
}

// FeedFor convierte una dosis por bandeja en consumo absoluto del pallet.
func (p *Pallet) FeedFor(qtyPerTray decimal.Decimal) decimal.Decimal {
	return qtyPerTray.Mul(decimal.NewFromInt(int64(p.TrayCount)))
}
