package dto

// RoomResponse sala.
type RoomResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BatchMonthResponse lote mensual.
type BatchMonthResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// PalletResponse pallet con su número de bandejas.
type PalletResponse struct {
	ID           string `json:"id"`
	Code         string `json:"code"`
	RoomID       string `json:"room_id"`
	BatchMonthID string `json:"batch_month_id"`
	TrayCount    int    `json:"tray_count"`
}
