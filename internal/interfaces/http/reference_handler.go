package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenebrio-farm/internal/application/reference"
)

// ReferenceHandler datos de referencia de solo lectura.
type ReferenceHandler struct {
	uc *reference.UseCase
}

func NewReferenceHandler(uc *reference.UseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// Rooms godoc
// @Summary  Listar salas
// @Tags     reference
// @Produce  json
// @Success  200  {array}  dto.RoomResponse
// @Router   /api/rooms [get]
func (h *ReferenceHandler) Rooms(c *fiber.Ctx) error {
	out, err := h.uc.ListRooms(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BatchMonths godoc
// @Summary  Listar lotes mensuales
// @Tags     reference
// @Produce  json
// @Success  200  {array}  dto.BatchMonthResponse
// @Router   /api/batch-months [get]
func (h *ReferenceHandler) BatchMonths(c *fiber.Ctx) error {
	out, err := h.uc.ListBatchMonths(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pallets godoc
// @Summary  Listar pallets
// @Tags     reference
// @Produce  json
// @Success  200  {array}  dto.PalletResponse
// @Router   /api/pallets [get]
func (h *ReferenceHandler) Pallets(c *fiber.Ctx) error {
	out, err := h.uc.ListPallets(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
