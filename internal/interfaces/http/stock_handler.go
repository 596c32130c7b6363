package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/pkg/parse"
)

// StockHandler ítems, movimientos directos y saldos.
type StockHandler struct {
	uc *stock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// CreateItem godoc
// @Summary      Crear ítem de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "category, name, unit (kg por defecto)"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/items [post]
func (h *StockHandler) CreateItem(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateItem(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListItems godoc
// @Summary      Listar ítems
// @Tags         stock
// @Produce      json
// @Success      200  {array}  dto.ItemResponse
// @Router       /api/stock/items [get]
func (h *StockHandler) ListItems(c *fiber.Ctx) error {
	out, err := h.uc.ListItems(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RegisterMove godoc
// @Summary      Registrar movimiento de stock
// @Description  Las salidas se rechazan con 409 si dejarían el saldo en negativo.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterStockMoveRequest  true  "item_id, move_type (in|out), qty_kg"
// @Success      201   {object}  dto.StockMoveResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Router       /api/stock/moves [post]
func (h *StockHandler) RegisterMove(c *fiber.Ctx) error {
	var in dto.RegisterStockMoveRequest
	if c.Is("json") {
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
	} else {
		// formulario: qty_kg llega como texto y admite coma decimal
		in = dto.RegisterStockMoveRequest{
			ItemID:   c.FormValue("item_id"),
			MoveType: c.FormValue("move_type"),
			QtyKg:    parse.DecimalOrZero(c.FormValue("qty_kg")),
			RefType:  c.FormValue("ref_type"),
			RefID:    c.FormValue("ref_id"),
			Note:     c.FormValue("note"),
		}
	}
	out, err := h.uc.RegisterMove(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMoves godoc
// @Summary      Listar movimientos (más recientes primero)
// @Tags         stock
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(50)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/stock/moves [get]
func (h *StockHandler) ListMoves(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 50), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	out, err := h.uc.ListMoves(c.UserContext(), page)
	if err != nil {
		return respondError(c, err)
	}
	total, err := h.uc.CountMoves(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"page":  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
		"moves": out,
	})
}

// GetQty godoc
// @Summary      Saldo de un ítem (entradas - salidas)
// @Tags         stock
// @Produce      json
// @Param        item_id  path  string  true  "ID del ítem"
// @Success      200  {object}  dto.StockQtyResponse
// @Router       /api/stock/qty/{item_id} [get]
func (h *StockHandler) GetQty(c *fiber.Ctx) error {
	out, err := h.uc.GetQty(c.UserContext(), c.Params("item_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
