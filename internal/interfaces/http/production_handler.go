package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/application/production"
)

// ProductionHandler registro de producción (PRO) y consulta de tareas.
type ProductionHandler struct {
	record *production.RecordProductionUseCase
	query  *production.QueryUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(record *production.RecordProductionUseCase, query *production.QueryUseCase) *ProductionHandler {
	return &ProductionHandler{record: record, query: query}
}

// Record godoc
// @Summary      Registrar producción
// @Description  Tarea + consumo de pienso por pallet + salida, en una única transacción.
// @Description  Cualquier fallo revierte todo; el mensaje empieza por "PRO falló:".
// @Tags         production
// @Security     Bearer
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body  dto.RecordProductionRequest  true  "Formulario PRO"
// @Success      201   {object}  dto.RecordProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.InsufficientStockResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/production/records [post]
func (h *ProductionHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if strings.TrimSpace(in.Responsible) == "" {
		in.Responsible = GetUserID(c)
	}
	out, err := h.record.RecordProduction(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTasks godoc
// @Summary      Listar tareas de producción
// @Tags         production
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}  dto.ProductionTaskResponse
// @Router       /api/production/tasks [get]
func (h *ProductionHandler) ListTasks(c *fiber.Ctx) error {
	out, err := h.query.ListTasks(c.UserContext(), c.Query("from"), c.Query("to"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetTask godoc
// @Summary      Detalle de una tarea
// @Tags         production
// @Produce      json
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200  {object}  dto.ProductionTaskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/tasks/{id} [get]
func (h *ProductionHandler) GetTask(c *fiber.Ctx) error {
	out, err := h.query.GetTask(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TaskPDF godoc
// @Summary      Informe PDF de una tarea
// @Tags         production
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la tarea"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/tasks/{id}/pdf [get]
func (h *ProductionHandler) TaskPDF(c *fiber.Ctx) error {
	data, filename, err := h.query.TaskReportPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}
