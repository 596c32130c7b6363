package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/domain"
)

// Mensajes fijos para fallos internos; la causa solo va al log.
const (
	msgPersistence = "error al acceder a la base de datos"
	msgInternal    = "error interno del servidor"
)

// respondError traduce la taxonomía de errores de dominio a status + cuerpo JSON.
func respondError(c *fiber.Ctx, err error) error {
	var (
		prodErr      *domain.ProductionError
		insufficient *domain.InsufficientStockError
		validation   *domain.ValidationError
	)

	switch {
	case errors.As(err, &prodErr):
		if prodErr.Kind == domain.FailureInsufficientStock && errors.As(prodErr.Cause, &insufficient) {
			return c.Status(fiber.StatusConflict).JSON(insufficientBody(insufficient, prodErr.UserMessage()))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PRODUCTION_FAILED", Message: prodErr.UserMessage()})
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(insufficientBody(insufficient, insufficient.Error()))
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: validation.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el recurso ya existe"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrPersistence):
		logInternal(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE", Message: msgPersistence})
	default:
		logInternal(c, err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal})
	}
}

func logInternal(c *fiber.Ctx, err error) {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error interno en petición HTTP")
}

// authError cuerpo 401/403 de los middlewares de auth; el mensaje parte del sentinela de dominio.
func authError(c *fiber.Ctx, sentinel error, code, detail string) error {
	status := fiber.StatusUnauthorized
	if errors.Is(sentinel, domain.ErrForbidden) {
		status = fiber.StatusForbidden
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: sentinel.Error() + ": " + detail})
}

func insufficientBody(e *domain.InsufficientStockError, msg string) dto.InsufficientStockResponse {
	return dto.InsufficientStockResponse{
		ErrorResponse: dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: msg},
		ItemID:        e.ItemID,
		CurrentKg:     e.Current.String(),
		RequestKg:     e.Requested.String(),
	}
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
