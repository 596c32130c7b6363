package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio. Los tipos de abajo envuelven estos sentinelas para usar errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrPersistence       = errors.New("error de persistencia")
	ErrUnexpected        = errors.New("fallo inesperado")
)

// ValidationError entrada mal formada detectada antes de cualquier escritura.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError construye un ValidationError para el campo indicado.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError una salida dejaría el saldo del ítem en negativo.
type InsufficientStockError struct {
	ItemID    string
	Current   decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: actual=%s kg, solicitado=%s kg", e.Current.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// PersistenceError el almacén rechazó una lectura o escritura (constraint, conexión).
type PersistenceError struct {
	Op  string
	Err error
}

// NewPersistenceError envuelve err con la operación que falló.
func NewPersistenceError(op string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Is permite errors.Is(err, ErrPersistence) además de la cadena envuelta.
func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// FailureKind categoría de un fallo operacional dentro de la transacción de producción.
type FailureKind string

const (
	FailureInsufficientStock FailureKind = "insufficient_stock"
	FailurePersistence       FailureKind = "persistence"
	FailureUnexpected        FailureKind = "unexpected"
)

// ProductionError fallo durante la transacción de un registro de producción.
// Cuando se devuelve, la transacción ya fue revertida por completo.
type ProductionError struct {
	Kind  FailureKind
	Cause error
}

// NewProductionError clasifica cause según la taxonomía de dominio.
func NewProductionError(cause error) *ProductionError {
	kind := FailureUnexpected
	switch {
	case errors.Is(cause, ErrInsufficientStock):
		kind = FailureInsufficientStock
	case errors.Is(cause, ErrPersistence):
		kind = FailurePersistence
	}
	return &ProductionError{Kind: kind, Cause: cause}
}

func (e *ProductionError) Error() string {
	return "PRO falló: " + e.Cause.Error()
}

func (e *ProductionError) Unwrap() error { return e.Cause }

// UserMessage mensaje para el usuario final, sin detalles internos del almacén.
func (e *ProductionError) UserMessage() string {
	switch e.Kind {
	case FailureInsufficientStock:
		return e.Error()
	case FailurePersistence:
		return "PRO falló: error al guardar en la base de datos"
	default:
		return "PRO falló: error inesperado"
	}
}
