// Package parse convierte valores de formulario (strings) a tipos de dominio.
//
// Los campos numéricos opcionales son indulgentes: vacío o inválido toma el valor por
// defecto documentado en cada función. Las fechas son estrictas.
package parse

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout formato de día aceptado (ISO 8601, solo fecha).
const DateLayout = "2006-01-02"

// IntOrDefault devuelve el entero de s o def si s está vacío o no es un entero.
func IntOrDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// DecimalOrZero devuelve el decimal de s o cero si s está vacío o es inválido.
// Acepta coma decimal ("1,5").
func DecimalOrZero(s string) decimal.Decimal {
	d := OptionalDecimal(s)
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// OptionalDecimal devuelve nil si s está vacío o es inválido.
func OptionalDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return nil
	}
	return &d
}

// Date interpreta s como YYYY-MM-DD. Rechaza fechas fuera de rango (ej. 2026-02-31).
func Date(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// OptionalDate como Date, pero vacío devuelve nil sin error.
func OptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := Date(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
