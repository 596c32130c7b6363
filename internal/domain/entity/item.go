package entity

import (
	"strings"
	"time"

	"github.com/jhoicas/tenebrio-farm/internal/domain"
)

// Categorías de ítem conocidas. La categoría es texto libre; "feed" marca el pienso consumible.
const (
	ItemCategoryFeed = "feed"
	DefaultItemUnit  = "kg"
)

// Item datos maestros de un artículo de stock (pienso, sustrato, envases...).
type Item struct {
	ID        string
	Category  string
	Name      string
	Unit      string
	CreatedAt time.Time
}

// NewItem construye un ítem validado. Unit vacío se normaliza a "kg".
func NewItem(category, name, unit string) (*Item, error) {
	category = strings.TrimSpace(category)
	name = strings.TrimSpace(name)
	unit = strings.TrimSpace(unit)
	if category == "" {
		return nil, domain.NewValidationError("category", "categoría requerida")
	}
	if name == "" {
		return nil, domain.NewValidationError("name", "nombre requerido")
	}
	if unit == "" {
		unit = DefaultItemUnit
	}
	return &Item{
		Category:  category,
		Name:      name,
		Unit:      unit,
		CreatedAt: time.Now(),
	}, nil
}
