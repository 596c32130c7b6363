package repository

import (
	"context"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para los datos maestros de ítems.
type ItemRepository interface {
	Create(ctx context.Context, item *entity.Item) error
	GetByID(ctx context.Context, id string) (*entity.Item, error)
	List(ctx context.Context) ([]*entity.Item, error)
}
