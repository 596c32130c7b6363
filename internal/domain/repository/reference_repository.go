package repository

import (
	"context"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
)

// ReferenceRepository lectura de los datos estáticos: salas, lotes mensuales y pallets.
type ReferenceRepository interface {
	ListRooms(ctx context.Context) ([]*entity.Room, error)
	ListBatchMonths(ctx context.Context) ([]*entity.BatchMonth, error)
	ListPallets(ctx context.Context) ([]*entity.Pallet, error)
	// GetPalletsByIDs devuelve los pallets en el mismo orden que ids; los inexistentes se omiten.
	GetPalletsByIDs(ctx context.Context, ids []string) ([]*entity.Pallet, error)
}
