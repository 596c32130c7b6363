package reference

import (
	"context"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
	"github.com/jhoicas/tenebrio-farm/pkg/parse"
)

// UseCase lectura de salas, lotes mensuales y pallets (datos estáticos).
type UseCase struct {
	repo repository.ReferenceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.ReferenceRepository) *UseCase {
	return &UseCase{repo: repo}
}

// ListRooms lista las salas.
func (uc *UseCase) ListRooms(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := uc.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, dto.RoomResponse{ID: r.ID, Name: r.Name})
	}
	return out, nil
}

// ListBatchMonths lista los lotes mensuales.
func (uc *UseCase) ListBatchMonths(ctx context.Context) ([]dto.BatchMonthResponse, error) {
	bms, err := uc.repo.ListBatchMonths(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BatchMonthResponse, 0, len(bms))
	for _, b := range bms {
		out = append(out, dto.BatchMonthResponse{
			ID:        b.ID,
			Code:      b.Code,
			StartDate: b.StartDate.Format(parse.DateLayout),
			EndDate:   b.EndDate.Format(parse.DateLayout),
		})
	}
	return out, nil
}

// ListPallets lista los pallets con su número de bandejas.
func (uc *UseCase) ListPallets(ctx context.Context) ([]dto.PalletResponse, error) {
	pallets, err := uc.repo.ListPallets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PalletResponse, 0, len(pallets))
	for _, p := range pallets {
		out = append(out, dto.PalletResponse{
			ID:           p.ID,
			Code:         p.Code,
			RoomID:       p.RoomID,
			BatchMonthID: p.BatchMonthID,
			TrayCount:    p.TrayCount,
		})
	}
	return out, nil
}
