package stock

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/application/ports"
	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

// UseCase ítems y movimientos de stock: alta de ítems, movimiento directo (con guard para
// salidas), listados y consulta de saldo.
type UseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	moveRepo repository.StockMoveRepository
	metrics  ports.Metrics
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	moveRepo repository.StockMoveRepository,
	metrics ports.Metrics,
	log zerolog.Logger,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		moveRepo: moveRepo,
		metrics:  metrics,
		log:      log,
	}
}

// CreateItem da de alta un ítem de stock.
func (uc *UseCase) CreateItem(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	item, err := entity.NewItem(in.Category, in.Name, in.Unit)
	if err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	if err := uc.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return toItemResponse(item), nil
}

// ListItems lista los ítems ordenados por categoría y nombre.
func (uc *UseCase) ListItems(ctx context.Context) ([]dto.ItemResponse, error) {
	items, err := uc.itemRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, *toItemResponse(it))
	}
	return out, nil
}

// RegisterMove registra un movimiento directo. Para salidas comprueba el saldo dentro de la
// misma transacción que la inserción.
func (uc *UseCase) RegisterMove(ctx context.Context, in dto.RegisterStockMoveRequest) (*dto.StockMoveResponse, error) {
	if !in.QtyKg.GreaterThan(decimal.Zero) {
		return nil, domain.NewValidationError("qty_kg", "la cantidad debe ser mayor que cero")
	}
	refType := strings.TrimSpace(in.RefType)
	if refType == "" {
		refType = entity.RefTypeManual
	}
	move, err := entity.NewStockMove(in.ItemID, in.MoveType, in.QtyKg, entity.MoveRef{
		Type: refType,
		ID:   strings.TrimSpace(in.RefID),
		Note: strings.TrimSpace(in.Note),
	})
	if err != nil {
		return nil, err
	}

	item, err := uc.itemRepo.GetByID(ctx, move.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}

	move.ID = uuid.New().String()
	err = uc.txRunner.Run(ctx, func(moveRepo repository.StockMoveRepository) error {
		ledger := NewLedger(moveRepo)
		if move.MoveType == entity.MoveTypeOut {
			if err := NewGuard(ledger).CheckSufficient(ctx, move.ItemID, move.QtyKg); err != nil {
				return err
			}
		}
		return ledger.Record(ctx, move)
	})
	if err != nil {
		var insufficient *domain.InsufficientStockError
		if errors.As(err, &insufficient) {
			uc.metrics.StockOutRejected()
			uc.log.Warn().
				Str("item_id", move.ItemID).
				Str("current_kg", insufficient.Current.String()).
				Str("requested_kg", insufficient.Requested.String()).
				Msg("salida rechazada por stock insuficiente")
		}
		return nil, err
	}
	uc.metrics.StockMoveRecorded(move.MoveType)
	return toStockMoveResponse(move), nil
}

// ListMoves lista los movimientos, más recientes primero.
func (uc *UseCase) ListMoves(ctx context.Context, page dto.PageRequest) ([]dto.StockMoveResponse, error) {
	page.DefaultPage()
	moves, err := uc.moveRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMoveResponse, 0, len(moves))
	for _, m := range moves {
		out = append(out, *toStockMoveResponse(m))
	}
	return out, nil
}

// CountMoves número total de movimientos del libro.
func (uc *UseCase) CountMoves(ctx context.Context) (int, error) {
	return uc.moveRepo.Count(ctx)
}

// GetQty devuelve el saldo derivado del ítem.
func (uc *UseCase) GetQty(ctx context.Context, itemID string) (*dto.StockQtyResponse, error) {
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return nil, domain.NewValidationError("item_id", "ítem requerido")
	}
	qty, err := NewLedger(uc.moveRepo).Balance(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return &dto.StockQtyResponse{ItemID: itemID, QtyKg: qty}, nil
}

func toItemResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:        it.ID,
		Category:  it.Category,
		Name:      it.Name,
		Unit:      it.Unit,
		CreatedAt: it.CreatedAt,
	}
}

func toStockMoveResponse(m *entity.StockMove) *dto.StockMoveResponse {
	return &dto.StockMoveResponse{
		ID:        m.ID,
		ItemID:    m.ItemID,
		MoveType:  m.MoveType,
		QtyKg:     m.QtyKg,
		RefType:   m.RefType,
		RefID:     m.RefID,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
	}
}
