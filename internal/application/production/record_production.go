package production

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/application/ports"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
	"github.com/jhoicas/tenebrio-farm/pkg/parse"
)

// RecordProductionUseCase registra una tarea de producción (PRO) en una sola transacción:
// tarea + pallets, consumo de pienso por pallet con su salida de stock, y salida de frass/larva.
//
// Dos niveles de fallo:
//   - *domain.ValidationError: entrada inválida, no se abre transacción.
//   - *domain.ProductionError: fallo dentro de la transacción, ya revertida por completo.
type RecordProductionUseCase struct {
	txRunner TxRunner
	itemRepo repository.ItemRepository
	refRepo  repository.ReferenceRepository
	metrics  ports.Metrics
	log      zerolog.Logger
}

// NewRecordProductionUseCase construye el caso de uso. metrics puede ser nil.
func NewRecordProductionUseCase(
	txRunner TxRunner,
	itemRepo repository.ItemRepository,
	refRepo repository.ReferenceRepository,
	metrics ports.Metrics,
	log zerolog.Logger,
) *RecordProductionUseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &RecordProductionUseCase{
		txRunner: txRunner,
		itemRepo: itemRepo,
		refRepo:  refRepo,
		metrics:  metrics,
		log:      log,
	}
}

// feedSelection una de las (hasta dos) selecciones de pienso del formulario.
type feedSelection struct {
	itemID     string
	qtyPerTray decimal.Decimal
}

// productionPlan entrada ya validada; todo lo que se escribe sale de aquí.
type productionPlan struct {
	day         time.Time
	taskName    string
	responsible string
	minutes     int
	location    string
	note        string
	feeds       []feedSelection
	pallets     []*entity.Pallet
	frassKg     *decimal.Decimal
	larvaeKg    *decimal.Decimal
}

// RecordProduction valida la entrada y ejecuta el registro completo en una transacción.
func (uc *RecordProductionUseCase) RecordProduction(ctx context.Context, in dto.RecordProductionRequest) (*dto.RecordProductionResponse, error) {
	plan, err := uc.buildPlan(ctx, in)
	if err != nil {
		uc.metrics.ProductionRecorded(ports.OutcomeValidation)
		uc.log.Debug().Err(err).Msg("registro de producción rechazado en validación")
		return nil, err
	}

	taskID := uuid.New().String()
	res := &dto.RecordProductionResponse{TaskID: taskID}

	err = uc.txRunner.RunProduction(ctx, func(
		moveRepo repository.StockMoveRepository,
		taskRepo repository.ProductionTaskRepository,
		feedRepo repository.FeedEventRepository,
		outputRepo repository.ProductionOutputRepository,
	) (err error) {
		// Un panic en cualquier paso se convierte en error para que el runner haga rollback.
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%w: %v", domain.ErrUnexpected, r)
			}
		}()
		return uc.apply(ctx, plan, taskID, res, moveRepo, taskRepo, feedRepo, outputRepo)
	})
	if err != nil {
		perr := domain.NewProductionError(err)
		uc.metrics.ProductionRecorded(ports.OutcomeRolledBack)
		uc.logFailure(perr, taskID)
		return nil, perr
	}

	uc.metrics.ProductionRecorded(ports.OutcomeCommitted)
	for i := 0; i < res.StockMoves; i++ {
		uc.metrics.StockMoveRecorded(entity.MoveTypeOut)
	}
	uc.log.Info().
		Str("task_id", taskID).
		Str("day", plan.day.Format(parse.DateLayout)).
		Int("feed_events", res.FeedEvents).
		Bool("output", res.HasOutput).
		Msg("registro de producción confirmado")
	return res, nil
}

// apply pasos 4–6: tarea, piernas de pienso por pallet y salida. Cualquier error aborta la tx.
func (uc *RecordProductionUseCase) apply(
	ctx context.Context,
	plan *productionPlan,
	taskID string,
	res *dto.RecordProductionResponse,
	moveRepo repository.StockMoveRepository,
	taskRepo repository.ProductionTaskRepository,
	feedRepo repository.FeedEventRepository,
	outputRepo repository.ProductionOutputRepository,
) error {
	now := time.Now()
	palletIDs := make([]string, 0, len(plan.pallets))
	for _, p := range plan.pallets {
		palletIDs = append(palletIDs, p.ID)
	}

	// 1) Tarea + relación con pallets
	task := &entity.ProductionTask{
		ID:          taskID,
		Day:         plan.day,
		TaskName:    plan.taskName,
		Responsible: plan.responsible,
		Minutes:     plan.minutes,
		Location:    plan.location,
		Note:        plan.note,
		PalletIDs:   palletIDs,
		CreatedAt:   now,
	}
	if err := taskRepo.Create(ctx, task); err != nil {
		return err
	}

	// 2) Consumo de pienso: una pierna por (selección, pallet). El guard ve las salidas
	// anteriores de esta misma tx, así que el control es acumulado.
	ledger := stock.NewLedger(moveRepo)
	guard := stock.NewGuard(ledger)
	for _, sel := range plan.feeds {
		for _, p := range plan.pallets {
			qty := p.FeedFor(sel.qtyPerTray)
			if err := guard.CheckSufficient(ctx, sel.itemID, qty); err != nil {
				return err
			}
			ev := &entity.FeedEvent{
				ID:       uuid.New().String(),
				TaskID:   taskID,
				PalletID: p.ID,
				ItemID:   sel.itemID,
				QtyKg:    qty,
			}
			if err := feedRepo.Create(ctx, ev); err != nil {
				return err
			}
			move, err := entity.NewStockMove(sel.itemID, entity.MoveTypeOut, qty, entity.MoveRef{
				Type: entity.RefTypeProduction,
				ID:   taskID,
				Note: "PRO " + p.Code,
			})
			if err != nil {
				return err
			}
			move.ID = uuid.New().String()
			if err := ledger.Record(ctx, move); err != nil {
				return err
			}
			res.FeedEvents++
			res.StockMoves++
		}
	}

	// 3) Salida de frass/larva
	out := &entity.ProductionOutput{
		ID:            uuid.New().String(),
		TaskID:        taskID,
		FrassKg:       plan.frassKg,
		LarvaeTotalKg: plan.larvaeKg,
		CreatedAt:     now,
	}
	if out.HasValues() {
		if err := outputRepo.Create(ctx, out); err != nil {
			return err
		}
		res.HasOutput = true
	}
	return nil
}

// buildPlan pasos 1–2 y lectura de datos de referencia. No escribe nada.
func (uc *RecordProductionUseCase) buildPlan(ctx context.Context, in dto.RecordProductionRequest) (*productionPlan, error) {
	day, err := parse.Date(in.Day)
	if err != nil {
		return nil, domain.NewValidationError("day", "Fecha inválida")
	}
	taskName := strings.TrimSpace(in.TaskName)
	if taskName == "" {
		return nil, domain.NewValidationError("task_name", "tarea requerida")
	}
	minutes := parse.IntOrDefault(in.Minutes, 0)
	if minutes < 0 {
		return nil, domain.NewValidationError("minutes", "los minutos no pueden ser negativos")
	}

	plan := &productionPlan{
		day:         day,
		taskName:    taskName,
		responsible: strings.TrimSpace(in.Responsible),
		minutes:     minutes,
		location:    strings.TrimSpace(in.Location),
		note:        strings.TrimSpace(in.Note),
	}

	slots := []struct {
		field  string
		itemID string
		qty    string
	}{
		{"feed1", in.Feed1ItemID, in.Feed1QtyPerTrayKg},
		{"feed2", in.Feed2ItemID, in.Feed2QtyPerTrayKg},
	}
	for _, s := range slots {
		itemID := strings.TrimSpace(s.itemID)
		qty := parse.OptionalDecimal(s.qty)
		if itemID == "" || qty == nil || qty.IsZero() {
			continue
		}
		if qty.IsNegative() {
			return nil, domain.NewValidationError(s.field+"_qty_per_tray_kg", "la dosis por bandeja no puede ser negativa")
		}
		item, err := uc.itemRepo.GetByID(ctx, itemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.NewValidationError(s.field+"_item_id", "ítem de pienso no encontrado")
		}
		plan.feeds = append(plan.feeds, feedSelection{itemID: itemID, qtyPerTray: *qty})
	}

	ids := uniqueIDs(in.PalletIDs)
	if len(ids) > 0 {
		pallets, err := uc.refRepo.GetPalletsByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		if len(pallets) != len(ids) {
			return nil, domain.NewValidationError("pallet_ids", "pallet no encontrado")
		}
		plan.pallets = pallets
	}

	if plan.frassKg, err = nonNegative("frass_kg", in.FrassKg); err != nil {
		return nil, err
	}
	if plan.larvaeKg, err = nonNegative("larvae_total_kg", in.LarvaeTotalKg); err != nil {
		return nil, err
	}
	return plan, nil
}

func (uc *RecordProductionUseCase) logFailure(perr *domain.ProductionError, taskID string) {
	switch perr.Kind {
	case domain.FailureUnexpected:
		uc.log.Error().Err(perr.Cause).Str("task_id", taskID).
			Msg("fallo inesperado en registro de producción; transacción revertida")
	case domain.FailurePersistence:
		uc.log.Error().Err(perr.Cause).Str("task_id", taskID).
			Msg("error de persistencia en registro de producción; transacción revertida")
	default:
		uc.log.Warn().Err(perr.Cause).Str("task_id", taskID).Str("kind", string(perr.Kind)).
			Msg("registro de producción revertido")
	}
}

func nonNegative(field, raw string) (*decimal.Decimal, error) {
	d := parse.OptionalDecimal(raw)
	if d != nil && d.IsNegative() {
		return nil, domain.NewValidationError(field, "no puede ser negativo")
	}
	return d, nil
}

// uniqueIDs limpia espacios, descarta vacíos y duplicados conservando el orden.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
