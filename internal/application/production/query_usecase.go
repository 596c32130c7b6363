package production

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tenebrio-farm/internal/application/dto"
	"github.com/jhoicas/tenebrio-farm/internal/domain"
	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
	"github.com/jhoicas/tenebrio-farm/pkg/parse"
)

// QueryUseCase consultas de solo lectura sobre tareas de producción.
type QueryUseCase struct {
	taskRepo   repository.ProductionTaskRepository
	feedRepo   repository.FeedEventRepository
	outputRepo repository.ProductionOutputRepository
	moveRepo   repository.StockMoveRepository
	itemRepo   repository.ItemRepository
	refRepo    repository.ReferenceRepository
	generator  TaskReportGenerator
}

// NewQueryUseCase construye el caso de uso. generator puede ser nil si no se sirven PDFs.
func NewQueryUseCase(
	taskRepo repository.ProductionTaskRepository,
	feedRepo repository.FeedEventRepository,
	outputRepo repository.ProductionOutputRepository,
	moveRepo repository.StockMoveRepository,
	itemRepo repository.ItemRepository,
	refRepo repository.ReferenceRepository,
	generator TaskReportGenerator,
) *QueryUseCase {
	return &QueryUseCase{
		taskRepo:   taskRepo,
		feedRepo:   feedRepo,
		outputRepo: outputRepo,
		moveRepo:   moveRepo,
		itemRepo:   itemRepo,
		refRepo:    refRepo,
		generator:  generator,
	}
}

// GetTask devuelve la tarea con sus consumos, su salida y las salidas de stock que generó.
func (uc *QueryUseCase) GetTask(ctx context.Context, id string) (*dto.ProductionTaskResponse, error) {
	task, events, out, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toTaskResponse(task)
	for _, ev := range events {
		resp.FeedEvents = append(resp.FeedEvents, dto.FeedEventResponse{
			ID:       ev.ID,
			PalletID: ev.PalletID,
			ItemID:   ev.ItemID,
			QtyKg:    ev.QtyKg,
		})
	}
	if out != nil {
		resp.Output = &dto.ProductionOutputResponse{FrassKg: out.FrassKg, LarvaeTotalKg: out.LarvaeTotalKg}
	}
	moves, err := uc.moveRepo.ListByRef(ctx, entity.RefTypeProduction, task.ID)
	if err != nil {
		return nil, err
	}
	for _, m := range moves {
		resp.StockMoves = append(resp.StockMoves, dto.StockMoveResponse{
			ID:        m.ID,
			ItemID:    m.ItemID,
			MoveType:  m.MoveType,
			QtyKg:     m.QtyKg,
			RefType:   m.RefType,
			RefID:     m.RefID,
			Note:      m.Note,
			CreatedAt: m.CreatedAt,
		})
	}
	return resp, nil
}

// ListTasks lista tareas entre from y to (YYYY-MM-DD, ambos opcionales e inclusivos).
func (uc *QueryUseCase) ListTasks(ctx context.Context, from, to string) ([]dto.ProductionTaskResponse, error) {
	fromDay, err := parse.OptionalDate(from)
	if err != nil {
		return nil, domain.NewValidationError("from", "Fecha inválida")
	}
	toDay, err := parse.OptionalDate(to)
	if err != nil {
		return nil, domain.NewValidationError("to", "Fecha inválida")
	}
	tasks, err := uc.taskRepo.ListByDay(ctx, fromDay, toDay)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionTaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *toTaskResponse(t))
	}
	return out, nil
}

// TaskReportPDF genera el informe PDF de la tarea. Devuelve bytes y nombre de archivo sugerido.
func (uc *QueryUseCase) TaskReportPDF(ctx context.Context, id string) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("informe PDF no configurado")
	}
	task, events, out, err := uc.load(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pallets, err := uc.refRepo.GetPalletsByIDs(ctx, task.PalletIDs)
	if err != nil {
		return nil, "", err
	}
	byID := make(map[string]*entity.Pallet, len(pallets))
	report := TaskReport{Task: task, Output: out}
	for _, p := range pallets {
		byID[p.ID] = p
		report.Pallets = append(report.Pallets, p.Code)
	}

	itemNames := make(map[string]string)
	for _, ev := range events {
		name, ok := itemNames[ev.ItemID]
		if !ok {
			item, err := uc.itemRepo.GetByID(ctx, ev.ItemID)
			if err != nil {
				return nil, "", err
			}
			name = ev.ItemID
			if item != nil {
				name = item.Name
			}
			itemNames[ev.ItemID] = name
		}
		line := TaskReportLine{PalletCode: ev.PalletID, ItemName: name, QtyKg: ev.QtyKg}
		if p := byID[ev.PalletID]; p != nil {
			line.PalletCode = p.Code
			line.TrayCount = p.TrayCount
		}
		report.Lines = append(report.Lines, line)
	}

	pdf, err := uc.generator.GenerateTaskReport(ctx, report)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("PRO-%s-%s.pdf", task.Day.Format(parse.DateLayout), shortID(task.ID))
	return pdf, filename, nil
}

func (uc *QueryUseCase) load(ctx context.Context, id string) (*entity.ProductionTask, []*entity.FeedEvent, *entity.ProductionOutput, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil, nil, domain.ErrNotFound
	}
	task, err := uc.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	if task == nil {
		return nil, nil, nil, domain.ErrNotFound
	}
	events, err := uc.feedRepo.ListByTask(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := uc.outputRepo.GetByTask(ctx, id)
	if err != nil {
		return nil, nil, nil, err
	}
	return task, events, out, nil
}

func toTaskResponse(t *entity.ProductionTask) *dto.ProductionTaskResponse {
	palletIDs := t.PalletIDs
	if palletIDs == nil {
		palletIDs = []string{}
	}
	return &dto.ProductionTaskResponse{
		ID:          t.ID,
		Day:         t.Day.Format(parse.DateLayout),
		TaskName:    t.TaskName,
		Responsible: t.Responsible,
		Minutes:     t.Minutes,
		Location:    t.Location,
		Note:        t.Note,
		PalletIDs:   palletIDs,
		CreatedAt:   t.CreatedAt,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
