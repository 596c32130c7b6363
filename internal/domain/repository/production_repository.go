package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
)

// ProductionTaskRepository persiste tareas de producción y su relación con pallets.
type ProductionTaskRepository interface {
	// Create inserta la tarea y una fila en production_task_pallets por cada PalletIDs.
	Create(ctx context.Context, task *entity.ProductionTask) error
	GetByID(ctx context.Context, id string) (*entity.ProductionTask, error)
	ListByDay(ctx context.Context, from, to *time.Time) ([]*entity.ProductionTask, error)
	Count(ctx context.Context) (int, error)
}

// FeedEventRepository persiste consumos de pienso por pallet.
type FeedEventRepository interface {
	Create(ctx context.Context, ev *entity.FeedEvent) error
	ListByTask(ctx context.Context, taskID string) ([]*entity.FeedEvent, error)
	Count(ctx context.Context) (int, error)
}

// ProductionOutputRepository persiste el registro de salida (frass/larva) de una tarea.
type ProductionOutputRepository interface {
	Create(ctx context.Context, out *entity.ProductionOutput) error
	// GetByTask devuelve nil, nil si la tarea no tiene salida registrada.
	GetByTask(ctx context.Context, taskID string) (*entity.ProductionOutput, error)
}
