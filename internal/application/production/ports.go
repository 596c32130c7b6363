package production

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tenebrio-farm/internal/domain/entity"
	"github.com/jhoicas/tenebrio-farm/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una única transacción con los repositorios que
// toca un registro de producción. Commit si fn devuelve nil; Rollback en cualquier otro
// caso, incluido un panic dentro de fn.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		moveRepo repository.StockMoveRepository,
		taskRepo repository.ProductionTaskRepository,
		feedRepo repository.FeedEventRepository,
		outputRepo repository.ProductionOutputRepository,
	) error) error
}

// TaskReportLine una línea de consumo en el informe PDF de una tarea.
type TaskReportLine struct {
	PalletCode string
	TrayCount  int
	ItemName   string
	QtyKg      decimal.Decimal
}

// TaskReport datos que necesita el generador del informe de una tarea.
type TaskReport struct {
	Task    *entity.ProductionTask
	Pallets []string // códigos de pallet, en el orden de la tarea
	Lines   []TaskReportLine
	Output  *entity.ProductionOutput
}

// TaskReportGenerator genera el PDF de una tarea de producción.
type TaskReportGenerator interface {
	GenerateTaskReport(ctx context.Context, report TaskReport) ([]byte, error)
}
