package ports

// Resultados posibles de un registro de producción, usados como etiqueta de métricas.
const (
	OutcomeCommitted  = "committed"
	OutcomeValidation = "validation"
	OutcomeRolledBack = "rolled_back"
)

// Metrics puerto de instrumentación de la aplicación (Prometheus en infraestructura).
type Metrics interface {
	StockMoveRecorded(moveType string)
	ProductionRecorded(outcome string)
	StockOutRejected()
}

// NopMetrics implementación vacía para tests y herramientas sin servidor.
type NopMetrics struct{}

func (NopMetrics) StockMoveRecorded(string)  {}
func (NopMetrics) ProductionRecorded(string) {}
func (NopMetrics) StockOutRejected()         {}
