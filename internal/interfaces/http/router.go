package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/tenebrio-farm/internal/application/production"
	"github.com/jhoicas/tenebrio-farm/internal/application/reference"
	"github.com/jhoicas/tenebrio-farm/internal/application/stock"
	"github.com/jhoicas/tenebrio-farm/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockUC          *stock.UseCase
	RecordProduction *production.RecordProductionUseCase
	ProductionQuery  *production.QueryUseCase
	ReferenceUC      *reference.UseCase
	MetricsHandler   nethttp.Handler // nil = sin /metrics
	JWTSecret        string          // vacío = escrituras sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Escrituras: Bearer Token con rol operario o admin; alta de ítems solo admin.
	writers := writeGuard(deps.JWTSecret, jwt.RoleAdmin, jwt.RoleOperario)
	admins := writeGuard(deps.JWTSecret, jwt.RoleAdmin)

	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/items", stockHandler.ListItems)
	stockGroup.Post("/items", append(admins, stockHandler.CreateItem)...)
	stockGroup.Get("/moves", stockHandler.ListMoves)
	stockGroup.Post("/moves", append(writers, stockHandler.RegisterMove)...)
	stockGroup.Get("/qty/:item_id", stockHandler.GetQty)

	prodGroup := api.Group("/production")
	prodHandler := NewProductionHandler(deps.RecordProduction, deps.ProductionQuery)
	prodGroup.Post("/records", append(writers, prodHandler.Record)...)
	prodGroup.Get("/tasks", prodHandler.ListTasks)
	prodGroup.Get("/tasks/:id", prodHandler.GetTask)
	prodGroup.Get("/tasks/:id/pdf", prodHandler.TaskPDF)

	refHandler := NewReferenceHandler(deps.ReferenceUC)
	api.Get("/rooms", refHandler.Rooms)
	api.Get("/batch-months", refHandler.BatchMonths)
	api.Get("/pallets", refHandler.Pallets)
}

// writeGuard middlewares de autenticación para rutas de escritura; ninguno si no hay secret.
func writeGuard(secret string, roles ...string) []fiber.Handler {
	if secret == "" {
		return nil
	}
	return []fiber.Handler{AuthMiddleware(secret), RequireRole(roles...)}
}
