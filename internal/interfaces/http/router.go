package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerRepo   repository.LedgerRepository
	ReceiveStock *stock.ReceiveStockUseCase
	IssueStock   *stock.IssueStockUseCase
	ReceiveGRN   *stock.ReceiveShipmentUseCase
	Shipments    *stock.ShipmentUseCase
}

// Router registra las rutas de la API del ledger. Es la única puerta de entrada:
// ningún componente externo toca el store por fuera de estas rutas.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	stockHandler := NewStockHandler(deps.LedgerRepo, deps.ReceiveStock, deps.IssueStock)
	api.Get("/stock", stockHandler.GetStock)
	api.Post("/stock", stockHandler.ReceiveStock)
	api.Post("/stock/deduct", stockHandler.DeductStock)

	shipmentHandler := NewShipmentHandler(deps.Shipments, deps.ReceiveGRN)
	api.Get("/shipments", shipmentHandler.List)
	api.Post("/shipments", shipmentHandler.Create)
	api.Post("/grn", shipmentHandler.ReceiveGRN)
}
