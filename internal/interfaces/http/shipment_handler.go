package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AlmacenObra-api/internal/application/dto"
	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
)

// ShipmentHandler expone los envíos (lado consumido del subsistema de compras) y
// la recepción GRN que los pliega en el ledger.
type ShipmentHandler struct {
	shipmentUC *stock.ShipmentUseCase
	grnUC      *stock.ReceiveShipmentUseCase
}

// NewShipmentHandler construye el handler.
func NewShipmentHandler(shipmentUC *stock.ShipmentUseCase, grnUC *stock.ReceiveShipmentUseCase) *ShipmentHandler {
	return &ShipmentHandler{shipmentUC: shipmentUC, grnUC: grnUC}
}

// List devuelve los envíos del más reciente al más antiguo.
func (h *ShipmentHandler) List(c *fiber.Ctx) error {
	shipments, err := h.shipmentUC.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ShipmentListResponse{Shipments: toShipmentDTOs(shipments)})
}

// Create registra un envío pendiente desde el subsistema de compras.
func (h *ShipmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateShipmentRequest
	if err := c.BodyParser(&in); err != nil || in.Lines == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "lines must be an array"})
	}
	shipment, err := h.shipmentUC.Create(c.Context(), in.Date, toShipmentLines(in.Lines))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toShipmentDTO(shipment))
}

// ReceiveGRN acredita las líneas de un envío al ledger, exactamente una vez.
func (h *ShipmentHandler) ReceiveGRN(c *fiber.Ctx) error {
	var in dto.GRNRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "shipmentId is required"})
	}
	result, err := h.grnUC.Receive(c.Context(), in.ShipmentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockListResponse{Items: toStockItemDTOs(result.Items)})
}
