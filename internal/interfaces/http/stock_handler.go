package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AlmacenObra-api/internal/application/dto"
	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// StockHandler expone el ledger de almacén: consulta, entrada directa y entrega.
type StockHandler struct {
	ledgerRepo repository.LedgerRepository
	receiveUC  *stock.ReceiveStockUseCase
	issueUC    *stock.IssueStockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(
	ledgerRepo repository.LedgerRepository,
	receiveUC *stock.ReceiveStockUseCase,
	issueUC *stock.IssueStockUseCase,
) *StockHandler {
	return &StockHandler{ledgerRepo: ledgerRepo, receiveUC: receiveUC, issueUC: issueUC}
}

// GetStock devuelve el ledger completo, del más reciente al más antiguo.
// Lectura suelta: no se bloquea detrás de escrituras en vuelo.
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	entries, err := h.ledgerRepo.ListAll()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockListResponse{Items: toStockItemDTOs(entries)})
}

// ReceiveStock registra una entrada manual de stock (sin envío de por medio).
func (h *StockHandler) ReceiveStock(c *fiber.Ctx) error {
	var in dto.StockItemsRequest
	if err := c.BodyParser(&in); err != nil || in.Items == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "items must be an array"})
	}
	entries, err := h.receiveUC.Receive(c.Context(), toLines(in.Items))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockListResponse{Items: toStockItemDTOs(entries)})
}

// DeductStock compromete una entrega multilínea todo-o-nada contra el saldo.
func (h *StockHandler) DeductStock(c *fiber.Ctx) error {
	var in dto.StockItemsRequest
	if err := c.BodyParser(&in); err != nil || in.Items == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "items must be an array"})
	}
	entries, err := h.issueUC.Issue(c.Context(), toLines(in.Items))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.StockListResponse{Items: toStockItemDTOs(entries)})
}
