package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/AlmacenObra-api/internal/application/dto"
	"github.com/jhoicas/AlmacenObra-api/internal/domain"
)

// respondError traduce errores de dominio a respuestas HTTP con cuerpo
// {error: mensaje legible}. Ninguna falla se registra-y-traga: todo llega al
// caller, y un fallo jamás deja una mutación parcial visible en el ledger.
func respondError(c *fiber.Ctx, err error) error {
	var insufficientErr *domain.InsufficientStockError
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &insufficientErr):
		// Faltante exacto para que el aprobador corrija cantidades o divida la
		// solicitud; nunca hay cumplimiento parcial silencioso.
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: insufficientErr.Error()})
	case errors.As(err, &validationErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: validationErr.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid input"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "shipment not found"})
	case errors.Is(err, domain.ErrAlreadyReceived):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "shipment already received"})
	case errors.Is(err, domain.ErrStorage):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "storage unavailable"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
}
