package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (decimal solo para transportar montos en el faltante).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrAlreadyReceived   = errors.New("envío ya recibido")
	ErrStorage           = errors.New("error de almacenamiento")
)

// ValidationError señala la línea exacta (base 1) que incumple la validación de
// entrada. Rechaza la solicitud completa: no se escribe ningún asiento.
type ValidationError struct {
	Line   int
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Line <= 0 {
		return e.Reason
	}
	return fmt.Sprintf("item %d: %s", e.Line, e.Reason)
}

// Unwrap habilita errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientStockError lleva la clave, lo disponible y lo solicitado de la primera
// línea que produce el faltante, para que el aprobador corrija cantidades o divida
// la solicitud.
type InsufficientStockError struct {
	Description string
	Unit        string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s (%s). Available %s. Requested %s.",
		e.Description, e.Unit, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
