package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry representa un movimiento de stock firmado, inmutable una vez escrito.
// Cantidad positiva = entrada (recepción); negativa = salida (entrega). Las
// correcciones se hacen agregando asientos compensatorios, nunca mutando ni borrando.
type LedgerEntry struct {
	ID          string
	Date        time.Time // fecha calendario atribuida al movimiento
	ItemCode    string    // código corto opcional del material
	Description string
	Quantity    decimal.Decimal
	Unit        string
	CreatedAt   time.Time
}

// BalanceKey identifica el saldo de un material: descripción y unidad recortadas.
// Coincidencia exacta sensible a mayúsculas (limitación documentada: sin
// normalización de sinónimos ni de casing).
type BalanceKey struct {
	Description string
	Unit        string
}

// NewBalanceKey construye la clave recortando espacios en ambos campos.
func NewBalanceKey(description, unit string) BalanceKey {
	return BalanceKey{
		Description: strings.TrimSpace(description),
		Unit:        strings.TrimSpace(unit),
	}
}

// Key devuelve la clave de saldo del asiento.
func (e *LedgerEntry) Key() BalanceKey {
	return NewBalanceKey(e.Description, e.Unit)
}
