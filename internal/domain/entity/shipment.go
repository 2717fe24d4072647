package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un envío.
const (
	ShipmentStatusPending  = "pending"
	ShipmentStatusReceived = "received"
)

// Shipment envío entrante de materiales. Lo crea el subsistema de compras; aquí
// solo se consume. Transiciona a received exactamente una vez, exclusivamente vía
// el procesador de recepciones (GRN), después de plegar sus líneas en el ledger.
type Shipment struct {
	ID         string
	Date       time.Time
	Status     string
	ReceivedAt *time.Time
	Lines      []ShipmentLine
	CreatedAt  time.Time
}

// ShipmentLine línea de material dentro de un envío.
type ShipmentLine struct {
	ItemCode    string
	Description string
	Quantity    decimal.Decimal
	Unit        string
}
