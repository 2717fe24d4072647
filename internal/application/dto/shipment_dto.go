package dto

import "github.com/shopspring/decimal"

// ShipmentLineDTO línea de material dentro de un envío.
type ShipmentLineDTO struct {
	ItemCode    string          `json:"item_code,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
}

// ShipmentDTO envío en el cable.
type ShipmentDTO struct {
	ID         string            `json:"id"`
	Date       string            `json:"date"`
	Status     string            `json:"status"`
	ReceivedAt string            `json:"received_at,omitempty"`
	Lines      []ShipmentLineDTO `json:"lines"`
}

// ShipmentListResponse respuesta {shipments: [...]}.
type ShipmentListResponse struct {
	Shipments []ShipmentDTO `json:"shipments"`
}

// CreateShipmentRequest body de POST /api/shipments (alta desde compras).
type CreateShipmentRequest struct {
	Date  string            `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
	Lines []ShipmentLineDTO `json:"lines"`
}

// GRNRequest body de POST /api/grn.
type GRNRequest struct {
	ShipmentID string `json:"shipmentId"`
}
