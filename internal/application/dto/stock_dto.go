package dto

import "github.com/shopspring/decimal"

// StockLineRequest línea de material para POST /api/stock y POST /api/stock/deduct.
type StockLineRequest struct {
	ItemCode    string          `json:"item_code,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
	Date        string          `json:"date,omitempty"` // YYYY-MM-DD; vacío = hoy
}

// StockItemsRequest body de POST /api/stock y POST /api/stock/deduct.
type StockItemsRequest struct {
	Items []StockLineRequest `json:"items"`
}

// StockItemDTO asiento del ledger en el cable (misma forma que la vista de almacén).
type StockItemDTO struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	ItemCode    string          `json:"item_code,omitempty"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	Unit        string          `json:"unit"`
}

// StockListResponse respuesta {items: [...]} con el ledger completo, del más
// reciente al más antiguo.
type StockListResponse struct {
	Items []StockItemDTO `json:"items"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Error string `json:"error"`
}
