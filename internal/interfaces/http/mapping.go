package http

import (
	"time"

	"github.com/jhoicas/AlmacenObra-api/internal/application/dto"
	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
)

const dateLayout = "2006-01-02"

func toLines(items []dto.StockLineRequest) []stock.Line {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, stock.Line{
			ItemCode:    item.ItemCode,
			Description: item.Description,
			Qty:         item.Qty,
			Unit:        item.Unit,
			Date:        item.Date,
		})
	}
	return lines
}

func toShipmentLines(items []dto.ShipmentLineDTO) []stock.Line {
	lines := make([]stock.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, stock.Line{
			ItemCode:    item.ItemCode,
			Description: item.Description,
			Qty:         item.Qty,
			Unit:        item.Unit,
		})
	}
	return lines
}

func toStockItemDTOs(entries []*entity.LedgerEntry) []dto.StockItemDTO {
	items := make([]dto.StockItemDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.StockItemDTO{
			ID:          e.ID,
			Date:        e.Date.Format(dateLayout),
			ItemCode:    e.ItemCode,
			Description: e.Description,
			Qty:         e.Quantity,
			Unit:        e.Unit,
		})
	}
	return items
}

func toShipmentDTO(s *entity.Shipment) dto.ShipmentDTO {
	out := dto.ShipmentDTO{
		ID:     s.ID,
		Date:   s.Date.Format(dateLayout),
		Status: s.Status,
		Lines:  make([]dto.ShipmentLineDTO, 0, len(s.Lines)),
	}
	if s.ReceivedAt != nil {
		out.ReceivedAt = s.ReceivedAt.UTC().Format(time.RFC3339)
	}
	for _, l := range s.Lines {
		out.Lines = append(out.Lines, dto.ShipmentLineDTO{
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Qty:         l.Quantity,
			Unit:        l.Unit,
		})
	}
	return out
}

func toShipmentDTOs(shipments []*entity.Shipment) []dto.ShipmentDTO {
	out := make([]dto.ShipmentDTO, 0, len(shipments))
	for _, s := range shipments {
		out = append(out, toShipmentDTO(s))
	}
	return out
}
