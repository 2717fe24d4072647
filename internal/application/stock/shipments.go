package stock

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// ShipmentUseCase superficie del colaborador de envíos: alta desde el subsistema
// de compras y consulta. No toca el ledger; la acreditación de stock es exclusiva
// del GRN.
type ShipmentUseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentRepository
	clock        func() time.Time
}

// NewShipmentUseCase construye el caso de uso. shipmentRepo se usa para lecturas
// sueltas; las altas corren dentro del TxRunner.
func NewShipmentUseCase(txRunner TxRunner, shipmentRepo repository.ShipmentRepository) *ShipmentUseCase {
	return &ShipmentUseCase{txRunner: txRunner, shipmentRepo: shipmentRepo, clock: time.Now}
}

// Create registra un envío pendiente con sus líneas validadas (misma validación
// que las líneas de stock). Requiere al menos una línea.
func (uc *ShipmentUseCase) Create(ctx context.Context, date string, lines []Line) (*entity.Shipment, error) {
	now := uc.clock()
	normalized, err := validateLines(lines, now)
	if err != nil {
		return nil, err
	}
	if len(normalized) == 0 {
		return nil, &domain.ValidationError{Reason: "at least one line is required"}
	}

	shipmentDate := now
	if raw := strings.TrimSpace(date); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			return nil, &domain.ValidationError{Reason: "date must be YYYY-MM-DD"}
		}
		shipmentDate = parsed
	}

	shipment := &entity.Shipment{
		ID:        newShipmentID(now),
		Date:      shipmentDate,
		Status:    entity.ShipmentStatusPending,
		CreatedAt: now,
	}
	for _, line := range normalized {
		shipment.Lines = append(shipment.Lines, entity.ShipmentLine{
			ItemCode:    line.ItemCode,
			Description: line.Description,
			Quantity:    line.Qty,
			Unit:        line.Unit,
		})
	}

	err = uc.txRunner.Run(ctx, func(_ repository.LedgerRepository, shipmentRepo repository.ShipmentRepository) error {
		return shipmentRepo.Create(shipment)
	})
	if err != nil {
		return nil, err
	}
	return shipment, nil
}

// List devuelve los envíos del más reciente al más antiguo (lectura suelta contra
// el último estado confirmado).
func (uc *ShipmentUseCase) List(ctx context.Context) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.List()
}
