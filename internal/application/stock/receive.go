package stock

import (
	"context"
	"time"

	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// ReceiveStockUseCase registra una entrada manual de stock (sin envío de por
// medio): misma validación de líneas que la entrega, cantidades positivas, sin
// transición de estado de ningún envío.
type ReceiveStockUseCase struct {
	txRunner TxRunner
	clock    func() time.Time
}

// NewReceiveStockUseCase construye el caso de uso.
func NewReceiveStockUseCase(txRunner TxRunner) *ReceiveStockUseCase {
	return &ReceiveStockUseCase{txRunner: txRunner, clock: time.Now}
}

// Receive valida las líneas y escribe un asiento positivo por línea en un solo
// lote. Devuelve el ledger completo actualizado, del más reciente al más antiguo.
func (uc *ReceiveStockUseCase) Receive(ctx context.Context, lines []Line) ([]*entity.LedgerEntry, error) {
	normalized, err := validateLines(lines, uc.clock())
	if err != nil {
		return nil, err
	}

	var result []*entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository, _ repository.ShipmentRepository) error {
		now := uc.clock()
		batch := make([]*entity.LedgerEntry, 0, len(normalized))
		for _, line := range normalized {
			batch = append(batch, &entity.LedgerEntry{
				ID:          newEntryID(now),
				Date:        line.Date,
				ItemCode:    line.ItemCode,
				Description: line.Description,
				Quantity:    line.Qty,
				Unit:        line.Unit,
				CreatedAt:   now,
			})
		}
		if err := ledgerRepo.AppendBatch(batch); err != nil {
			return err
		}
		var listErr error
		result, listErr = ledgerRepo.ListAll()
		return listErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
