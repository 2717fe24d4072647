package stock

import (
	"context"
	"time"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/ledger"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// IssueStockUseCase valida y compromete una entrega multilínea de materiales como
// una sola transacción todo-o-nada: o cada línea es satisfacible contra el saldo
// actual y todas las deducciones se escriben juntas, o no se escribe nada.
type IssueStockUseCase struct {
	txRunner TxRunner
	clock    func() time.Time
}

// NewIssueStockUseCase construye el caso de uso.
func NewIssueStockUseCase(txRunner TxRunner) *IssueStockUseCase {
	return &IssueStockUseCase{txRunner: txRunner, clock: time.Now}
}

// Issue valida las líneas, verifica los saldos dentro del ámbito de exclusión del
// ledger y escribe un asiento negativo por línea en un solo lote. Devuelve el
// ledger completo actualizado, del más reciente al más antiguo.
//
// La entrega NO es idempotente: reintentar una entrega exitosa pero no confirmada
// deduciría dos veces. El caller debe tratarla como a-lo-sumo-una-vez y, ante una
// falla ambigua, reconciliar consultando saldos.
func (uc *IssueStockUseCase) Issue(ctx context.Context, lines []Line) ([]*entity.LedgerEntry, error) {
	normalized, err := validateLines(lines, uc.clock())
	if err != nil {
		return nil, err
	}

	var result []*entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository, _ repository.ShipmentRepository) error {
		current, err := ledgerRepo.ListAll()
		if err != nil {
			return err
		}

		// Un único snapshot consistente para todo el lote: dos líneas que
		// referencian la misma clave se verifican contra el mismo saldo inicial,
		// acumulando lo ya pedido por las líneas anteriores.
		balances := ledger.ComputeBalances(current)
		for _, line := range normalized {
			key := entity.NewBalanceKey(line.Description, line.Unit)
			available := balances[key]
			if available.LessThan(line.Qty) {
				return &domain.InsufficientStockError{
					Description: key.Description,
					Unit:        key.Unit,
					Available:   available,
					Requested:   line.Qty,
				}
			}
			balances[key] = available.Sub(line.Qty)
		}

		now := uc.clock()
		batch := make([]*entity.LedgerEntry, 0, len(normalized))
		for _, line := range normalized {
			batch = append(batch, &entity.LedgerEntry{
				ID:          newEntryID(now),
				Date:        line.Date,
				ItemCode:    line.ItemCode,
				Description: line.Description,
				Quantity:    line.Qty.Abs().Neg(),
				Unit:        line.Unit,
				CreatedAt:   now,
			})
		}
		if err := ledgerRepo.AppendBatch(batch); err != nil {
			return err
		}
		result, err = ledgerRepo.ListAll()
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
