package stock

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/ledger"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// ReceiveShipmentUseCase aplica las líneas de un envío al ledger exactamente una
// vez (GRN, Goods Received Note). La guarda de idempotencia es el estado del
// envío: un envío ya recibido se rechaza al reintentarlo.
type ReceiveShipmentUseCase struct {
	txRunner TxRunner
	clock    func() time.Time
}

// NewReceiveShipmentUseCase construye el caso de uso.
func NewReceiveShipmentUseCase(txRunner TxRunner) *ReceiveShipmentUseCase {
	return &ReceiveShipmentUseCase{txRunner: txRunner, clock: time.Now}
}

// ReceiveShipmentResult ledger completo actualizado más los saldos de las claves
// tocadas por el envío, para que el caller refresque su vista sin una segunda
// lectura.
type ReceiveShipmentResult struct {
	Items    []*entity.LedgerEntry
	Balances map[entity.BalanceKey]decimal.Decimal
}

// Receive busca el envío, rechaza duplicados, pliega sus líneas en el ledger como
// un solo lote y recién entonces lo marca recibido. Todo dentro del mismo ámbito
// de exclusión: la transición de estado nunca ocurre sobre un append fallido, y
// ese orden es el fundamento de la garantía de idempotencia.
func (uc *ReceiveShipmentUseCase) Receive(ctx context.Context, shipmentID string) (*ReceiveShipmentResult, error) {
	shipmentID = strings.TrimSpace(shipmentID)
	if shipmentID == "" {
		return nil, &domain.ValidationError{Reason: "shipmentId is required"}
	}

	var result ReceiveShipmentResult
	err := uc.txRunner.Run(ctx, func(ledgerRepo repository.LedgerRepository, shipmentRepo repository.ShipmentRepository) error {
		shipment, err := shipmentRepo.GetForUpdate(shipmentID)
		if err != nil {
			return err
		}
		if shipment == nil {
			return domain.ErrNotFound
		}
		if shipment.Status == entity.ShipmentStatusReceived {
			return domain.ErrAlreadyReceived
		}

		now := uc.clock()
		date := shipment.Date
		if date.IsZero() {
			date = now
		}

		touched := make(map[entity.BalanceKey]struct{})
		batch := make([]*entity.LedgerEntry, 0, len(shipment.Lines))
		for _, line := range shipment.Lines {
			key := entity.NewBalanceKey(line.Description, line.Unit)
			if key.Description == "" {
				continue
			}
			batch = append(batch, &entity.LedgerEntry{
				ID:          newEntryID(now),
				Date:        date,
				ItemCode:    strings.TrimSpace(line.ItemCode),
				Description: key.Description,
				Quantity:    line.Quantity.Abs(),
				Unit:        key.Unit,
				CreatedAt:   now,
			})
			touched[key] = struct{}{}
		}
		if err := ledgerRepo.AppendBatch(batch); err != nil {
			return err
		}
		if err := shipmentRepo.MarkReceived(shipment.ID, now); err != nil {
			return err
		}

		entries, err := ledgerRepo.ListAll()
		if err != nil {
			return err
		}
		balances := ledger.ComputeBalances(entries)
		result.Items = entries
		result.Balances = make(map[entity.BalanceKey]decimal.Decimal, len(touched))
		for key := range touched {
			result.Balances[key] = balances[key]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
