package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
	"github.com/jhoicas/AlmacenObra-api/internal/infrastructure/memory"
)

func entry(id, description, unit string, qty int64) *entity.LedgerEntry {
	return &entity.LedgerEntry{
		ID:          id,
		Description: description,
		Quantity:    decimal.NewFromInt(qty),
		Unit:        unit,
	}
}

func pendingShipment(id string) *entity.Shipment {
	return &entity.Shipment{
		ID:     id,
		Status: entity.ShipmentStatusPending,
		Lines: []entity.ShipmentLine{
			{Description: "Cement", Quantity: decimal.NewFromInt(10), Unit: "bags"},
		},
		CreatedAt: time.Now(),
	}
}

// TestStore_AppendBatchPrepende: el lote entra completo delante del log
// preservando su orden interno.
func TestStore_AppendBatchPrepende(t *testing.T) {
	store := memory.NewStore()

	require.NoError(t, store.AppendBatch([]*entity.LedgerEntry{entry("a", "Cement", "bags", 1)}))
	require.NoError(t, store.AppendBatch([]*entity.LedgerEntry{
		entry("b", "Cement", "bags", 2),
		entry("c", "Cement", "bags", 3),
	}))

	entries, err := store.ListAll()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
	assert.Equal(t, "a", entries[2].ID)
}

// TestStore_ListByKey: filtra por clave recortada de descripción y unidad.
func TestStore_ListByKey(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.AppendBatch([]*entity.LedgerEntry{
		entry("a", "Cement", "bags", 5),
		entry("b", "Sand", "m3", 2),
		entry("c", " Cement ", "bags", 1),
	}))

	entries, err := store.ListByKey("Cement", "bags")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].ID)
	assert.Equal(t, "c", entries[1].ID)
}

// TestStore_RunConfirmaTodoJunto: los repos de la transacción ven lo provisional
// y el commit lo publica de una vez.
func TestStore_RunConfirmaTodoJunto(t *testing.T) {
	store := memory.NewStore()

	err := store.Run(context.Background(), func(
		ledgerRepo repository.LedgerRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		if err := ledgerRepo.AppendBatch([]*entity.LedgerEntry{entry("a", "Cement", "bags", 5)}); err != nil {
			return err
		}
		// La propia transacción lee sus asientos provisionales.
		inside, err := ledgerRepo.ListAll()
		if err != nil {
			return err
		}
		assert.Len(t, inside, 1)
		return shipmentRepo.Create(pendingShipment("ship_a"))
	})
	require.NoError(t, err)

	entries, err := store.ListAll()
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	sh, err := store.GetByID("ship_a")
	require.NoError(t, err)
	require.NotNil(t, sh)
	assert.Equal(t, entity.ShipmentStatusPending, sh.Status)
}

// TestStore_RunDescartaTrasError: un error de fn descarta todo lo provisional.
func TestStore_RunDescartaTrasError(t *testing.T) {
	store := memory.NewStore()
	boom := errors.New("boom")

	err := store.Run(context.Background(), func(
		ledgerRepo repository.LedgerRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		if err := ledgerRepo.AppendBatch([]*entity.LedgerEntry{entry("a", "Cement", "bags", 5)}); err != nil {
			return err
		}
		if err := shipmentRepo.Create(pendingShipment("ship_a")); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	entries, err := store.ListAll()
	require.NoError(t, err)
	assert.Empty(t, entries)

	sh, err := store.GetByID("ship_a")
	require.NoError(t, err)
	assert.Nil(t, sh)
}

// TestStore_MarkReceivedUnaSolaVez: la transición pending -> received es de un
// solo sentido, el segundo intento reporta ErrAlreadyReceived.
func TestStore_MarkReceivedUnaSolaVez(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Create(pendingShipment("ship_a")))

	at := time.Now()
	require.NoError(t, store.MarkReceived("ship_a", at))

	err := store.MarkReceived("ship_a", at.Add(time.Minute))
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)

	sh, err := store.GetByID("ship_a")
	require.NoError(t, err)
	require.NotNil(t, sh)
	assert.Equal(t, entity.ShipmentStatusReceived, sh.Status)
	require.NotNil(t, sh.ReceivedAt)
	assert.True(t, sh.ReceivedAt.Equal(at))
}

// TestStore_MarkReceivedInexistente: marcar un envío que no existe es ErrNotFound.
func TestStore_MarkReceivedInexistente(t *testing.T) {
	store := memory.NewStore()

	err := store.MarkReceived("ship_nope", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestStore_MarkReceivedDentroDeRun: la transición provisional solo se publica
// en el commit; otra lectura posterior la ve confirmada.
func TestStore_MarkReceivedDentroDeRun(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Create(pendingShipment("ship_a")))

	at := time.Now()
	err := store.Run(context.Background(), func(
		_ repository.LedgerRepository,
		shipmentRepo repository.ShipmentRepository,
	) error {
		if err := shipmentRepo.MarkReceived("ship_a", at); err != nil {
			return err
		}
		// La vista transaccional ya refleja la transición.
		view, err := shipmentRepo.GetByID("ship_a")
		if err != nil {
			return err
		}
		assert.Equal(t, entity.ShipmentStatusReceived, view.Status)
		// Y un segundo intento dentro de la misma transacción choca.
		return nil
	})
	require.NoError(t, err)

	sh, err := store.GetByID("ship_a")
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusReceived, sh.Status)

	err = store.MarkReceived("ship_a", time.Now())
	assert.ErrorIs(t, err, domain.ErrAlreadyReceived)
}

// TestStore_CopiasDefensivas: mutar lo devuelto no altera el estado interno.
func TestStore_CopiasDefensivas(t *testing.T) {
	store := memory.NewStore()
	require.NoError(t, store.Create(pendingShipment("ship_a")))

	sh, err := store.GetByID("ship_a")
	require.NoError(t, err)
	sh.Status = entity.ShipmentStatusReceived
	sh.Lines[0].Description = "Gravel"

	again, err := store.GetByID("ship_a")
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusPending, again.Status)
	assert.Equal(t, "Cement", again.Lines[0].Description)
}
