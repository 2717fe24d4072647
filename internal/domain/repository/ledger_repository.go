package repository

import (
	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
)

// LedgerRepository define el puerto de persistencia del log de asientos (DIP).
// El log es append-only y ordenado; nunca se actualiza ni borra un asiento.
type LedgerRepository interface {
	// AppendBatch persiste uno o más asientos como un lote: o todos quedan
	// visibles o ninguno. La atomicidad frente a callers concurrentes la
	// garantiza el ámbito de exclusión del TxRunner que ata el repositorio.
	AppendBatch(entries []*entity.LedgerEntry) error
	// ListAll devuelve el log completo, del más reciente al más antiguo.
	ListAll() ([]*entity.LedgerEntry, error)
	// ListByKey devuelve los asientos de una clave de saldo (vista de auditoría).
	ListByKey(description, unit string) ([]*entity.LedgerEntry, error)
}
