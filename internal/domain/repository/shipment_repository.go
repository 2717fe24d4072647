package repository

import (
	"time"

	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
)

// ShipmentRepository define el puerto de lectura y actualización de estado de
// envíos. Los envíos pertenecen al subsistema de compras; el ledger solo los
// consulta y los marca recibidos.
type ShipmentRepository interface {
	// GetByID devuelve el envío o nil si no existe.
	GetByID(id string) (*entity.Shipment, error)
	// GetForUpdate devuelve el envío bloqueando su fila dentro de la transacción
	// en curso, para que el chequeo de duplicado y la transición sean atómicos.
	GetForUpdate(id string) (*entity.Shipment, error)
	// List devuelve los envíos del más reciente al más antiguo.
	List() ([]*entity.Shipment, error)
	Create(s *entity.Shipment) error
	// MarkReceived transiciona pending -> received con su timestamp.
	MarkReceived(id string, receivedAt time.Time) error
}
