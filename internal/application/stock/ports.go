package stock

import (
	"context"

	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro del ámbito de exclusión mutua del ledger,
// pasando repositorios atados a ese ámbito. Toda secuencia leer-validar-escribir
// que toca el ledger (chequeo de saldo + append de la entrega; chequeo de
// duplicado + append + transición del envío) corre aquí dentro: dos entregas
// concurrentes sobre la misma clave no pueden ver ambas saldo suficiente y
// sobregirarlo entre las dos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		shipmentRepo repository.ShipmentRepository,
	) error) error
}
