package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/AlmacenObra-api/internal/application/stock"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

var _ stock.TxRunner = (*TxRunner)(nil)

// ledgerLockID clave del advisory lock que serializa toda mutación del ledger.
const ledgerLockID = 727401

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, bajo el
// advisory lock del ledger.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, toma pg_advisory_xact_lock y ejecuta fn con repos
// atados a la tx; Commit si fn retorna nil, Rollback en caso contrario. El lock
// se libera solo al cerrar la transacción, de modo que la secuencia completa
// leer-validar-escribir queda serializada frente a otras mutaciones del ledger.
// Las lecturas de solo consulta no pasan por aquí y no se bloquean.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	shipmentRepo repository.ShipmentRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", ledgerLockID); err != nil {
		return storageError("lock ledger", err)
	}

	ledgerRepo := NewLedgerRepository(tx)
	shipmentRepo := NewShipmentRepository(tx)

	if err := fn(ledgerRepo, shipmentRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}
