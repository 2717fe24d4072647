package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/AlmacenObra-api/internal/domain/entity"
	"github.com/jhoicas/AlmacenObra-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo log de asientos sobre PostgreSQL (usable con pool o tx). El orden de
// inserción lo da la columna seq; la lectura es seq DESC, del más reciente al más
// antiguo, que es como lo muestra la vista de almacén.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// AppendBatch inserta el lote completo. La atomicidad del lote la da la
// transacción del caller (TxRunner): toda escritura del ledger corre dentro de
// una. Los asientos jamás se actualizan ni borran.
func (r *LedgerRepo) AppendBatch(entries []*entity.LedgerEntry) error {
	query := `
		INSERT INTO stock_entries (id, date, item_code, description, quantity, unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, e := range entries {
		_, err := r.q.Exec(context.Background(), query,
			e.ID, e.Date, e.ItemCode, e.Description, e.Quantity, e.Unit, e.CreatedAt)
		if err != nil {
			return storageError("append entry", err)
		}
	}
	return nil
}

// ListAll devuelve el log completo, del más reciente al más antiguo.
func (r *LedgerRepo) ListAll() ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, date, item_code, description, quantity, unit, created_at
		FROM stock_entries ORDER BY seq DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, storageError("list entries", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// ListByKey devuelve los asientos de una clave de saldo (descripción y unidad ya
// recortadas), del más reciente al más antiguo.
func (r *LedgerRepo) ListByKey(description, unit string) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, date, item_code, description, quantity, unit, created_at
		FROM stock_entries WHERE description = $1 AND unit = $2 ORDER BY seq DESC`
	rows, err := r.q.Query(context.Background(), query, description, unit)
	if err != nil {
		return nil, storageError("list entries by key", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*entity.LedgerEntry, error) {
	entries := make([]*entity.LedgerEntry, 0)
	for rows.Next() {
		var e entity.LedgerEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.ItemCode, &e.Description, &e.Quantity, &e.Unit, &e.CreatedAt); err != nil {
			return nil, storageError("scan entry", err)
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("read entries", err)
	}
	return entries, nil
}
