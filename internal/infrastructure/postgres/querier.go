package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/AlmacenObra-api/internal/domain"
)

// Querier abstrae pool o transacción pgx: los repositorios funcionan igual con
// ambos, y el TxRunner les pasa la tx para que el lote sea atómico.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// storageError marca una falla del medio encadenando ErrStorage, para que el
// boundary responda 5xx en lugar de 4xx.
func storageError(op string, err error) error {
	return fmt.Errorf("%s: %v: %w", op, err, domain.ErrStorage)
}
